package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/assetverse/assetverse-api/internal/application/dto"
	"github.com/assetverse/assetverse-api/internal/application/requests"
	"github.com/assetverse/assetverse-api/internal/application/usecase"
	"github.com/assetverse/assetverse-api/internal/domain"
)

// TeamHandler maneja las peticiones HTTP de equipo y roster.
type TeamHandler struct {
	teamUC      *usecase.TeamUseCase
	lifecycleUC *requests.LifecycleUseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(teamUC *usecase.TeamUseCase, lifecycleUC *requests.LifecycleUseCase) *TeamHandler {
	return &TeamHandler{teamUC: teamUC, lifecycleUC: lifecycleUC}
}

// MyTeam godoc
// @Summary      Compañeros de equipo del empleado (unión de sus tenants)
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TeamMemberResponse
// @Router       /api/team [get]
func (h *TeamHandler) MyTeam(c *fiber.Ctx) error {
	out, err := h.teamUC.MyTeam(GetEmail(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Employees godoc
// @Summary      Roster de empleados del HR con conteo de activos aprobados
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/hr/employees [get]
func (h *TeamHandler) Employees(c *fiber.Ctx) error {
	out, err := h.teamUC.EmployeesOf(GetEmail(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// RemoveEmployee godoc
// @Summary      Quitar un empleado del tenant (devolución en cascada)
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Param        email  path  string  true  "Email del empleado"
// @Success      204    "Sin contenido"
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/hr/employees/{email} [delete]
func (h *TeamHandler) RemoveEmployee(c *fiber.Ctx) error {
	// El email viaja URL-encoded en el path (p. ej. %40).
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_EMAIL", Message: "email es requerido"})
	}
	if err := h.lifecycleUC.RemoveEmployee(c.Context(), GetEmail(c), email); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el empleado no está afiliado a este tenant"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
