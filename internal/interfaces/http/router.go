package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/assetverse/assetverse-api/internal/application/auth"
	"github.com/assetverse/assetverse-api/internal/application/billing"
	"github.com/assetverse/assetverse-api/internal/application/requests"
	"github.com/assetverse/assetverse-api/internal/application/usecase"
	"github.com/assetverse/assetverse-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	AssetUC     *usecase.AssetUseCase
	TeamUC      *usecase.TeamUseCase
	LifecycleUC *requests.LifecycleUseCase
	BillingUC   *billing.BillingUseCase
	Users       userLoader
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	assetHandler := NewAssetHandler(deps.AssetUC)
	requestHandler := NewRequestHandler(deps.LifecycleUC)
	teamHandler := NewTeamHandler(deps.TeamUC, deps.LifecycleUC)
	billingHandler := NewBillingHandler(deps.BillingUC)

	// Público: canje de token, registro y catálogo de paquetes.
	api.Post("/auth/token", authHandler.Token)
	api.Post("/users/register", authHandler.Register)
	api.Get("/packages", billingHandler.Packages)

	// Rutas protegidas (requieren Bearer Token).
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	hrOnly := RequireRole(deps.Users, entity.RoleHR)
	employeeOnly := RequireRole(deps.Users, entity.RoleEmployee)

	protected.Get("/users/me", authHandler.Profile)

	// Assets: alta solo HR; listado y detalle para ambos roles.
	assets := protected.Group("/assets")
	assets.Post("/", hrOnly, assetHandler.Create)
	assets.Get("/", assetHandler.List)
	assets.Get("/:id", assetHandler.GetByID)

	// Requests: alta solo empleados; transición solo HR; devolución del
	// propio solicitante (la propiedad la valida el caso de uso).
	reqs := protected.Group("/requests")
	reqs.Post("/", employeeOnly, requestHandler.Create)
	reqs.Get("/mine", requestHandler.ListMine)
	reqs.Get("/approved", requestHandler.ListApproved)
	reqs.Patch("/:id/return", requestHandler.Return)
	reqs.Patch("/:id", hrOnly, requestHandler.Transition)

	// Team (empleados).
	protected.Get("/team", employeeOnly, teamHandler.MyTeam)

	// Panel HR: bandeja de solicitudes y roster.
	hr := protected.Group("/hr", hrOnly)
	hr.Get("/requests", requestHandler.ListForHR)
	hr.Get("/employees", teamHandler.Employees)
	hr.Delete("/employees/:email", teamHandler.RemoveEmployee)

	// Billing (HR).
	billingGroup := protected.Group("/billing", hrOnly)
	billingGroup.Post("/checkout", billingHandler.Checkout)
	billingGroup.Post("/verify", billingHandler.Verify)
	billingGroup.Get("/payments", billingHandler.Payments)
	billingGroup.Get("/payments/:id/receipt", billingHandler.Receipt)
}
