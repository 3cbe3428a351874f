package requests

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/assetverse/assetverse-api/internal/application/dto"
	"github.com/assetverse/assetverse-api/internal/domain"
	"github.com/assetverse/assetverse-api/internal/domain/entity"
	"github.com/assetverse/assetverse-api/internal/domain/repository"
)

// LifecycleUseCase implementa el ciclo de vida de solicitudes:
// pending -> approved | rejected, approved -> returned, y la remoción de
// empleados con devolución en cascada. Toda mutación multi-paso corre dentro
// de una transacción con bloqueo de fila (SELECT FOR UPDATE) sobre la
// solicitud y el activo, de modo que dos aprobaciones concurrentes sobre el
// mismo activo no pierdan actualizaciones del contador disponible.
type LifecycleUseCase struct {
	txRunner    TxRunner
	requestRepo repository.RequestRepository
	assetRepo   repository.AssetRepository
	userRepo    repository.UserRepository
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(
	txRunner TxRunner,
	requestRepo repository.RequestRepository,
	assetRepo repository.AssetRepository,
	userRepo repository.UserRepository,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		txRunner:    txRunner,
		requestRepo: requestRepo,
		assetRepo:   assetRepo,
		userRepo:    userRepo,
	}
}

// Create registra una solicitud pending. El snapshot (nombre, tipo, imagen,
// empresa) se toma del activo y del HR dueño releídos aquí; el payload del
// cliente solo aporta assetId y note. Rechaza si ya no hay unidades.
func (uc *LifecycleUseCase) Create(requesterEmail, requesterName string, in dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	if in.AssetID == "" {
		return nil, domain.ErrInvalidInput
	}
	asset, err := uc.assetRepo.GetByID(in.AssetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	if asset.AvailableQuantity <= 0 {
		return nil, domain.ErrOutOfStock
	}
	owner, err := uc.userRepo.GetByEmail(asset.HREmail)
	if err != nil {
		return nil, err
	}
	companyName := ""
	if owner != nil {
		companyName = owner.CompanyName
	}

	request := &entity.Request{
		ID:             uuid.New().String(),
		AssetID:        asset.ID,
		AssetName:      asset.Name,
		AssetType:      asset.Type,
		AssetImage:     asset.Image,
		CompanyName:    companyName,
		HREmail:        asset.HREmail,
		RequesterEmail: requesterEmail,
		RequesterName:  requesterName,
		Note:           in.Note,
		Status:         entity.RequestStatusPending,
		RequestDate:    time.Now(),
	}
	if err := uc.requestRepo.Create(request); err != nil {
		return nil, err
	}
	return toRequestResponse(request), nil
}

// Transition aplica approved o rejected sobre una solicitud pending del HR.
func (uc *LifecycleUseCase) Transition(ctx context.Context, hrEmail, requestID, status string) error {
	switch status {
	case entity.RequestStatusApproved:
		return uc.Approve(ctx, hrEmail, requestID)
	case entity.RequestStatusRejected:
		return uc.Reject(ctx, hrEmail, requestID)
	default:
		return domain.ErrInvalidInput
	}
}

// Approve ejecuta la aprobación en una sola transacción:
//  1. bloquea la solicitud (debe estar pending y pertenecer al HR);
//  2. bloquea el activo y verifica que quede al menos una unidad;
//  3. si el solicitante no está afiliado, compara afiliaciones vigentes
//     contra el límite del paquete y falla antes de cualquier escritura;
//  4. marca approved con fecha, descuenta una unidad y, si hace falta, crea
//     la afiliación e incrementa el contador del HR (auto-afiliación en la
//     primera aprobación, exactamente una vez por par).
func (uc *LifecycleUseCase) Approve(ctx context.Context, hrEmail, requestID string) error {
	return uc.txRunner.Run(ctx, func(
		requestRepo repository.RequestRepository,
		assetRepo repository.AssetRepository,
		affiliationRepo repository.AffiliationRepository,
		userRepo repository.UserRepository,
	) error {
		request, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.ErrNotFound
		}
		if request.HREmail != hrEmail {
			return domain.ErrForbidden
		}
		if request.Status != entity.RequestStatusPending {
			return domain.ErrConflict
		}

		asset, err := assetRepo.GetForUpdate(request.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrNotFound
		}
		if asset.AvailableQuantity <= 0 {
			return domain.ErrOutOfStock
		}

		affiliation, err := affiliationRepo.GetByPair(request.RequesterEmail, hrEmail)
		if err != nil {
			return err
		}
		if affiliation == nil {
			hr, err := userRepo.GetByEmail(hrEmail)
			if err != nil {
				return err
			}
			if hr == nil {
				return domain.ErrUserNotFound
			}
			count, err := affiliationRepo.CountByHR(hrEmail)
			if err != nil {
				return err
			}
			if count >= hr.PackageLimit {
				return domain.ErrPackageLimitReached
			}
		}

		now := time.Now()
		if err := requestRepo.UpdateStatus(requestID, entity.RequestStatusApproved, &now); err != nil {
			return err
		}
		if err := assetRepo.UpdateAvailable(asset.ID, asset.AvailableQuantity-1); err != nil {
			return err
		}
		if affiliation == nil {
			if err := affiliationRepo.Create(&entity.Affiliation{
				ID:              uuid.New().String(),
				EmployeeEmail:   request.RequesterEmail,
				EmployeeName:    request.RequesterName,
				HREmail:         hrEmail,
				CompanyName:     request.CompanyName,
				AffiliationDate: now,
			}); err != nil {
				return err
			}
			if err := userRepo.AdjustEmployeeCount(hrEmail, 1); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reject marca rejected con fecha; sin efectos secundarios.
func (uc *LifecycleUseCase) Reject(ctx context.Context, hrEmail, requestID string) error {
	return uc.txRunner.Run(ctx, func(
		requestRepo repository.RequestRepository,
		_ repository.AssetRepository,
		_ repository.AffiliationRepository,
		_ repository.UserRepository,
	) error {
		request, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.ErrNotFound
		}
		if request.HREmail != hrEmail {
			return domain.ErrForbidden
		}
		if request.Status != entity.RequestStatusPending {
			return domain.ErrConflict
		}
		now := time.Now()
		return requestRepo.UpdateStatus(requestID, entity.RequestStatusRejected, &now)
	})
}

// Return devuelve un activo aprobado del propio solicitante: marca returned y
// restaura una unidad sin pasar del total. Repetir sobre una solicitud ya
// devuelta es un no-op exitoso.
func (uc *LifecycleUseCase) Return(ctx context.Context, requesterEmail, requestID string) error {
	return uc.txRunner.Run(ctx, func(
		requestRepo repository.RequestRepository,
		assetRepo repository.AssetRepository,
		_ repository.AffiliationRepository,
		_ repository.UserRepository,
	) error {
		request, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.ErrNotFound
		}
		if request.RequesterEmail != requesterEmail {
			return domain.ErrForbidden
		}
		if request.Status == entity.RequestStatusReturned {
			return nil
		}
		if request.Status != entity.RequestStatusApproved {
			return domain.ErrConflict
		}
		if err := restoreUnit(assetRepo, request.AssetID); err != nil {
			return err
		}
		return requestRepo.UpdateStatus(requestID, entity.RequestStatusReturned, request.ApprovalDate)
	})
}

// RemoveEmployee elimina la afiliación (empleado, HR), decrementa el contador
// del tenant y devuelve en cascada todas las solicitudes aprobadas del par,
// restaurando stock por cada una. Todo en una sola transacción: o se aplica
// completo o no se aplica nada.
func (uc *LifecycleUseCase) RemoveEmployee(ctx context.Context, hrEmail, employeeEmail string) error {
	return uc.txRunner.Run(ctx, func(
		requestRepo repository.RequestRepository,
		assetRepo repository.AssetRepository,
		affiliationRepo repository.AffiliationRepository,
		userRepo repository.UserRepository,
	) error {
		affiliation, err := affiliationRepo.GetByPair(employeeEmail, hrEmail)
		if err != nil {
			return err
		}
		if affiliation == nil {
			return domain.ErrNotFound
		}
		if err := affiliationRepo.DeleteByPair(employeeEmail, hrEmail); err != nil {
			return err
		}
		if err := userRepo.AdjustEmployeeCount(hrEmail, -1); err != nil {
			return err
		}

		approved, err := requestRepo.ListApprovedPair(employeeEmail, hrEmail)
		if err != nil {
			return err
		}
		for _, r := range approved {
			if err := restoreUnit(assetRepo, r.AssetID); err != nil {
				return err
			}
			if err := requestRepo.UpdateStatus(r.ID, entity.RequestStatusReturned, r.ApprovalDate); err != nil {
				return err
			}
		}
		return nil
	})
}

// restoreUnit suma una unidad disponible con tope en la cantidad total.
func restoreUnit(assetRepo repository.AssetRepository, assetID string) error {
	asset, err := assetRepo.GetForUpdate(assetID)
	if err != nil {
		return err
	}
	if asset == nil {
		return domain.ErrNotFound
	}
	available := asset.AvailableQuantity + 1
	if available > asset.ProductQuantity {
		available = asset.ProductQuantity
	}
	return assetRepo.UpdateAvailable(asset.ID, available)
}

// ListMine solicitudes del propio empleado, todos los estados.
func (uc *LifecycleUseCase) ListMine(email string, in dto.ListRequestsRequest) (*dto.RequestListResponse, error) {
	in.DefaultPage()
	items, err := uc.requestRepo.ListByRequester(repository.RequestFilter{
		RequesterEmail: email,
		Status:         in.Status,
		Search:         in.Search,
		AssetType:      in.Type,
		Limit:          in.Limit,
		Offset:         in.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toRequestListResponse(items, in.PageRequest), nil
}

// ListApproved "mis activos": solo solicitudes approved del empleado.
func (uc *LifecycleUseCase) ListApproved(email string, in dto.ListRequestsRequest) (*dto.RequestListResponse, error) {
	in.DefaultPage()
	items, err := uc.requestRepo.ListByRequester(repository.RequestFilter{
		RequesterEmail: email,
		Status:         entity.RequestStatusApproved,
		Search:         in.Search,
		AssetType:      in.Type,
		Limit:          in.Limit,
		Offset:         in.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toRequestListResponse(items, in.PageRequest), nil
}

// ListForHR bandeja del HR, con búsqueda por nombre/email del solicitante.
func (uc *LifecycleUseCase) ListForHR(hrEmail string, in dto.ListRequestsRequest) (*dto.RequestListResponse, error) {
	in.DefaultPage()
	items, err := uc.requestRepo.ListByHR(repository.RequestFilter{
		HREmail: hrEmail,
		Status:  in.Status,
		Search:  in.Search,
		Limit:   in.Limit,
		Offset:  in.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toRequestListResponse(items, in.PageRequest), nil
}

func toRequestResponse(r *entity.Request) *dto.RequestResponse {
	return &dto.RequestResponse{
		ID:             r.ID,
		AssetID:        r.AssetID,
		AssetName:      r.AssetName,
		AssetType:      r.AssetType,
		AssetImage:     r.AssetImage,
		CompanyName:    r.CompanyName,
		HREmail:        r.HREmail,
		RequesterEmail: r.RequesterEmail,
		RequesterName:  r.RequesterName,
		Note:           r.Note,
		RequestStatus:  r.Status,
		RequestDate:    r.RequestDate,
		ApprovalDate:   r.ApprovalDate,
	}
}

func toRequestListResponse(items []*entity.Request, page dto.PageRequest) *dto.RequestListResponse {
	out := &dto.RequestListResponse{
		Items: make([]dto.RequestResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, r := range items {
		out.Items = append(out.Items, *toRequestResponse(r))
	}
	return out
}
