package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/assetverse/assetverse-api/internal/application/dto"
	"github.com/assetverse/assetverse-api/internal/domain"
	"github.com/assetverse/assetverse-api/internal/domain/entity"
	"github.com/assetverse/assetverse-api/internal/domain/repository"
)

// AssetUseCase operaciones de catálogo de activos de un tenant HR.
type AssetUseCase struct {
	assetRepo repository.AssetRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(assetRepo repository.AssetRepository) *AssetUseCase {
	return &AssetUseCase{assetRepo: assetRepo}
}

// Create publica un activo. La cantidad disponible nace igual a la total.
func (uc *AssetUseCase) Create(hrEmail string, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if in.ProductName == "" || in.ProductQuantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductType != entity.AssetTypeReturnable && in.ProductType != entity.AssetTypeNonReturnable {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	asset := &entity.Asset{
		ID:                uuid.New().String(),
		HREmail:           hrEmail,
		Name:              in.ProductName,
		Type:              in.ProductType,
		Image:             in.ProductImage,
		ProductQuantity:   in.ProductQuantity,
		AvailableQuantity: in.ProductQuantity,
		DateAdded:         now,
		UpdatedAt:         now,
	}
	if err := uc.assetRepo.Create(asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// List lista activos: un HR ve solo los propios; un empleado ve el catálogo
// completo (o el de un tenant si pasa hrEmail), con búsqueda por nombre.
func (uc *AssetUseCase) List(email, role string, in dto.ListAssetsRequest) (*dto.AssetListResponse, error) {
	in.DefaultPage()
	filter := repository.AssetFilter{
		Search:        in.Search,
		Type:          in.Type,
		OnlyAvailable: in.Available,
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	if role == entity.RoleHR {
		filter.HREmail = email
	} else {
		filter.HREmail = in.HREmail
	}
	assets, err := uc.assetRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.AssetListResponse{
		Items: make([]dto.AssetResponse, 0, len(assets)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, a := range assets {
		out.Items = append(out.Items, *toAssetResponse(a))
	}
	return out, nil
}

// GetByID devuelve un activo o nil si no existe.
func (uc *AssetUseCase) GetByID(id string) (*dto.AssetResponse, error) {
	asset, err := uc.assetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, nil
	}
	return toAssetResponse(asset), nil
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		ID:                a.ID,
		HREmail:           a.HREmail,
		ProductName:       a.Name,
		ProductType:       a.Type,
		ProductImage:      a.Image,
		ProductQuantity:   a.ProductQuantity,
		AvailableQuantity: a.AvailableQuantity,
		DateAdded:         a.DateAdded,
	}
}
