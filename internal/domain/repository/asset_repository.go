package repository

import "github.com/assetverse/assetverse-api/internal/domain/entity"

// AssetFilter criterios de listado de activos.
type AssetFilter struct {
	HREmail       string // vacío = todos los tenants
	Search        string // match parcial por nombre, case-insensitive
	Type          string // Returnable | Non-returnable | vacío
	OnlyAvailable bool
	Limit         int
	Offset        int
}

// AssetRepository define el puerto de persistencia para Asset.
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una tx.
	GetForUpdate(id string) (*entity.Asset, error)
	// UpdateAvailable fija available_quantity (ya validada contra el invariante).
	UpdateAvailable(id string, available int) error
	List(filter AssetFilter) ([]*entity.Asset, error)
}
