package entity

import "time"

// Tipos de activo.
const (
	AssetTypeReturnable    = "Returnable"
	AssetTypeNonReturnable = "Non-returnable"
)

// Asset es un activo publicado por un tenant HR.
// Invariante: 0 <= AvailableQuantity <= ProductQuantity.
type Asset struct {
	ID                string
	HREmail           string // dueño del activo
	Name              string
	Type              string // Returnable | Non-returnable
	Image             string
	ProductQuantity   int // total publicado
	AvailableQuantity int // unidades no prestadas
	DateAdded         time.Time
	UpdatedAt         time.Time
}
