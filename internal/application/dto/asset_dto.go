package dto

import "time"

// CreateAssetRequest alta de un activo por un HR.
type CreateAssetRequest struct {
	ProductName     string `json:"productName"`
	ProductType     string `json:"productType"` // Returnable | Non-returnable
	ProductQuantity int    `json:"productQuantity"`
	ProductImage    string `json:"productImage"`
}

// ListAssetsRequest filtros de listado (query params).
type ListAssetsRequest struct {
	PageRequest
	HREmail   string `query:"hrEmail"`
	Search    string `query:"search"`
	Type      string `query:"type"`
	Available bool   `query:"available"`
}

// AssetResponse representación de un activo.
type AssetResponse struct {
	ID                string    `json:"id"`
	HREmail           string    `json:"hrEmail"`
	ProductName       string    `json:"productName"`
	ProductType       string    `json:"productType"`
	ProductImage      string    `json:"productImage,omitempty"`
	ProductQuantity   int       `json:"productQuantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	DateAdded         time.Time `json:"dateAdded"`
}

// AssetListResponse página de activos.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
