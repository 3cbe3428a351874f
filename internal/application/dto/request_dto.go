package dto

import "time"

// CreateRequestRequest solicitud de un activo por un empleado. El snapshot
// (nombre/tipo/imagen/empresa) se toma del registro del activo en el servidor;
// el cliente solo aporta el id y una nota opcional.
type CreateRequestRequest struct {
	AssetID string `json:"assetId"`
	Note    string `json:"note"`
}

// TransitionRequestRequest cambio de estado por el HR dueño.
type TransitionRequestRequest struct {
	Status string `json:"status"` // approved | rejected
}

// ListRequestsRequest filtros de listado (query params).
type ListRequestsRequest struct {
	PageRequest
	Search string `query:"search"`
	Type   string `query:"type"`
	Status string `query:"status"`
}

// RequestResponse representación de una solicitud.
type RequestResponse struct {
	ID             string     `json:"id"`
	AssetID        string     `json:"assetId"`
	AssetName      string     `json:"assetName"`
	AssetType      string     `json:"assetType"`
	AssetImage     string     `json:"assetImage,omitempty"`
	CompanyName    string     `json:"companyName"`
	HREmail        string     `json:"hrEmail"`
	RequesterEmail string     `json:"requesterEmail"`
	RequesterName  string     `json:"requesterName"`
	Note           string     `json:"note,omitempty"`
	RequestStatus  string     `json:"requestStatus"`
	RequestDate    time.Time  `json:"requestDate"`
	ApprovalDate   *time.Time `json:"approvalDate,omitempty"`
}

// RequestListResponse página de solicitudes.
type RequestListResponse struct {
	Items []RequestResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
