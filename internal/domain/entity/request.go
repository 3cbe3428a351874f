package entity

import "time"

// Estados de una solicitud. pending -> approved | rejected; approved -> returned.
// rejected y returned son terminales.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
	RequestStatusReturned = "returned"
)

// Request es la solicitud de un empleado sobre un activo. Los campos
// AssetName/AssetType/AssetImage/CompanyName son un snapshot tomado del
// registro autoritativo del activo al momento de crear (no del payload del
// cliente).
type Request struct {
	ID             string
	AssetID        string
	AssetName      string
	AssetType      string
	AssetImage     string
	CompanyName    string
	HREmail        string
	RequesterEmail string
	RequesterName  string
	Note           string
	Status         string
	RequestDate    time.Time
	ApprovalDate   *time.Time // se estampa en approved y rejected
}
