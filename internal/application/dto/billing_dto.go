package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackageResponse nivel del catálogo.
type PackageResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	EmployeeLimit int             `json:"employeeLimit"`
	Features      []string        `json:"features"`
}

// CheckoutRequest inicio de upgrade.
type CheckoutRequest struct {
	PackageID string `json:"packageId"`
}

// CheckoutResponse URL del checkout hospedado por el gateway.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// VerifyPaymentRequest callback de verificación tras el redirect de éxito.
type VerifyPaymentRequest struct {
	SessionID string `json:"sessionId"`
}

// PaymentResponse entrada inmutable del log de pagos.
type PaymentResponse struct {
	ID          string          `json:"id"`
	HREmail     string          `json:"hrEmail"`
	PackageID   string          `json:"packageId"`
	PackageName string          `json:"packageName"`
	Amount      decimal.Decimal `json:"amount"`
	SessionID   string          `json:"sessionId"`
	PaidAt      time.Time       `json:"paidAt"`
}
