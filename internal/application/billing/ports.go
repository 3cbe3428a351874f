package billing

import (
	"context"

	"github.com/assetverse/assetverse-api/internal/domain/entity"
	"github.com/assetverse/assetverse-api/internal/domain/repository"
)

// CheckoutSession vista neutra de una sesión del gateway de pagos.
type CheckoutSession struct {
	ID            string
	URL           string
	Paid          bool
	CustomerEmail string
	AmountCents   int64
	PackageID     string // metadata propia adjuntada al crear la sesión
}

// CreateSessionInput datos para abrir un checkout hospedado.
type CreateSessionInput struct {
	CustomerEmail string
	ProductName   string
	AmountCents   int64
	PackageID     string
	SuccessURL    string
	CancelURL     string
}

// PaymentGateway es el contrato con el gateway externo (Stripe Checkout).
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, in CreateSessionInput) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// ReceiptPDFGenerator genera el comprobante PDF de un pago verificado.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, payment *entity.Payment, hr *entity.User) ([]byte, error)
}

// BillingTxRunner ejecuta el callback con repos de usuarios y pagos en una
// misma transacción (aplicar upgrade + log de pago de forma atómica).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
