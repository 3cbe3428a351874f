package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/assetverse/assetverse-api/internal/application/dto"
	"github.com/assetverse/assetverse-api/internal/domain"
	"github.com/assetverse/assetverse-api/internal/domain/entity"
	"github.com/assetverse/assetverse-api/internal/domain/repository"
)

// URLConfig destinos del redirect del checkout hospedado.
type URLConfig struct {
	ClientURL string // base del frontend; el gateway redirige a /hr/upgrade
}

// BillingUseCase catálogo de paquetes, checkout de upgrade y verificación de
// pagos. La verificación aplica el nuevo límite y registra el pago en una
// misma transacción; session_id único hace el reintento idempotente.
type BillingUseCase struct {
	txRunner    BillingTxRunner
	gateway     PaymentGateway
	receipts    ReceiptPDFGenerator
	packageRepo repository.PackageRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	urls        URLConfig
}

// NewBillingUseCase construye el caso de uso.
func NewBillingUseCase(
	txRunner BillingTxRunner,
	gateway PaymentGateway,
	receipts ReceiptPDFGenerator,
	packageRepo repository.PackageRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	urls URLConfig,
) *BillingUseCase {
	return &BillingUseCase{
		txRunner:    txRunner,
		gateway:     gateway,
		receipts:    receipts,
		packageRepo: packageRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		urls:        urls,
	}
}

// SeedPackages siembra el catálogo en el primer arranque (tabla vacía).
func (uc *BillingUseCase) SeedPackages() error {
	count, err := uc.packageRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	seed := []*entity.Package{
		{ID: uuid.New().String(), Name: "Basic", Price: decimal.NewFromInt(5), EmployeeLimit: 5,
			Features: []string{"Asset Tracking", "Employee Management"}},
		{ID: uuid.New().String(), Name: "Standard", Price: decimal.NewFromInt(8), EmployeeLimit: 10,
			Features: []string{"All Basic features", "Advanced Analytics"}},
		{ID: uuid.New().String(), Name: "Premium", Price: decimal.NewFromInt(15), EmployeeLimit: 20,
			Features: []string{"All Standard features", "24/7 Support"}},
	}
	for _, p := range seed {
		if err := uc.packageRepo.Create(p); err != nil {
			return err
		}
	}
	return nil
}

// ListPackages catálogo completo (público).
func (uc *BillingUseCase) ListPackages() ([]dto.PackageResponse, error) {
	packages, err := uc.packageRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PackageResponse, 0, len(packages))
	for _, p := range packages {
		out = append(out, dto.PackageResponse{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			EmployeeLimit: p.EmployeeLimit,
			Features:      p.Features,
		})
	}
	return out, nil
}

// StartCheckout abre una sesión de pago para el paquete elegido y devuelve la
// URL del checkout hospedado.
func (uc *BillingUseCase) StartCheckout(ctx context.Context, hrEmail string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if in.PackageID == "" {
		return nil, domain.ErrInvalidInput
	}
	pkg, err := uc.packageRepo.GetByID(in.PackageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}
	session, err := uc.gateway.CreateCheckoutSession(ctx, CreateSessionInput{
		CustomerEmail: hrEmail,
		ProductName:   fmt.Sprintf("AssetVerse %s Package", pkg.Name),
		AmountCents:   pkg.Price.Mul(decimal.NewFromInt(100)).IntPart(),
		PackageID:     pkg.ID,
		SuccessURL:    uc.urls.ClientURL + "/hr/upgrade?success=true&pkg=" + pkg.ID,
		CancelURL:     uc.urls.ClientURL + "/hr/upgrade?canceled=true",
	})
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{URL: session.URL}, nil
}

// VerifyCheckout recupera la sesión del gateway y, si está pagada y pertenece
// al caller, aplica el upgrade y registra el pago en una transacción.
// Reverificar la misma sesión devuelve el pago ya registrado sin reaplicar.
func (uc *BillingUseCase) VerifyCheckout(ctx context.Context, hrEmail string, in dto.VerifyPaymentRequest) (*dto.PaymentResponse, error) {
	if in.SessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.paymentRepo.GetBySessionID(in.SessionID); err != nil {
		return nil, err
	} else if existing != nil {
		return toPaymentResponse(existing), nil
	}

	session, err := uc.gateway.RetrieveSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if session.CustomerEmail != hrEmail {
		return nil, domain.ErrForbidden
	}
	if !session.Paid {
		return nil, domain.ErrPaymentNotCompleted
	}
	pkg, err := uc.packageRepo.GetByID(session.PackageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}

	payment := &entity.Payment{
		ID:          uuid.New().String(),
		HREmail:     hrEmail,
		PackageID:   pkg.ID,
		PackageName: pkg.Name,
		Amount:      pkg.Price,
		SessionID:   session.ID,
		PaidAt:      time.Now(),
	}
	err = uc.txRunner.RunBilling(ctx, func(
		userRepo repository.UserRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		return userRepo.UpdateSubscription(hrEmail, pkg.EmployeeLimit, pkg.Name)
	})
	if err == domain.ErrDuplicate {
		// Carrera entre dos verificaciones: la primera ya aplicó el upgrade.
		if winner, gerr := uc.paymentRepo.GetBySessionID(in.SessionID); gerr == nil && winner != nil {
			return toPaymentResponse(winner), nil
		}
	}
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// ListPayments historial de upgrades del propio tenant.
func (uc *BillingUseCase) ListPayments(hrEmail string) ([]dto.PaymentResponse, error) {
	payments, err := uc.paymentRepo.ListByHR(hrEmail)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, *toPaymentResponse(p))
	}
	return out, nil
}

// Receipt genera el comprobante PDF de un pago propio.
func (uc *BillingUseCase) Receipt(ctx context.Context, hrEmail, paymentID string) ([]byte, error) {
	payment, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.HREmail != hrEmail {
		return nil, domain.ErrForbidden
	}
	hr, err := uc.userRepo.GetByEmail(hrEmail)
	if err != nil {
		return nil, err
	}
	if hr == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.receipts.GenerateReceiptPDF(ctx, payment, hr)
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:          p.ID,
		HREmail:     p.HREmail,
		PackageID:   p.PackageID,
		PackageName: p.PackageName,
		Amount:      p.Amount,
		SessionID:   p.SessionID,
		PaidAt:      p.PaidAt,
	}
}
