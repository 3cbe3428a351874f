package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetverse/assetverse-api/internal/application/billing"
	"github.com/assetverse/assetverse-api/internal/application/dto"
	"github.com/assetverse/assetverse-api/internal/domain"
	"github.com/assetverse/assetverse-api/internal/domain/entity"
	"github.com/assetverse/assetverse-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeBillingStore struct {
	users    map[string]*entity.User    // por email
	packages map[string]*entity.Package // por id
	payments map[string]*entity.Payment // por id
}

func newFakeBillingStore() *fakeBillingStore {
	return &fakeBillingStore{
		users:    map[string]*entity.User{},
		packages: map[string]*entity.Package{},
		payments: map[string]*entity.Payment{},
	}
}

// --- repository.UserRepository ---

func (s *fakeBillingStore) Create(u *entity.User) error { s.users[u.Email] = u; return nil }
func (s *fakeBillingStore) GetByEmail(email string) (*entity.User, error) {
	return s.users[email], nil
}
func (s *fakeBillingStore) ListByEmails(emails []string) ([]*entity.User, error) {
	return nil, nil
}
func (s *fakeBillingStore) AdjustEmployeeCount(email string, delta int) error { return nil }
func (s *fakeBillingStore) UpdateSubscription(email string, limit int, subscription string) error {
	if u := s.users[email]; u != nil {
		u.PackageLimit = limit
		u.Subscription = subscription
	}
	return nil
}

// --- repository.PackageRepository ---

type fakePackageRepo struct{ s *fakeBillingStore }

func (r fakePackageRepo) Create(p *entity.Package) error { r.s.packages[p.ID] = p; return nil }
func (r fakePackageRepo) GetByID(id string) (*entity.Package, error) {
	return r.s.packages[id], nil
}
func (r fakePackageRepo) List() ([]*entity.Package, error) {
	out := []*entity.Package{}
	for _, p := range r.s.packages {
		out = append(out, p)
	}
	return out, nil
}
func (r fakePackageRepo) Count() (int, error) { return len(r.s.packages), nil }

// --- repository.PaymentRepository ---

type fakePaymentRepo struct{ s *fakeBillingStore }

func (r fakePaymentRepo) Create(p *entity.Payment) error {
	for _, existing := range r.s.payments {
		if existing.SessionID == p.SessionID {
			return domain.ErrDuplicate
		}
	}
	r.s.payments[p.ID] = p
	return nil
}
func (r fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	return r.s.payments[id], nil
}
func (r fakePaymentRepo) GetBySessionID(sessionID string) (*entity.Payment, error) {
	for _, p := range r.s.payments {
		if p.SessionID == sessionID {
			return p, nil
		}
	}
	return nil, nil
}
func (r fakePaymentRepo) ListByHR(hrEmail string) ([]*entity.Payment, error) {
	out := []*entity.Payment{}
	for _, p := range r.s.payments {
		if p.HREmail == hrEmail {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- billing.BillingTxRunner ---

type fakeBillingTx struct{ s *fakeBillingStore }

func (t fakeBillingTx) RunBilling(_ context.Context, fn func(
	repository.UserRepository,
	repository.PaymentRepository,
) error) error {
	return fn(t.s, fakePaymentRepo{t.s})
}

// --- billing.PaymentGateway ---

type fakeGateway struct {
	sessions map[string]*billing.CheckoutSession
	created  []billing.CreateSessionInput
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, in billing.CreateSessionInput) (*billing.CheckoutSession, error) {
	g.created = append(g.created, in)
	return &billing.CheckoutSession{ID: "cs_new", URL: "https://checkout.test/cs_new"}, nil
}
func (g *fakeGateway) RetrieveSession(_ context.Context, sessionID string) (*billing.CheckoutSession, error) {
	return g.sessions[sessionID], nil
}

// --- billing.ReceiptPDFGenerator ---

type fakeReceipts struct{}

func (fakeReceipts) GenerateReceiptPDF(_ context.Context, _ *entity.Payment, _ *entity.User) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const hrEmail = "hr@acme.test"

func newBillingUC(s *fakeBillingStore, gw *fakeGateway) *billing.BillingUseCase {
	return billing.NewBillingUseCase(
		fakeBillingTx{s}, gw, fakeReceipts{},
		fakePackageRepo{s}, fakePaymentRepo{s}, s,
		billing.URLConfig{ClientURL: "https://app.test"},
	)
}

func seedBilling(s *fakeBillingStore) {
	s.users[hrEmail] = &entity.User{
		ID: "u-hr", Email: hrEmail, Role: entity.RoleHR, CompanyName: "Acme Corp",
		PackageLimit: 5, Subscription: "basic",
	}
	s.packages["pkg-standard"] = &entity.Package{
		ID: "pkg-standard", Name: "Standard", Price: decimal.NewFromInt(8), EmployeeLimit: 10,
		Features: []string{"All Basic features", "Advanced Analytics"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSeedPackages_SoloConCatalogoVacio(t *testing.T) {
	s := newFakeBillingStore()
	uc := newBillingUC(s, &fakeGateway{})

	require.NoError(t, uc.SeedPackages())
	assert.Len(t, s.packages, 3, "Basic, Standard y Premium")

	// Re-ejecutar el seed con catálogo poblado no duplica.
	require.NoError(t, uc.SeedPackages())
	assert.Len(t, s.packages, 3)
}

func TestStartCheckout_ConvierteElPrecioACentavos(t *testing.T) {
	s := newFakeBillingStore()
	seedBilling(s)
	gw := &fakeGateway{}
	uc := newBillingUC(s, gw)

	out, err := uc.StartCheckout(context.Background(), hrEmail, dto.CheckoutRequest{PackageID: "pkg-standard"})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.test/cs_new", out.URL)

	require.Len(t, gw.created, 1)
	assert.Equal(t, int64(800), gw.created[0].AmountCents)
	assert.Equal(t, hrEmail, gw.created[0].CustomerEmail)
	assert.Equal(t, "pkg-standard", gw.created[0].PackageID)
	assert.Contains(t, gw.created[0].SuccessURL, "https://app.test/hr/upgrade")
}

func TestStartCheckout_PaqueteInexistente(t *testing.T) {
	s := newFakeBillingStore()
	seedBilling(s)
	uc := newBillingUC(s, &fakeGateway{})

	_, err := uc.StartCheckout(context.Background(), hrEmail, dto.CheckoutRequest{PackageID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerifyCheckout_AplicaElUpgrade(t *testing.T) {
	s := newFakeBillingStore()
	seedBilling(s)
	gw := &fakeGateway{sessions: map[string]*billing.CheckoutSession{
		"cs_1": {ID: "cs_1", Paid: true, CustomerEmail: hrEmail, PackageID: "pkg-standard"},
	}}
	uc := newBillingUC(s, gw)

	out, err := uc.VerifyCheckout(context.Background(), hrEmail, dto.VerifyPaymentRequest{SessionID: "cs_1"})
	require.NoError(t, err)

	assert.Equal(t, "Standard", out.PackageName)
	assert.True(t, out.Amount.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, 10, s.users[hrEmail].PackageLimit, "el límite sube al del paquete pagado")
	assert.Equal(t, "Standard", s.users[hrEmail].Subscription)
	assert.Len(t, s.payments, 1)
}

func TestVerifyCheckout_ReintentoDevuelveElPagoOriginal(t *testing.T) {
	s := newFakeBillingStore()
	seedBilling(s)
	gw := &fakeGateway{sessions: map[string]*billing.CheckoutSession{
		"cs_1": {ID: "cs_1", Paid: true, CustomerEmail: hrEmail, PackageID: "pkg-standard"},
	}}
	uc := newBillingUC(s, gw)

	first, err := uc.VerifyCheckout(context.Background(), hrEmail, dto.VerifyPaymentRequest{SessionID: "cs_1"})
	require.NoError(t, err)
	second, err := uc.VerifyCheckout(context.Background(), hrEmail, dto.VerifyPaymentRequest{SessionID: "cs_1"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "misma sesión -> mismo pago registrado")
	assert.Len(t, s.payments, 1, "el reintento no registra un segundo pago")
}

func TestVerifyCheckout_SesionNoPagada(t *testing.T) {
	s := newFakeBillingStore()
	seedBilling(s)
	gw := &fakeGateway{sessions: map[string]*billing.CheckoutSession{
		"cs_1": {ID: "cs_1", Paid: false, CustomerEmail: hrEmail, PackageID: "pkg-standard"},
	}}
	uc := newBillingUC(s, gw)

	_, err := uc.VerifyCheckout(context.Background(), hrEmail, dto.VerifyPaymentRequest{SessionID: "cs_1"})
	assert.ErrorIs(t, err, domain.ErrPaymentNotCompleted)
	assert.Equal(t, 5, s.users[hrEmail].PackageLimit, "sin pago no hay upgrade")
}

func TestVerifyCheckout_SesionDeOtroUsuario(t *testing.T) {
	s := newFakeBillingStore()
	seedBilling(s)
	gw := &fakeGateway{sessions: map[string]*billing.CheckoutSession{
		"cs_1": {ID: "cs_1", Paid: true, CustomerEmail: "otro@hr.test", PackageID: "pkg-standard"},
	}}
	uc := newBillingUC(s, gw)

	_, err := uc.VerifyCheckout(context.Background(), hrEmail, dto.VerifyPaymentRequest{SessionID: "cs_1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReceipt_SoloDelPropioTenant(t *testing.T) {
	s := newFakeBillingStore()
	seedBilling(s)
	s.payments["p1"] = &entity.Payment{
		ID: "p1", HREmail: hrEmail, PackageID: "pkg-standard", PackageName: "Standard",
		Amount: decimal.NewFromInt(8), SessionID: "cs_1",
	}
	uc := newBillingUC(s, &fakeGateway{})

	pdf, err := uc.Receipt(context.Background(), hrEmail, "p1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	_, err = uc.Receipt(context.Background(), "otro@hr.test", "p1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
