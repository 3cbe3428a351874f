package requests_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetverse/assetverse-api/internal/application/dto"
	"github.com/assetverse/assetverse-api/internal/application/requests"
	"github.com/assetverse/assetverse-api/internal/domain"
	"github.com/assetverse/assetverse-api/internal/domain/entity"
	"github.com/assetverse/assetverse-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes in-memory
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore implementa los cuatro puertos de persistencia sobre maps. El fake
// de TxRunner entrega estos mismos repos al callback: sin atomicidad real,
// suficiente para verificar la lógica de negocio.
type fakeStore struct {
	users        map[string]*entity.User        // por email
	assets       map[string]*entity.Asset       // por id
	requests     map[string]*entity.Request     // por id
	affiliations map[string]*entity.Affiliation // por employeeEmail|hrEmail
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[string]*entity.User{},
		assets:       map[string]*entity.Asset{},
		requests:     map[string]*entity.Request{},
		affiliations: map[string]*entity.Affiliation{},
	}
}

func pairKey(employeeEmail, hrEmail string) string { return employeeEmail + "|" + hrEmail }

// --- repository.UserRepository ---

func (s *fakeStore) Create(u *entity.User) error { s.users[u.Email] = u; return nil }
func (s *fakeStore) GetByEmail(email string) (*entity.User, error) {
	return s.users[email], nil
}
func (s *fakeStore) ListByEmails(emails []string) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, e := range emails {
		if u := s.users[e]; u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}
func (s *fakeStore) AdjustEmployeeCount(email string, delta int) error {
	if u := s.users[email]; u != nil {
		u.CurrentEmployees += delta
		if u.CurrentEmployees < 0 {
			u.CurrentEmployees = 0
		}
	}
	return nil
}
func (s *fakeStore) UpdateSubscription(email string, limit int, subscription string) error {
	if u := s.users[email]; u != nil {
		u.PackageLimit = limit
		u.Subscription = subscription
	}
	return nil
}

// --- repository.AssetRepository (vía wrapper para evitar colisión de Create) ---

type fakeAssetRepo struct{ s *fakeStore }

func (r fakeAssetRepo) Create(a *entity.Asset) error { r.s.assets[a.ID] = a; return nil }
func (r fakeAssetRepo) GetByID(id string) (*entity.Asset, error) {
	return r.s.assets[id], nil
}
func (r fakeAssetRepo) GetForUpdate(id string) (*entity.Asset, error) {
	return r.s.assets[id], nil
}
func (r fakeAssetRepo) UpdateAvailable(id string, available int) error {
	if a := r.s.assets[id]; a != nil {
		a.AvailableQuantity = available
	}
	return nil
}
func (r fakeAssetRepo) List(filter repository.AssetFilter) ([]*entity.Asset, error) {
	out := []*entity.Asset{}
	for _, a := range r.s.assets {
		out = append(out, a)
	}
	return out, nil
}

// --- repository.RequestRepository ---

type fakeRequestRepo struct{ s *fakeStore }

func (r fakeRequestRepo) Create(req *entity.Request) error { r.s.requests[req.ID] = req; return nil }
func (r fakeRequestRepo) GetByID(id string) (*entity.Request, error) {
	return r.s.requests[id], nil
}
func (r fakeRequestRepo) GetForUpdate(id string) (*entity.Request, error) {
	return r.s.requests[id], nil
}
func (r fakeRequestRepo) UpdateStatus(id, status string, approvalDate *time.Time) error {
	if req := r.s.requests[id]; req != nil {
		req.Status = status
		req.ApprovalDate = approvalDate
	}
	return nil
}
func (r fakeRequestRepo) ListByRequester(f repository.RequestFilter) ([]*entity.Request, error) {
	out := []*entity.Request{}
	for _, req := range r.s.requests {
		if req.RequesterEmail != f.RequesterEmail {
			continue
		}
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}
func (r fakeRequestRepo) ListByHR(f repository.RequestFilter) ([]*entity.Request, error) {
	out := []*entity.Request{}
	for _, req := range r.s.requests {
		if req.HREmail == f.HREmail {
			out = append(out, req)
		}
	}
	return out, nil
}
func (r fakeRequestRepo) ListApprovedPair(requesterEmail, hrEmail string) ([]*entity.Request, error) {
	out := []*entity.Request{}
	for _, req := range r.s.requests {
		if req.RequesterEmail == requesterEmail && req.HREmail == hrEmail && req.Status == entity.RequestStatusApproved {
			out = append(out, req)
		}
	}
	return out, nil
}
func (r fakeRequestRepo) CountApprovedPair(requesterEmail, hrEmail string) (int, error) {
	approved, _ := r.ListApprovedPair(requesterEmail, hrEmail)
	return len(approved), nil
}

// --- repository.AffiliationRepository ---

type fakeAffiliationRepo struct{ s *fakeStore }

func (r fakeAffiliationRepo) Create(a *entity.Affiliation) error {
	r.s.affiliations[pairKey(a.EmployeeEmail, a.HREmail)] = a
	return nil
}
func (r fakeAffiliationRepo) GetByPair(employeeEmail, hrEmail string) (*entity.Affiliation, error) {
	return r.s.affiliations[pairKey(employeeEmail, hrEmail)], nil
}
func (r fakeAffiliationRepo) DeleteByPair(employeeEmail, hrEmail string) error {
	delete(r.s.affiliations, pairKey(employeeEmail, hrEmail))
	return nil
}
func (r fakeAffiliationRepo) CountByHR(hrEmail string) (int, error) {
	n := 0
	for _, a := range r.s.affiliations {
		if a.HREmail == hrEmail {
			n++
		}
	}
	return n, nil
}
func (r fakeAffiliationRepo) ListByEmployee(employeeEmail string) ([]*entity.Affiliation, error) {
	out := []*entity.Affiliation{}
	for _, a := range r.s.affiliations {
		if a.EmployeeEmail == employeeEmail {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r fakeAffiliationRepo) ListByHR(hrEmail string) ([]*entity.Affiliation, error) {
	out := []*entity.Affiliation{}
	for _, a := range r.s.affiliations {
		if a.HREmail == hrEmail {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r fakeAffiliationRepo) ListByHREmails(hrEmails []string) ([]*entity.Affiliation, error) {
	out := []*entity.Affiliation{}
	for _, hr := range hrEmails {
		part, _ := r.ListByHR(hr)
		out = append(out, part...)
	}
	return out, nil
}

// --- requests.TxRunner ---

type fakeTxRunner struct{ s *fakeStore }

func (t fakeTxRunner) Run(_ context.Context, fn func(
	repository.RequestRepository,
	repository.AssetRepository,
	repository.AffiliationRepository,
	repository.UserRepository,
) error) error {
	return fn(fakeRequestRepo{t.s}, fakeAssetRepo{t.s}, fakeAffiliationRepo{t.s}, t.s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	hrEmail  = "hr@acme.test"
	empEmail = "emp@mail.test"
)

func newLifecycle(s *fakeStore) *requests.LifecycleUseCase {
	return requests.NewLifecycleUseCase(fakeTxRunner{s}, fakeRequestRepo{s}, fakeAssetRepo{s}, s)
}

func seedHR(s *fakeStore, packageLimit int) {
	s.users[hrEmail] = &entity.User{
		ID: "u-hr", Email: hrEmail, Name: "Acme HR", Role: entity.RoleHR,
		CompanyName: "Acme Corp", PackageLimit: packageLimit, Subscription: "basic",
	}
}

func seedAsset(s *fakeStore, id string, total, available int) {
	s.assets[id] = &entity.Asset{
		ID: id, HREmail: hrEmail, Name: "Laptop", Type: entity.AssetTypeReturnable,
		ProductQuantity: total, AvailableQuantity: available, DateAdded: time.Now(),
	}
}

func seedPending(s *fakeStore, id, assetID string) {
	s.requests[id] = &entity.Request{
		ID: id, AssetID: assetID, AssetName: "Laptop", AssetType: entity.AssetTypeReturnable,
		CompanyName: "Acme Corp", HREmail: hrEmail,
		RequesterEmail: empEmail, RequesterName: "Emp Uno",
		Status: entity.RequestStatusPending, RequestDate: time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_TomaSnapshotDelServidor(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 5)
	uc := newLifecycle(s)

	out, err := uc.Create(empEmail, "Emp Uno", dto.CreateRequestRequest{AssetID: "a1", Note: "para onboarding"})
	require.NoError(t, err)

	// El snapshot sale del registro del activo y del HR dueño, no del cliente.
	assert.Equal(t, "Laptop", out.AssetName)
	assert.Equal(t, entity.AssetTypeReturnable, out.AssetType)
	assert.Equal(t, "Acme Corp", out.CompanyName)
	assert.Equal(t, hrEmail, out.HREmail)
	assert.Equal(t, entity.RequestStatusPending, out.RequestStatus)
	assert.Equal(t, "para onboarding", out.Note)

	// La creación no descuenta stock: eso ocurre recién al aprobar.
	assert.Equal(t, 5, s.assets["a1"].AvailableQuantity)
}

func TestCreate_SinStock_Rechaza(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 0)
	uc := newLifecycle(s)

	_, err := uc.Create(empEmail, "Emp Uno", dto.CreateRequestRequest{AssetID: "a1"})
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestCreate_ActivoInexistente_NotFound(t *testing.T) {
	s := newFakeStore()
	uc := newLifecycle(s)

	_, err := uc.Create(empEmail, "Emp Uno", dto.CreateRequestRequest{AssetID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_DescuentaStockYAfilia(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 5)
	seedPending(s, "r1", "a1")
	uc := newLifecycle(s)

	require.NoError(t, uc.Approve(context.Background(), hrEmail, "r1"))

	assert.Equal(t, entity.RequestStatusApproved, s.requests["r1"].Status)
	assert.NotNil(t, s.requests["r1"].ApprovalDate)
	assert.Equal(t, 4, s.assets["a1"].AvailableQuantity)

	aff := s.affiliations[pairKey(empEmail, hrEmail)]
	require.NotNil(t, aff, "la primera aprobación debe crear la afiliación")
	assert.Equal(t, "Acme Corp", aff.CompanyName)
	assert.Equal(t, 1, s.users[hrEmail].CurrentEmployees)
}

func TestApprove_SegundaAprobacionMismoPar_NoDuplicaAfiliacion(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 5)
	seedPending(s, "r1", "a1")
	seedPending(s, "r2", "a1")
	uc := newLifecycle(s)

	require.NoError(t, uc.Approve(context.Background(), hrEmail, "r1"))
	require.NoError(t, uc.Approve(context.Background(), hrEmail, "r2"))

	assert.Equal(t, 3, s.assets["a1"].AvailableQuantity)
	assert.Len(t, s.affiliations, 1, "exactamente una afiliación por par")
	assert.Equal(t, 1, s.users[hrEmail].CurrentEmployees)
}

func TestApprove_LimiteDePaquete_FallaSinMutar(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 1)
	seedAsset(s, "a1", 5, 5)
	seedPending(s, "r1", "a1")
	// Otro empleado ya ocupa el único cupo del paquete.
	s.affiliations[pairKey("otro@mail.test", hrEmail)] = &entity.Affiliation{
		ID: "af-0", EmployeeEmail: "otro@mail.test", HREmail: hrEmail,
	}
	uc := newLifecycle(s)

	err := uc.Approve(context.Background(), hrEmail, "r1")
	assert.ErrorIs(t, err, domain.ErrPackageLimitReached)

	// El chequeo del límite ocurre antes de cualquier escritura.
	assert.Equal(t, entity.RequestStatusPending, s.requests["r1"].Status)
	assert.Equal(t, 5, s.assets["a1"].AvailableQuantity)
	assert.Nil(t, s.affiliations[pairKey(empEmail, hrEmail)])
}

func TestApprove_EmpleadoYaAfiliado_IgnoraLimite(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 1)
	seedAsset(s, "a1", 5, 5)
	seedPending(s, "r1", "a1")
	// El solicitante ya está afiliado: el límite no aplica aunque esté lleno.
	s.affiliations[pairKey(empEmail, hrEmail)] = &entity.Affiliation{
		ID: "af-1", EmployeeEmail: empEmail, HREmail: hrEmail,
	}
	s.users[hrEmail].CurrentEmployees = 1
	uc := newLifecycle(s)

	require.NoError(t, uc.Approve(context.Background(), hrEmail, "r1"))
	assert.Equal(t, 4, s.assets["a1"].AvailableQuantity)
	assert.Equal(t, 1, s.users[hrEmail].CurrentEmployees)
}

func TestApprove_SinStock_Conflicto(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 0)
	seedPending(s, "r1", "a1")
	uc := newLifecycle(s)

	err := uc.Approve(context.Background(), hrEmail, "r1")
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Equal(t, entity.RequestStatusPending, s.requests["r1"].Status)
}

func TestApprove_DeOtroHR_Prohibido(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 5)
	seedPending(s, "r1", "a1")
	uc := newLifecycle(s)

	err := uc.Approve(context.Background(), "intruso@hr.test", "r1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTransition_EstadoInvalido(t *testing.T) {
	s := newFakeStore()
	uc := newLifecycle(s)

	err := uc.Transition(context.Background(), hrEmail, "r1", "returned")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReject_NoTocaStockNiAfiliaciones(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 5)
	seedPending(s, "r1", "a1")
	uc := newLifecycle(s)

	require.NoError(t, uc.Reject(context.Background(), hrEmail, "r1"))

	assert.Equal(t, entity.RequestStatusRejected, s.requests["r1"].Status)
	assert.Equal(t, 5, s.assets["a1"].AvailableQuantity)
	assert.Empty(t, s.affiliations)
}

// ──────────────────────────────────────────────────────────────────────────────
// Return
// ──────────────────────────────────────────────────────────────────────────────

func TestReturn_RestauraUnaUnidad(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 5)
	seedPending(s, "r1", "a1")
	uc := newLifecycle(s)

	require.NoError(t, uc.Approve(context.Background(), hrEmail, "r1"))
	require.NoError(t, uc.Return(context.Background(), empEmail, "r1"))

	assert.Equal(t, entity.RequestStatusReturned, s.requests["r1"].Status)
	assert.Equal(t, 5, s.assets["a1"].AvailableQuantity)
}

func TestReturn_Idempotente(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 5)
	seedPending(s, "r1", "a1")
	uc := newLifecycle(s)

	require.NoError(t, uc.Approve(context.Background(), hrEmail, "r1"))
	require.NoError(t, uc.Return(context.Background(), empEmail, "r1"))
	// Repetir la devolución es un no-op exitoso, sin sumar stock de más.
	require.NoError(t, uc.Return(context.Background(), empEmail, "r1"))
	assert.Equal(t, 5, s.assets["a1"].AvailableQuantity)
}

func TestReturn_ClampEnElTotal(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	// Disponible ya igual al total (estado reparado a mano): el clamp evita pasarse.
	seedAsset(s, "a1", 5, 5)
	s.requests["r1"] = &entity.Request{
		ID: "r1", AssetID: "a1", HREmail: hrEmail,
		RequesterEmail: empEmail, Status: entity.RequestStatusApproved,
	}
	uc := newLifecycle(s)

	require.NoError(t, uc.Return(context.Background(), empEmail, "r1"))
	assert.Equal(t, 5, s.assets["a1"].AvailableQuantity, "nunca por encima del total")
}

func TestReturn_PendienteEsConflicto(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 5)
	seedPending(s, "r1", "a1")
	uc := newLifecycle(s)

	err := uc.Return(context.Background(), empEmail, "r1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReturn_DeOtroEmpleado_Prohibido(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 5)
	seedPending(s, "r1", "a1")
	uc := newLifecycle(s)

	require.NoError(t, uc.Approve(context.Background(), hrEmail, "r1"))
	err := uc.Return(context.Background(), "otro@mail.test", "r1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// RemoveEmployee
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoveEmployee_CascadaDeDevoluciones(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 5)
	seedAsset(s, "a2", 3, 3)
	seedPending(s, "r1", "a1")
	seedPending(s, "r2", "a2")
	uc := newLifecycle(s)

	require.NoError(t, uc.Approve(context.Background(), hrEmail, "r1"))
	require.NoError(t, uc.Approve(context.Background(), hrEmail, "r2"))
	require.Equal(t, 4, s.assets["a1"].AvailableQuantity)
	require.Equal(t, 2, s.assets["a2"].AvailableQuantity)

	require.NoError(t, uc.RemoveEmployee(context.Background(), hrEmail, empEmail))

	assert.Nil(t, s.affiliations[pairKey(empEmail, hrEmail)])
	assert.Equal(t, 0, s.users[hrEmail].CurrentEmployees)
	assert.Equal(t, entity.RequestStatusReturned, s.requests["r1"].Status)
	assert.Equal(t, entity.RequestStatusReturned, s.requests["r2"].Status)
	assert.Equal(t, 5, s.assets["a1"].AvailableQuantity)
	assert.Equal(t, 3, s.assets["a2"].AvailableQuantity)
}

func TestRemoveEmployee_NoAfiliado_NotFound(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	uc := newLifecycle(s)

	err := uc.RemoveEmployee(context.Background(), hrEmail, empEmail)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListApproved_SoloAprobadas(t *testing.T) {
	s := newFakeStore()
	seedHR(s, 5)
	seedAsset(s, "a1", 5, 5)
	seedPending(s, "r1", "a1")
	seedPending(s, "r2", "a1")
	uc := newLifecycle(s)

	require.NoError(t, uc.Approve(context.Background(), hrEmail, "r1"))
	require.NoError(t, uc.Reject(context.Background(), hrEmail, "r2"))

	out, err := uc.ListApproved(empEmail, dto.ListRequestsRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "r1", out.Items[0].ID)
	assert.Equal(t, entity.RequestStatusApproved, out.Items[0].RequestStatus)
}
