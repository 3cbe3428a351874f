package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/assetverse/assetverse-api/internal/application/dto"
	"github.com/assetverse/assetverse-api/internal/domain"
	"github.com/assetverse/assetverse-api/internal/domain/entity"
	"github.com/assetverse/assetverse-api/internal/domain/repository"
	"github.com/assetverse/assetverse-api/pkg/jwt"
)

// Límite por defecto del plan gratuito al registrar un HR.
const defaultPackageLimit = 5

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase puente de identidad: canjea la aserción de Firebase por un JWT
// de sesión propio y gestiona el registro idempotente de usuarios.
type AuthUseCase struct {
	verifier IdentityVerifier
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(verifier IdentityVerifier, userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{verifier: verifier, userRepo: userRepo, jwtCfg: jwtCfg}
}

// IssueToken verifica el ID token de Firebase y emite el JWT de sesión con el
// rol almacenado. Si el usuario aún no está registrado (flujo de alta en
// curso) el rol por defecto es employee, igual que en el registro.
func (uc *AuthUseCase) IssueToken(ctx context.Context, idToken string) (*dto.TokenResponse, error) {
	if idToken == "" {
		return nil, domain.ErrUnauthorized
	}
	email, _, err := uc.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, domain.ErrForbidden
	}
	role := entity.RoleEmployee
	if user, err := uc.userRepo.GetByEmail(email); err == nil && user != nil {
		role = user.Role
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, email, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

// Register crea el usuario si no existe; si ya existe devuelve el registro
// guardado sin modificarlo (idempotente por email, rol inmutable).
// Devuelve además si el usuario fue creado en esta llamada.
func (uc *AuthUseCase) Register(in dto.RegisterUserRequest) (*dto.UserResponse, bool, error) {
	if in.Email == "" {
		return nil, false, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return ToUserResponse(existing), false, nil
	}

	role := in.Role
	if role != entity.RoleHR {
		role = entity.RoleEmployee
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Name:         in.Name,
		Role:         role,
		ProfileImage: in.PhotoURL,
		DateOfBirth:  parseDate(in.DateOfBirth),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == entity.RoleHR {
		user.CompanyName = in.CompanyName
		user.CompanyLogo = in.CompanyLogo
		user.PackageLimit = defaultPackageLimit
		user.CurrentEmployees = 0
		user.Subscription = "basic"
	}
	if err := uc.userRepo.Create(user); err != nil {
		if err == domain.ErrDuplicate {
			// Carrera entre dos registros simultáneos: devolver el ganador.
			if winner, gerr := uc.userRepo.GetByEmail(in.Email); gerr == nil && winner != nil {
				return ToUserResponse(winner), false, nil
			}
		}
		return nil, false, err
	}
	return ToUserResponse(user), true, nil
}

// Profile devuelve el registro propio del usuario autenticado.
func (uc *AuthUseCase) Profile(email string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// ToUserResponse mapea la entidad al DTO público.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Role:             u.Role,
		ProfileImage:     u.ProfileImage,
		DateOfBirth:      u.DateOfBirth,
		CompanyName:      u.CompanyName,
		CompanyLogo:      u.CompanyLogo,
		PackageLimit:     u.PackageLimit,
		CurrentEmployees: u.CurrentEmployees,
		Subscription:     u.Subscription,
		CreatedAt:        u.CreatedAt,
	}
}

// parseDate acepta RFC 3339 o YYYY-MM-DD; cualquier otra cosa se ignora.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
