package dto

import "time"

// TokenRequest intercambio de ID token de Firebase por JWT de sesión.
type TokenRequest struct {
	Token string `json:"token"`
}

// TokenResponse JWT de sesión firmado por la aplicación.
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterUserRequest alta idempotente por email. CompanyName/CompanyLogo
// solo se consideran cuando role = hr.
type RegisterUserRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"` // hr | employee (employee por defecto)
	PhotoURL    string `json:"photoURL"`
	DateOfBirth string `json:"dateOfBirth"` // RFC 3339 o YYYY-MM-DD, opcional
	CompanyName string `json:"companyName"`
	CompanyLogo string `json:"companyLogo"`
}

// UserResponse representación pública de un usuario.
type UserResponse struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Role             string     `json:"role"`
	ProfileImage     string     `json:"profileImage,omitempty"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	CompanyName      string     `json:"companyName,omitempty"`
	CompanyLogo      string     `json:"companyLogo,omitempty"`
	PackageLimit     int        `json:"packageLimit,omitempty"`
	CurrentEmployees int        `json:"currentEmployees,omitempty"`
	Subscription     string     `json:"subscription,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}
