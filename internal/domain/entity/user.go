package entity

import "time"

// Roles válidos para User.
const (
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// User representa una cuenta del sistema. El email es la clave natural
// (la identidad la emite Firebase; aquí nunca se guardan credenciales).
// Los campos de tenant (CompanyName, PackageLimit, etc.) solo aplican al rol hr.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string // hr | employee — inmutable después del registro
	DateOfBirth  *time.Time
	ProfileImage string

	// Campos de tenant HR
	CompanyName      string
	CompanyLogo      string
	PackageLimit     int    // máximo de empleados afiliados concurrentes
	CurrentEmployees int    // contador mantenido por el ciclo de solicitudes
	Subscription     string // nombre del paquete vigente ("basic" por defecto)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsHR indica si la cuenta es un tenant HR.
func (u *User) IsHR() bool { return u.Role == RoleHR }
