package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment es el registro inmutable de un upgrade completado.
// SessionID es único: verificar dos veces la misma sesión no duplica el log.
type Payment struct {
	ID          string
	HREmail     string
	PackageID   string
	PackageName string
	Amount      decimal.Decimal
	SessionID   string // id de la sesión del gateway externo
	PaidAt      time.Time
}
