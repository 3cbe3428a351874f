package entity

import "github.com/shopspring/decimal"

// Package es un nivel del catálogo de suscripción (solo lectura para tenants;
// se siembra en el primer arranque si la tabla está vacía).
type Package struct {
	ID            string
	Name          string
	Price         decimal.Decimal // USD mensual
	EmployeeLimit int
	Features      []string
}
