package entity

import "time"

// Affiliation es la relación empleado ↔ tenant HR. Nace exactamente una vez
// por par (primera aprobación) y se elimina cuando el HR remueve al empleado.
// Es el registro autoritativo para el límite de paquete del HR.
type Affiliation struct {
	ID              string
	EmployeeEmail   string
	EmployeeName    string
	HREmail         string
	CompanyName     string
	AffiliationDate time.Time
}
