package repository

import "github.com/assetverse/assetverse-api/internal/domain/entity"

// AffiliationRepository define el puerto de persistencia para Affiliation.
// Crear y borrar solo ocurren dentro de las transacciones del ciclo de
// solicitudes; el resto son lecturas.
type AffiliationRepository interface {
	Create(affiliation *entity.Affiliation) error
	GetByPair(employeeEmail, hrEmail string) (*entity.Affiliation, error)
	DeleteByPair(employeeEmail, hrEmail string) error
	CountByHR(hrEmail string) (int, error)
	ListByEmployee(employeeEmail string) ([]*entity.Affiliation, error)
	ListByHR(hrEmail string) ([]*entity.Affiliation, error)
	// ListByHREmails afiliaciones de varios tenants (para my-team).
	ListByHREmails(hrEmails []string) ([]*entity.Affiliation, error)
}
