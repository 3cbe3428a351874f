package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/assetverse/assetverse-api/internal/domain"
	"github.com/assetverse/assetverse-api/internal/domain/entity"
	"github.com/assetverse/assetverse-api/internal/domain/repository"
)

var _ repository.AffiliationRepository = (*AffiliationRepo)(nil)

const affiliationColumns = `id, employee_email, employee_name, hr_email, company_name, affiliation_date`

// AffiliationRepo implementación del puerto AffiliationRepository sobre PostgreSQL.
type AffiliationRepo struct {
	q Querier
}

// NewAffiliationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAffiliationRepository(q Querier) *AffiliationRepo {
	return &AffiliationRepo{q: q}
}

// Create persiste una afiliación. Par duplicado -> domain.ErrDuplicate.
func (r *AffiliationRepo) Create(affiliation *entity.Affiliation) error {
	query := `
		INSERT INTO employee_affiliations (` + affiliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		affiliation.ID, affiliation.EmployeeEmail, affiliation.EmployeeName,
		affiliation.HREmail, affiliation.CompanyName, affiliation.AffiliationDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert affiliation: %w", err)
	}
	return nil
}

// GetByPair obtiene la afiliación (empleado, HR); nil si no existe.
func (r *AffiliationRepo) GetByPair(employeeEmail, hrEmail string) (*entity.Affiliation, error) {
	query := `
		SELECT ` + affiliationColumns + ` FROM employee_affiliations
		WHERE employee_email = $1 AND hr_email = $2`
	var a entity.Affiliation
	err := r.q.QueryRow(context.Background(), query, employeeEmail, hrEmail).Scan(
		&a.ID, &a.EmployeeEmail, &a.EmployeeName, &a.HREmail, &a.CompanyName, &a.AffiliationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get affiliation: %w", err)
	}
	return &a, nil
}

// DeleteByPair elimina la afiliación (empleado, HR).
func (r *AffiliationRepo) DeleteByPair(employeeEmail, hrEmail string) error {
	query := `DELETE FROM employee_affiliations WHERE employee_email = $1 AND hr_email = $2`
	_, err := r.q.Exec(context.Background(), query, employeeEmail, hrEmail)
	if err != nil {
		return fmt.Errorf("delete affiliation: %w", err)
	}
	return nil
}

// CountByHR afiliaciones vigentes de un tenant (gate del límite de paquete).
func (r *AffiliationRepo) CountByHR(hrEmail string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM employee_affiliations WHERE hr_email = $1`, hrEmail).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count affiliations: %w", err)
	}
	return count, nil
}

// ListByEmployee afiliaciones de un empleado.
func (r *AffiliationRepo) ListByEmployee(employeeEmail string) ([]*entity.Affiliation, error) {
	query := `
		SELECT ` + affiliationColumns + ` FROM employee_affiliations
		WHERE employee_email = $1 ORDER BY affiliation_date`
	return r.list(query, []any{employeeEmail})
}

// ListByHR afiliaciones de un tenant.
func (r *AffiliationRepo) ListByHR(hrEmail string) ([]*entity.Affiliation, error) {
	query := `
		SELECT ` + affiliationColumns + ` FROM employee_affiliations
		WHERE hr_email = $1 ORDER BY affiliation_date`
	return r.list(query, []any{hrEmail})
}

// ListByHREmails afiliaciones de varios tenants (my-team).
func (r *AffiliationRepo) ListByHREmails(hrEmails []string) ([]*entity.Affiliation, error) {
	if len(hrEmails) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + affiliationColumns + ` FROM employee_affiliations
		WHERE hr_email = ANY($1) ORDER BY affiliation_date`
	return r.list(query, []any{hrEmails})
}

func (r *AffiliationRepo) list(query string, args []any) ([]*entity.Affiliation, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list affiliations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Affiliation
	for rows.Next() {
		var a entity.Affiliation
		if err := rows.Scan(&a.ID, &a.EmployeeEmail, &a.EmployeeName, &a.HREmail, &a.CompanyName, &a.AffiliationDate); err != nil {
			return nil, fmt.Errorf("scan affiliation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
