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

var _ repository.PackageRepository = (*PackageRepo)(nil)

// PackageRepo implementación del puerto PackageRepository sobre PostgreSQL.
type PackageRepo struct {
	q Querier
}

// NewPackageRepository construye el adaptador.
func NewPackageRepository(q Querier) *PackageRepo {
	return &PackageRepo{q: q}
}

// Create persiste un paquete (solo lo usa la siembra inicial).
func (r *PackageRepo) Create(pkg *entity.Package) error {
	query := `
		INSERT INTO packages (id, name, price, employee_limit, features)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		pkg.ID, pkg.Name, pkg.Price, pkg.EmployeeLimit, pkg.Features,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert package: %w", err)
	}
	return nil
}

// GetByID obtiene un paquete por ID; nil si no existe.
func (r *PackageRepo) GetByID(id string) (*entity.Package, error) {
	query := `SELECT id, name, price, employee_limit, features FROM packages WHERE id = $1`
	var p entity.Package
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.EmployeeLimit, &p.Features,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return &p, nil
}

// List catálogo completo ordenado por precio ascendente.
func (r *PackageRepo) List() ([]*entity.Package, error) {
	query := `SELECT id, name, price, employee_limit, features FROM packages ORDER BY price`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Package
	for rows.Next() {
		var p entity.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.EmployeeLimit, &p.Features); err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count cantidad de paquetes en el catálogo.
func (r *PackageRepo) Count() (int, error) {
	var count int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM packages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count packages: %w", err)
	}
	return count, nil
}
