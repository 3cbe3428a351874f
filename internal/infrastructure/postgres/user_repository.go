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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, name, role, date_of_birth, profile_image,
	company_name, company_logo, package_limit, current_employees, subscription,
	created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email duplicado -> domain.ErrDuplicate.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.Name, user.Role, user.DateOfBirth, user.ProfileImage,
		user.CompanyName, user.CompanyLogo, user.PackageLimit, user.CurrentEmployees, user.Subscription,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail obtiene un usuario por email; nil si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// ListByEmails obtiene varios usuarios por email (para roster y my-team).
func (r *UserRepo) ListByEmails(emails []string) ([]*entity.User, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ANY($1) ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, emails)
	if err != nil {
		return nil, fmt.Errorf("list users by emails: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// AdjustEmployeeCount suma delta a current_employees con piso en cero.
func (r *UserRepo) AdjustEmployeeCount(email string, delta int) error {
	query := `
		UPDATE users
		SET current_employees = GREATEST(current_employees + $2, 0), updated_at = now()
		WHERE email = $1`
	_, err := r.q.Exec(context.Background(), query, email, delta)
	if err != nil {
		return fmt.Errorf("adjust employee count: %w", err)
	}
	return nil
}

// UpdateSubscription fija límite y nombre del paquete tras un pago verificado.
func (r *UserRepo) UpdateSubscription(email string, packageLimit int, subscription string) error {
	query := `
		UPDATE users
		SET package_limit = $2, subscription = $3, updated_at = now()
		WHERE email = $1`
	tag, err := r.q.Exec(context.Background(), query, email, packageLimit, subscription)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.DateOfBirth, &u.ProfileImage,
		&u.CompanyName, &u.CompanyLogo, &u.PackageLimit, &u.CurrentEmployees, &u.Subscription,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
