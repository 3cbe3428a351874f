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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, hr_email, package_id, package_name, amount, session_id, paid_at`

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste el registro inmutable del pago.
// session_id repetido -> domain.ErrDuplicate (guarda anti-replay).
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.HREmail, payment.PackageID, payment.PackageName,
		payment.Amount, payment.SessionID, payment.PaidAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID; nil si no existe.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return r.get(query, id)
}

// GetBySessionID obtiene un pago por la sesión del gateway; nil si no existe.
func (r *PaymentRepo) GetBySessionID(sessionID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE session_id = $1`
	return r.get(query, sessionID)
}

// ListByHR historial de pagos de un tenant, más reciente primero.
func (r *PaymentRepo) ListByHR(hrEmail string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE hr_email = $1 ORDER BY paid_at DESC`
	rows, err := r.q.Query(context.Background(), query, hrEmail)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.HREmail, &p.PackageID, &p.PackageName, &p.Amount, &p.SessionID, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *PaymentRepo) get(query string, arg any) (*entity.Payment, error) {
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.HREmail, &p.PackageID, &p.PackageName, &p.Amount, &p.SessionID, &p.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}
