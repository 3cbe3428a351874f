package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/assetverse/assetverse-api/internal/domain/entity"
	"github.com/assetverse/assetverse-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = `id, asset_id, asset_name, asset_type, asset_image, company_name,
	hr_email, requester_email, requester_name, note, status, request_date, approval_date`

// RequestRepo implementación del puerto RequestRepository sobre PostgreSQL.
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

// Create persiste una solicitud nueva.
func (r *RequestRepo) Create(request *entity.Request) error {
	query := `
		INSERT INTO requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.AssetID, request.AssetName, request.AssetType, request.AssetImage,
		request.CompanyName, request.HREmail, request.RequesterEmail, request.RequesterName,
		request.Note, request.Status, request.RequestDate, request.ApprovalDate,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID; nil si no existe.
func (r *RequestRepo) GetByID(id string) (*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	req, err := scanRequest(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// GetForUpdate obtiene la solicitud y bloquea la fila (SELECT FOR UPDATE).
func (r *RequestRepo) GetForUpdate(id string) (*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1 FOR UPDATE`
	req, err := scanRequest(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get request for update: %w", err)
	}
	return req, nil
}

// UpdateStatus fija estado y fecha de resolución.
func (r *RequestRepo) UpdateStatus(id, status string, approvalDate *time.Time) error {
	query := `UPDATE requests SET status = $2, approval_date = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, approvalDate)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return nil
}

// ListByRequester solicitudes de un empleado (búsqueda por nombre del activo).
func (r *RequestRepo) ListByRequester(filter repository.RequestFilter) ([]*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requester_email = $1`
	args := []any{filter.RequesterEmail}
	n := 1
	next := func(v any) string {
		n++
		args = append(args, v)
		return "$" + strconv.Itoa(n)
	}
	if filter.Status != "" {
		query += ` AND status = ` + next(filter.Status)
	}
	if filter.Search != "" {
		query += ` AND asset_name ILIKE ` + next("%"+filter.Search+"%")
	}
	if filter.AssetType != "" {
		query += ` AND asset_type = ` + next(filter.AssetType)
	}
	query += ` ORDER BY request_date DESC LIMIT ` + next(filter.Limit) + ` OFFSET ` + next(filter.Offset)
	return r.list(query, args)
}

// ListByHR bandeja de un HR (búsqueda por nombre o email del solicitante).
func (r *RequestRepo) ListByHR(filter repository.RequestFilter) ([]*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE hr_email = $1`
	args := []any{filter.HREmail}
	n := 1
	next := func(v any) string {
		n++
		args = append(args, v)
		return "$" + strconv.Itoa(n)
	}
	if filter.Status != "" {
		query += ` AND status = ` + next(filter.Status)
	}
	if filter.Search != "" {
		p := next("%" + filter.Search + "%")
		query += ` AND (requester_name ILIKE ` + p + ` OR requester_email ILIKE ` + p + `)`
	}
	query += ` ORDER BY request_date DESC LIMIT ` + next(filter.Limit) + ` OFFSET ` + next(filter.Offset)
	return r.list(query, args)
}

// ListApprovedPair solicitudes aprobadas de un empleado con un HR.
func (r *RequestRepo) ListApprovedPair(requesterEmail, hrEmail string) ([]*entity.Request, error) {
	query := `
		SELECT ` + requestColumns + ` FROM requests
		WHERE requester_email = $1 AND hr_email = $2 AND status = $3
		ORDER BY request_date`
	return r.list(query, []any{requesterEmail, hrEmail, entity.RequestStatusApproved})
}

// CountApprovedPair conteo de aprobadas de un empleado con un HR.
func (r *RequestRepo) CountApprovedPair(requesterEmail, hrEmail string) (int, error) {
	query := `
		SELECT count(*) FROM requests
		WHERE requester_email = $1 AND hr_email = $2 AND status = $3`
	var count int
	err := r.q.QueryRow(context.Background(), query, requesterEmail, hrEmail, entity.RequestStatusApproved).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count approved requests: %w", err)
	}
	return count, nil
}

func (r *RequestRepo) list(query string, args []any) ([]*entity.Request, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func scanRequest(row pgx.Row) (*entity.Request, error) {
	var req entity.Request
	err := row.Scan(
		&req.ID, &req.AssetID, &req.AssetName, &req.AssetType, &req.AssetImage, &req.CompanyName,
		&req.HREmail, &req.RequesterEmail, &req.RequesterName, &req.Note, &req.Status,
		&req.RequestDate, &req.ApprovalDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}
