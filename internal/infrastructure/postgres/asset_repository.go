package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/assetverse/assetverse-api/internal/domain/entity"
	"github.com/assetverse/assetverse-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `id, hr_email, name, type, image, product_quantity, available_quantity, date_added, updated_at`

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL.
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create persiste un activo nuevo.
func (r *AssetRepo) Create(asset *entity.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.HREmail, asset.Name, asset.Type, asset.Image,
		asset.ProductQuantity, asset.AvailableQuantity, asset.DateAdded, asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID; nil si no existe.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	a, err := scanAsset(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// GetForUpdate obtiene el activo y bloquea la fila (SELECT FOR UPDATE).
func (r *AssetRepo) GetForUpdate(id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 FOR UPDATE`
	a, err := scanAsset(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get asset for update: %w", err)
	}
	return a, nil
}

// UpdateAvailable fija la cantidad disponible (el caller ya validó el rango;
// el CHECK de la tabla lo respalda).
func (r *AssetRepo) UpdateAvailable(id string, available int) error {
	query := `UPDATE assets SET available_quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, available)
	if err != nil {
		return fmt.Errorf("update asset availability: %w", err)
	}
	return nil
}

// List lista activos según filtro, ordenados por fecha de alta descendente.
func (r *AssetRepo) List(filter repository.AssetFilter) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE 1=1`
	args := []any{}
	n := 0
	next := func(v any) string {
		n++
		args = append(args, v)
		return "$" + strconv.Itoa(n)
	}

	if filter.HREmail != "" {
		query += ` AND hr_email = ` + next(filter.HREmail)
	}
	if filter.Search != "" {
		query += ` AND name ILIKE ` + next("%"+filter.Search+"%")
	}
	if filter.Type != "" {
		query += ` AND type = ` + next(filter.Type)
	}
	if filter.OnlyAvailable {
		query += ` AND available_quantity > 0`
	}
	query += ` ORDER BY date_added DESC LIMIT ` + next(filter.Limit) + ` OFFSET ` + next(filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	err := row.Scan(
		&a.ID, &a.HREmail, &a.Name, &a.Type, &a.Image,
		&a.ProductQuantity, &a.AvailableQuantity, &a.DateAdded, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
