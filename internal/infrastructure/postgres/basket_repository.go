package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/activos-pro/internal/domain/entity"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
)

var _ repository.BasketRepository = (*BasketRepo)(nil)

// BasketRepo implementación del puerto BasketRepository sobre PostgreSQL.
// La lista de ítems vive en una columna JSONB y se reemplaza completa en cada
// escritura; las canastas con borrado lógico se excluyen de toda lectura.
type BasketRepo struct {
	pool *pgxpool.Pool
}

// NewBasketRepository construye el adaptador de persistencia para canastas.
func NewBasketRepository(pool *pgxpool.Pool) *BasketRepo {
	return &BasketRepo{pool: pool}
}

const basketColumns = `
	id, company_id, created_by, source_warehouse_id,
	dest_warehouse_id, dest_project_id, dest_user_id,
	status, items, total_items, total_value, notes, check_out_photos,
	created_at, updated_at, completed_at`

// Create persiste una canasta nueva.
func (r *BasketRepo) Create(basket *entity.Basket) error {
	items, err := json.Marshal(basket.Items)
	if err != nil {
		return fmt.Errorf("marshal basket items: %w", err)
	}
	query := `
		INSERT INTO baskets (
			id, company_id, created_by, source_warehouse_id,
			dest_warehouse_id, dest_project_id, dest_user_id,
			status, items, total_items, total_value, notes, check_out_photos,
			created_at, updated_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.pool.Exec(context.Background(), query,
		basket.ID, basket.CompanyID, basket.CreatedBy, nullIfEmpty(basket.SourceWarehouseID),
		nullIfEmpty(basket.DestWarehouseID), nullIfEmpty(basket.DestProjectID), nullIfEmpty(basket.DestUserID),
		basket.Status, items, basket.TotalItems, basket.TotalValue, basket.Notes, basket.CheckOutPhotos,
		basket.CreatedAt, basket.UpdatedAt, basket.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert basket: %w", err)
	}
	return nil
}

// GetByID obtiene una canasta por ID. Nil si no existe o tiene borrado lógico.
func (r *BasketRepo) GetByID(id string) (*entity.Basket, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM baskets
		WHERE id = $1 AND deleted_at IS NULL`, basketColumns)
	row := r.pool.QueryRow(context.Background(), query, id)
	b, err := scanBasket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get basket: %w", err)
	}
	return b, nil
}

// Save reemplaza el registro completo, incluida la lista de ítems como un
// único valor atómico.
func (r *BasketRepo) Save(basket *entity.Basket) error {
	items, err := json.Marshal(basket.Items)
	if err != nil {
		return fmt.Errorf("marshal basket items: %w", err)
	}
	query := `
		UPDATE baskets SET
			source_warehouse_id = $2, dest_warehouse_id = $3,
			dest_project_id = $4, dest_user_id = $5,
			status = $6, items = $7, total_items = $8, total_value = $9,
			notes = $10, check_out_photos = $11, updated_at = $12, completed_at = $13
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.pool.Exec(context.Background(), query,
		basket.ID, nullIfEmpty(basket.SourceWarehouseID),
		nullIfEmpty(basket.DestWarehouseID), nullIfEmpty(basket.DestProjectID), nullIfEmpty(basket.DestUserID),
		basket.Status, items, basket.TotalItems, basket.TotalValue,
		basket.Notes, basket.CheckOutPhotos, basket.UpdatedAt, basket.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("save basket: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("save basket: canasta %s no existe", basket.ID)
	}
	return nil
}

// ListByCompany lista canastas de la empresa, más recientes primero.
func (r *BasketRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Basket, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM baskets
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, basketColumns)
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list baskets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Basket
	for rows.Next() {
		b, err := scanBasket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan basket: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// SoftDelete marca la canasta como borrada sin eliminar el registro.
func (r *BasketRepo) SoftDelete(id string, now time.Time) error {
	query := `UPDATE baskets SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.pool.Exec(context.Background(), query, id, now)
	if err != nil {
		return fmt.Errorf("soft delete basket: %w", err)
	}
	return nil
}

func scanBasket(row pgx.Row) (*entity.Basket, error) {
	var b entity.Basket
	var sourceWH, destWH, destProject, destUser *string
	var items []byte
	err := row.Scan(
		&b.ID, &b.CompanyID, &b.CreatedBy, &sourceWH,
		&destWH, &destProject, &destUser,
		&b.Status, &items, &b.TotalItems, &b.TotalValue, &b.Notes, &b.CheckOutPhotos,
		&b.CreatedAt, &b.UpdatedAt, &b.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	b.SourceWarehouseID = deref(sourceWH)
	b.DestWarehouseID = deref(destWH)
	b.DestProjectID = deref(destProject)
	b.DestUserID = deref(destUser)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &b.Items); err != nil {
			return nil, fmt.Errorf("unmarshal basket items: %w", err)
		}
	}
	return &b, nil
}
