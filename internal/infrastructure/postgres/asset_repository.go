package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/activos-pro/internal/domain/entity"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL.
// Las lecturas resuelven el nombre de la bodega con un LEFT JOIN.
type AssetRepo struct {
	pool *pgxpool.Pool
}

// NewAssetRepository construye el adaptador hacia el directorio de activos.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepo {
	return &AssetRepo{pool: pool}
}

const assetColumns = `
	a.id, a.company_id, a.name, a.qr_code, a.barcode, a.asset_code,
	a.is_consumable, a.quantity_available, a.quantity_reserved, a.status,
	a.warehouse_id, COALESCE(w.name, ''),
	a.assigned_user_id, a.assigned_project_id, a.assigned_at,
	a.value, a.created_at, a.updated_at`

// GetByQRCode busca un activo de la empresa por código QR (coincidencia exacta).
func (r *AssetRepo) GetByQRCode(companyID, code string) (*entity.Asset, error) {
	return r.getByIdentifier(companyID, "qr_code", code)
}

// GetByBarcode busca un activo de la empresa por código de barras.
func (r *AssetRepo) GetByBarcode(companyID, code string) (*entity.Asset, error) {
	return r.getByIdentifier(companyID, "barcode", code)
}

// GetByAssetCode busca un activo de la empresa por código interno.
func (r *AssetRepo) GetByAssetCode(companyID, code string) (*entity.Asset, error) {
	return r.getByIdentifier(companyID, "asset_code", code)
}

func (r *AssetRepo) getByIdentifier(companyID, column, code string) (*entity.Asset, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM assets a
		LEFT JOIN warehouses w ON w.id = a.warehouse_id
		WHERE a.company_id = $1 AND a.%s = $2
		LIMIT 1`, assetColumns, column)
	row := r.pool.QueryRow(context.Background(), query, companyID, code)
	return scanAsset(row, column)
}

// GetByID obtiene un activo por ID.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM assets a
		LEFT JOIN warehouses w ON w.id = a.warehouse_id
		WHERE a.id = $1`, assetColumns)
	row := r.pool.QueryRow(context.Background(), query, id)
	return scanAsset(row, "id")
}

func scanAsset(row pgx.Row, label string) (*entity.Asset, error) {
	var a entity.Asset
	var qrCode, barcode, assetCode, warehouseID, userID, projectID *string
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.Name, &qrCode, &barcode, &assetCode,
		&a.IsConsumable, &a.QuantityAvailable, &a.QuantityReserved, &a.Status,
		&warehouseID, &a.WarehouseName,
		&userID, &projectID, &a.AssignedAt,
		&a.Value, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset by %s: %w", label, err)
	}
	a.QRCode = deref(qrCode)
	a.Barcode = deref(barcode)
	a.AssetCode = deref(assetCode)
	a.WarehouseID = deref(warehouseID)
	a.AssignedUserID = deref(userID)
	a.AssignedProjectID = deref(projectID)
	return &a, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// UpdateAssignment aplica el parche de asignación: solo los campos no nulos
// entran al SET. Siempre actualiza updated_at.
func (r *AssetRepo) UpdateAssignment(id string, patch repository.AssetAssignmentPatch) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.WarehouseID != nil {
		add("warehouse_id", nullIfEmpty(*patch.WarehouseID))
	}
	if patch.AssignedUserID != nil {
		add("assigned_user_id", nullIfEmpty(*patch.AssignedUserID))
	}
	if patch.AssignedProjectID != nil {
		add("assigned_project_id", nullIfEmpty(*patch.AssignedProjectID))
	}
	if patch.AssignedAt != nil {
		add("assigned_at", *patch.AssignedAt)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	query := fmt.Sprintf(`UPDATE assets SET %s WHERE id = $1`, strings.Join(sets, ", "))
	cmd, err := r.pool.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update asset assignment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update asset assignment: activo %s no existe", id)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// DecrementQuantity resta cantidad disponible de un consumible sin dejarla
// bajar de cero.
func (r *AssetRepo) DecrementQuantity(id string, amount decimal.Decimal) error {
	query := `
		UPDATE assets
		SET quantity_available = GREATEST(quantity_available - $2, 0), updated_at = NOW()
		WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query, id, amount)
	if err != nil {
		return fmt.Errorf("decrement asset quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("decrement asset quantity: activo %s no existe", id)
	}
	return nil
}
