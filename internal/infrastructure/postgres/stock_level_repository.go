package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL
// (usable con pool o tx; GetForUpdate/Upsert requieren tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const selectLevelForUpdate = `
	SELECT id, item_id, location_id, qty_on_hand, updated_at
	FROM stock_levels
	WHERE item_id = $1 AND location_id = $2
	FOR UPDATE`

// GetForUpdate bloquea la fila del par (SELECT FOR UPDATE) y la devuelve.
// Si no existe, la crea con qty 0 dentro de la misma transacción y la bloquea:
// el INSERT usa ON CONFLICT DO NOTHING para que dos transacciones que crean el
// par a la vez se serialicen en vez de abortar por violación de unicidad.
func (r *StockLevelRepo) GetForUpdate(itemID, locationID int64) (*entity.StockLevel, error) {
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), selectLevelForUpdate, itemID, locationID).Scan(
		&l.ID, &l.ItemID, &l.LocationID, &l.QtyOnHand, &l.UpdatedAt,
	)
	if err == nil {
		return &l, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}

	_, err = r.q.Exec(context.Background(), `
		INSERT INTO stock_levels (item_id, location_id, qty_on_hand, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (item_id, location_id) DO NOTHING`,
		itemID, locationID,
	)
	if err != nil {
		return nil, fmt.Errorf("init stock level: %w", err)
	}
	err = r.q.QueryRow(context.Background(), selectLevelForUpdate, itemID, locationID).Scan(
		&l.ID, &l.ItemID, &l.LocationID, &l.QtyOnHand, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &l, nil
}

// Upsert escribe la nueva cantidad del par. El caller debe tener el lock de
// GetForUpdate en la misma transacción.
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (item_id, location_id, qty_on_hand, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET qty_on_hand = EXCLUDED.qty_on_hand, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, level.ItemID, level.LocationID, level.QtyOnHand)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

const selectLevelList = `
	SELECT
		sl.id, sl.item_id, i.item_code, i.name AS item_name,
		sl.location_id, l.name AS location_name,
		sl.qty_on_hand, sl.updated_at
	FROM stock_levels sl
	JOIN items i ON i.id = sl.item_id
	JOIN locations l ON l.id = sl.location_id`

// List lista niveles con filtros, búsqueda y paginación.
func (r *StockLevelRepo) List(f repository.StockLevelFilter) ([]*entity.StockLevel, error) {
	where, args := buildLevelFilter(f)
	pos := len(args) + 1
	query := selectLevelList + where + fmt.Sprintf(" ORDER BY sl.updated_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.ID, &l.ItemID, &l.ItemCode, &l.ItemName,
			&l.LocationID, &l.LocationName, &l.QtyOnHand, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Count cuenta niveles con los mismos filtros de List.
func (r *StockLevelRepo) Count(f repository.StockLevelFilter) (int, error) {
	where, args := buildLevelFilter(f)
	query := `
		SELECT COUNT(*)
		FROM stock_levels sl
		JOIN items i ON i.id = sl.item_id
		JOIN locations l ON l.id = sl.location_id` + where
	var count int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stock levels: %w", err)
	}
	return count, nil
}

// ListLowStock devuelve niveles de items activos por debajo de
// max(item.min_stock, threshold), ordenados por el déficit más grave.
func (r *StockLevelRepo) ListLowStock(threshold decimal.Decimal, limit int) ([]*entity.StockLevel, error) {
	query := selectLevelList + `
	WHERE i.active AND l.active
	  AND sl.qty_on_hand < GREATEST(i.min_stock, $1)
	ORDER BY sl.qty_on_hand - GREATEST(i.min_stock, $1) ASC
	LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.ID, &l.ItemID, &l.ItemCode, &l.ItemName,
			&l.LocationID, &l.LocationName, &l.QtyOnHand, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan low stock level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// buildLevelFilter arma el WHERE con argumentos posicionales.
func buildLevelFilter(f repository.StockLevelFilter) (string, []any) {
	var conds []string
	var args []any
	pos := 1
	if f.ItemID != nil {
		conds = append(conds, fmt.Sprintf("sl.item_id = $%d", pos))
		args = append(args, *f.ItemID)
		pos++
	}
	if f.LocationID != nil {
		conds = append(conds, fmt.Sprintf("sl.location_id = $%d", pos))
		args = append(args, *f.LocationID)
		pos++
	}
	if f.Search != "" {
		conds = append(conds, fmt.Sprintf(
			"(i.item_code ILIKE $%d OR i.name ILIKE $%d OR l.name ILIKE $%d OR l.code ILIKE $%d)",
			pos, pos, pos, pos))
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	return whereClause(conds), args
}
