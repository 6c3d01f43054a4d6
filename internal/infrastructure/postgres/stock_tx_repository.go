package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockTxRepository = (*StockTxRepo)(nil)

// StockTxRepo implementación del ledger de stock sobre PostgreSQL (usable con
// pool o tx). Las escrituras deben venir del motor dentro de un TxRunner.Run.
type StockTxRepo struct {
	q Querier
}

// NewStockTxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTxRepository(q Querier) *StockTxRepo {
	return &StockTxRepo{q: q}
}

// Create inserta la fila del ledger y asigna ID y TxAt.
func (r *StockTxRepo) Create(tx *entity.StockTx) error {
	query := `
		INSERT INTO stock_tx (item_id, location_id, tx_type, qty, ref, note, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, tx_at`
	err := r.q.QueryRow(context.Background(), query,
		tx.ItemID, tx.LocationID, tx.TxType, tx.Qty, tx.Ref, tx.Note, tx.UserID,
	).Scan(&tx.ID, &tx.TxAt)
	if err != nil {
		return fmt.Errorf("insert stock tx: %w", err)
	}
	return nil
}

const selectTx = `
	SELECT
		st.id, st.item_id, i.item_code, i.name AS item_name,
		st.location_id, l.name AS location_name,
		st.tx_type, st.qty, st.ref, st.note, st.tx_at, st.user_id,
		COALESCE(sl.qty_on_hand, 0)
	FROM stock_tx st
	JOIN items i ON i.id = st.item_id
	JOIN locations l ON l.id = st.location_id
	LEFT JOIN stock_levels sl
		ON sl.item_id = st.item_id AND sl.location_id = st.location_id`

func scanTx(row pgx.Row, tx *entity.StockTx) error {
	return row.Scan(
		&tx.ID, &tx.ItemID, &tx.ItemCode, &tx.ItemName,
		&tx.LocationID, &tx.LocationName,
		&tx.TxType, &tx.Qty, &tx.Ref, &tx.Note, &tx.TxAt, &tx.UserID,
		&tx.QtyOnHand,
	)
}

// GetByID obtiene una fila del ledger con item/ubicación denormalizados, o nil
// si no existe.
func (r *StockTxRepo) GetByID(id int64) (*entity.StockTx, error) {
	var tx entity.StockTx
	err := scanTx(r.q.QueryRow(context.Background(), selectTx+" WHERE st.id = $1", id), &tx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock tx: %w", err)
	}
	return &tx, nil
}

// Update persiste los campos corregidos de la fila.
func (r *StockTxRepo) Update(tx *entity.StockTx) error {
	query := `
		UPDATE stock_tx
		SET item_id = $2, location_id = $3, tx_type = $4, qty = $5, ref = $6, note = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ItemID, tx.LocationID, tx.TxType, tx.Qty, tx.Ref, tx.Note,
	)
	if err != nil {
		return fmt.Errorf("update stock tx: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update stock tx %d: fila inexistente", tx.ID)
	}
	return nil
}

// Delete elimina la fila del ledger.
func (r *StockTxRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_tx WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock tx: %w", err)
	}
	return nil
}

// List lista el ledger con filtros, búsqueda y paginación, más reciente primero.
func (r *StockTxRepo) List(f repository.StockTxFilter) ([]*entity.StockTx, error) {
	where, args := buildTxFilter(f)
	pos := len(args) + 1
	query := selectTx + where + fmt.Sprintf(" ORDER BY st.tx_at DESC, st.id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock txs: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockTx
	for rows.Next() {
		var tx entity.StockTx
		if err := scanTx(rows, &tx); err != nil {
			return nil, fmt.Errorf("scan stock tx: %w", err)
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}

// Count cuenta filas del ledger con los mismos filtros de List.
func (r *StockTxRepo) Count(f repository.StockTxFilter) (int, error) {
	where, args := buildTxFilter(f)
	query := `
		SELECT COUNT(*)
		FROM stock_tx st
		JOIN items i ON i.id = st.item_id
		JOIN locations l ON l.id = st.location_id` + where
	var count int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stock txs: %w", err)
	}
	return count, nil
}

// buildTxFilter arma el WHERE con argumentos posicionales.
func buildTxFilter(f repository.StockTxFilter) (string, []any) {
	var conds []string
	var args []any
	pos := 1
	if f.ItemID != nil {
		conds = append(conds, fmt.Sprintf("st.item_id = $%d", pos))
		args = append(args, *f.ItemID)
		pos++
	}
	if f.LocationID != nil {
		conds = append(conds, fmt.Sprintf("st.location_id = $%d", pos))
		args = append(args, *f.LocationID)
		pos++
	}
	if f.TxType != "" {
		conds = append(conds, fmt.Sprintf("st.tx_type = $%d", pos))
		args = append(args, f.TxType)
		pos++
	}
	if f.Search != "" {
		conds = append(conds, fmt.Sprintf(
			"(i.item_code ILIKE $%d OR i.name ILIKE $%d OR l.name ILIKE $%d OR l.code ILIKE $%d OR st.ref ILIKE $%d OR st.note ILIKE $%d)",
			pos, pos, pos, pos, pos, pos))
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	return whereClause(conds), args
}
