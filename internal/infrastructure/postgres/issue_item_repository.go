package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.IssueItemRepository = (*IssueItemRepo)(nil)

// IssueItemRepo implementación del puerto IssueItemRepository sobre PostgreSQL.
type IssueItemRepo struct {
	q Querier
}

// NewIssueItemRepository construye el adaptador de persistencia para líneas de solicitud.
func NewIssueItemRepository(q Querier) *IssueItemRepo {
	return &IssueItemRepo{q: q}
}

// Create persiste una línea y asigna ID.
func (r *IssueItemRepo) Create(line *entity.IssueItem) error {
	query := `
		INSERT INTO issue_items (issue_id, item_id, qty)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		line.IssueID, line.ItemID, line.Qty,
	).Scan(&line.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert issue item: %w", err)
	}
	return nil
}

// CreateBulk inserta varias líneas en un solo INSERT y asigna sus IDs.
func (r *IssueItemRepo) CreateBulk(lines []*entity.IssueItem) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO issue_items (issue_id, item_id, qty) VALUES `
	args := make([]any, 0, len(lines)*3)
	for i, line := range lines {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3)
		args = append(args, line.IssueID, line.ItemID, line.Qty)
	}
	query += " RETURNING id"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("bulk insert issue items: %w", err)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		if err := rows.Scan(&lines[i].ID); err != nil {
			return fmt.Errorf("scan issue item id: %w", err)
		}
	}
	return rows.Err()
}

const selectIssueItem = `
	SELECT
		ii.id, ii.issue_id, ii.item_id, ii.qty,
		i.item_code, i.name AS item_name
	FROM issue_items ii
	JOIN items i ON i.id = ii.item_id`

func scanIssueItem(row pgx.Row, line *entity.IssueItem) error {
	return row.Scan(&line.ID, &line.IssueID, &line.ItemID, &line.Qty, &line.ItemCode, &line.ItemName)
}

// GetByID obtiene una línea con el artículo denormalizado, o nil si no existe.
func (r *IssueItemRepo) GetByID(id int64) (*entity.IssueItem, error) {
	var line entity.IssueItem
	err := scanIssueItem(r.q.QueryRow(context.Background(), selectIssueItem+" WHERE ii.id = $1", id), &line)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issue item: %w", err)
	}
	return &line, nil
}

// ListByIssue lista todas las líneas de una solicitud, en orden de inserción.
func (r *IssueItemRepo) ListByIssue(issueID int64) ([]*entity.IssueItem, error) {
	rows, err := r.q.Query(context.Background(),
		selectIssueItem+" WHERE ii.issue_id = $1 ORDER BY ii.id", issueID)
	if err != nil {
		return nil, fmt.Errorf("list issue items by issue: %w", err)
	}
	defer rows.Close()
	return collectIssueItems(rows)
}

// List lista líneas con filtros y paginación, más reciente primero.
func (r *IssueItemRepo) List(f repository.IssueItemFilter) ([]*entity.IssueItem, error) {
	where, args := buildIssueItemFilter(f)
	pos := len(args) + 1
	query := selectIssueItem + where +
		fmt.Sprintf(" ORDER BY ii.id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list issue items: %w", err)
	}
	defer rows.Close()
	return collectIssueItems(rows)
}

func collectIssueItems(rows pgx.Rows) ([]*entity.IssueItem, error) {
	var list []*entity.IssueItem
	for rows.Next() {
		var line entity.IssueItem
		if err := scanIssueItem(rows, &line); err != nil {
			return nil, fmt.Errorf("scan issue item: %w", err)
		}
		list = append(list, &line)
	}
	return list, rows.Err()
}

// Count cuenta líneas con los mismos filtros de List.
func (r *IssueItemRepo) Count(f repository.IssueItemFilter) (int, error) {
	where, args := buildIssueItemFilter(f)
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM issue_items ii`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count issue items: %w", err)
	}
	return count, nil
}

// UpdateQty actualiza la cantidad de una línea.
func (r *IssueItemRepo) UpdateQty(id int64, qty decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE issue_items SET qty = $2 WHERE id = $1`, id, qty)
	if err != nil {
		return fmt.Errorf("update issue item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update issue item %d: fila inexistente", id)
	}
	return nil
}

// Delete elimina la línea.
func (r *IssueItemRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM issue_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete issue item: %w", err)
	}
	return nil
}

// ExistsByIssueAndItem verifica si ya hay una línea para el par (issue, item).
func (r *IssueItemRepo) ExistsByIssueAndItem(issueID, itemID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM issue_items WHERE issue_id = $1 AND item_id = $2)`,
		issueID, itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists issue item: %w", err)
	}
	return exists, nil
}

// buildIssueItemFilter arma el WHERE con argumentos posicionales.
func buildIssueItemFilter(f repository.IssueItemFilter) (string, []any) {
	var conds []string
	var args []any
	pos := 1
	if f.IssueID != nil {
		conds = append(conds, fmt.Sprintf("ii.issue_id = $%d", pos))
		args = append(args, *f.IssueID)
		pos++
	}
	if f.ItemID != nil {
		conds = append(conds, fmt.Sprintf("ii.item_id = $%d", pos))
		args = append(args, *f.ItemID)
		pos++
	}
	return whereClause(conds), args
}
