package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, item_code, name, category_id, unit_id, owner_user_id,
	serial_number, min_stock, description, image_url, active`

// Create persiste un nuevo item y asigna su ID.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (item_code, name, category_id, unit_id, owner_user_id, serial_number, min_stock, description, image_url, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.ItemCode, item.Name, item.CategoryID, item.UnitID, item.OwnerUserID,
		item.SerialNumber, item.MinStock, item.Description, item.ImageURL, item.Active,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row, i *entity.Item) error {
	return row.Scan(&i.ID, &i.ItemCode, &i.Name, &i.CategoryID, &i.UnitID,
		&i.OwnerUserID, &i.SerialNumber, &i.MinStock, &i.Description, &i.ImageURL, &i.Active)
}

// GetByID obtiene un item por ID, o nil si no existe.
func (r *ItemRepo) GetByID(id int64) (*entity.Item, error) {
	var i entity.Item
	err := scanItem(r.q.QueryRow(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id), &i)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

// Update actualiza un item existente.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET item_code = $2, name = $3, category_id = $4, unit_id = $5,
		    serial_number = $6, min_stock = $7, description = $8, image_url = $9, active = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ItemCode, item.Name, item.CategoryID, item.UnitID,
		item.SerialNumber, item.MinStock, item.Description, item.ImageURL, item.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// SoftDelete marca el item como inactivo.
func (r *ItemRepo) SoftDelete(id int64) error {
	_, err := r.q.Exec(context.Background(), `UPDATE items SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete item: %w", err)
	}
	return nil
}

// List lista items con filtros, búsqueda y paginación, por nombre.
func (r *ItemRepo) List(f repository.ItemFilter) ([]*entity.Item, error) {
	where, args := buildItemFilter(f)
	pos := len(args) + 1
	query := `SELECT ` + itemColumns + ` FROM items` + where +
		fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := scanItem(rows, &i); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Count cuenta items con los mismos filtros de List.
func (r *ItemRepo) Count(f repository.ItemFilter) (int, error) {
	where, args := buildItemFilter(f)
	var count int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM items`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

// ExistsByID verifica existencia por ID.
func (r *ItemRepo) ExistsByID(id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("item exists: %w", err)
	}
	return exists, nil
}

// ExistsByItemCode verifica unicidad del item_code.
func (r *ItemRepo) ExistsByItemCode(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM items WHERE item_code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("item code exists: %w", err)
	}
	return exists, nil
}

// buildItemFilter arma el WHERE con argumentos posicionales.
func buildItemFilter(f repository.ItemFilter) (string, []any) {
	var conds []string
	var args []any
	pos := 1
	if f.ActiveOnly {
		conds = append(conds, "active")
	}
	if f.Search != "" {
		conds = append(conds, fmt.Sprintf("(item_code ILIKE $%d OR name ILIKE $%d)", pos, pos))
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	return whereClause(conds), args
}
