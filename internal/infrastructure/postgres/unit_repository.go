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

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador de persistencia para unidades.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una nueva unidad y asigna su ID.
func (r *UnitRepo) Create(unit *entity.Unit) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO units (name, symbol, multiplier) VALUES ($1, $2, $3) RETURNING id`,
		unit.Name, unit.Symbol, unit.Multiplier,
	).Scan(&unit.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID, o nil si no existe.
func (r *UnitRepo) GetByID(id int64) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, symbol, multiplier FROM units WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Symbol, &u.Multiplier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// Update actualiza una unidad.
func (r *UnitRepo) Update(unit *entity.Unit) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE units SET name = $2, symbol = $3, multiplier = $4 WHERE id = $1`,
		unit.ID, unit.Name, unit.Symbol, unit.Multiplier,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

// Delete elimina una unidad; con items que la referencian devuelve ErrConflict.
func (r *UnitRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}

// List lista unidades por nombre con paginación.
func (r *UnitRepo) List(limit, offset int) ([]*entity.Unit, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, symbol, multiplier FROM units ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Symbol, &u.Multiplier); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Count cuenta todas las unidades.
func (r *UnitRepo) Count() (int, error) {
	var count int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM units`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count units: %w", err)
	}
	return count, nil
}

// ExistsByID verifica existencia por ID.
func (r *UnitRepo) ExistsByID(id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM units WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("unit exists: %w", err)
	}
	return exists, nil
}
