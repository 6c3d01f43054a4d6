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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva ubicación y asigna su ID.
func (r *LocationRepo) Create(loc *entity.Location) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO locations (name, code, active) VALUES ($1, $2, $3) RETURNING id`,
		loc.Name, loc.Code, loc.Active,
	).Scan(&loc.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID, o nil si no existe.
func (r *LocationRepo) GetByID(id int64) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, code, active FROM locations WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.Code, &l.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update actualiza una ubicación existente.
func (r *LocationRepo) Update(loc *entity.Location) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE locations SET name = $2, code = $3, active = $4 WHERE id = $1`,
		loc.ID, loc.Name, loc.Code, loc.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// SoftDelete marca la ubicación como inactiva.
func (r *LocationRepo) SoftDelete(id int64) error {
	_, err := r.q.Exec(context.Background(), `UPDATE locations SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete location: %w", err)
	}
	return nil
}

// List lista ubicaciones con filtros, búsqueda y paginación, por nombre.
func (r *LocationRepo) List(f repository.LocationFilter) ([]*entity.Location, error) {
	where, args := buildLocationFilter(f)
	pos := len(args) + 1
	query := `SELECT id, name, code, active FROM locations` + where +
		fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Code, &l.Active); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Count cuenta ubicaciones con los mismos filtros de List.
func (r *LocationRepo) Count(f repository.LocationFilter) (int, error) {
	where, args := buildLocationFilter(f)
	var count int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM locations`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return count, nil
}

// ExistsByID verifica existencia por ID.
func (r *LocationRepo) ExistsByID(id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM locations WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("location exists: %w", err)
	}
	return exists, nil
}

// buildLocationFilter arma el WHERE con argumentos posicionales.
func buildLocationFilter(f repository.LocationFilter) (string, []any) {
	var conds []string
	var args []any
	pos := 1
	if f.ActiveOnly {
		conds = append(conds, "active")
	}
	if f.Search != "" {
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", pos, pos))
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	return whereClause(conds), args
}
