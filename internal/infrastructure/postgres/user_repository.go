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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y asigna ID y CreatedAt.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (name, email, role, m365_oid, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(context.Background(), query,
		user.Name, user.Email, user.Role, user.M365OID, user.Active,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.M365OID, &u.Active, &u.CreatedAt)
}

// GetByID obtiene un usuario por ID, o nil si no existe.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	var u entity.User
	err := scanUser(r.q.QueryRow(context.Background(),
		`SELECT id, name, email, role, m365_oid, active, created_at FROM users WHERE id = $1`, id), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByEmail obtiene un usuario por email, o nil si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var u entity.User
	err := scanUser(r.q.QueryRow(context.Background(),
		`SELECT id, name, email, role, m365_oid, active, created_at FROM users WHERE email = $1`, email), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(user *entity.User) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET name = $2, email = $3, role = $4, active = $5 WHERE id = $1`,
		user.ID, user.Name, user.Email, user.Role, user.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SoftDelete marca el usuario como inactivo.
func (r *UserRepo) SoftDelete(id int64) error {
	_, err := r.q.Exec(context.Background(), `UPDATE users SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return nil
}

// List lista usuarios con filtros, búsqueda y paginación, por nombre.
func (r *UserRepo) List(f repository.UserFilter) ([]*entity.User, error) {
	where, args := buildUserFilter(f)
	pos := len(args) + 1
	query := `SELECT id, name, email, role, m365_oid, active, created_at FROM users` + where +
		fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Count cuenta usuarios con los mismos filtros de List.
func (r *UserRepo) Count(f repository.UserFilter) (int, error) {
	where, args := buildUserFilter(f)
	var count int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM users`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// buildUserFilter arma el WHERE con argumentos posicionales.
func buildUserFilter(f repository.UserFilter) (string, []any) {
	var conds []string
	var args []any
	pos := 1
	if f.ActiveOnly {
		conds = append(conds, "active")
	}
	if f.Search != "" {
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", pos, pos))
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	return whereClause(conds), args
}
