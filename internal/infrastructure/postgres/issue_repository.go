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

var _ repository.IssueRepository = (*IssueRepo)(nil)

// IssueRepo implementación del puerto IssueRepository sobre PostgreSQL.
type IssueRepo struct {
	q Querier
}

// NewIssueRepository construye el adaptador de persistencia para solicitudes.
func NewIssueRepository(q Querier) *IssueRepo {
	return &IssueRepo{q: q}
}

// Create persiste una nueva solicitud y asigna ID, CreatedAt y UpdatedAt.
func (r *IssueRepo) Create(issue *entity.Issue) error {
	query := `
		INSERT INTO issues (code, status, requested_by, approved_by, issued_at, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		issue.Code, issue.Status, issue.RequestedBy, issue.ApprovedBy, issue.IssuedAt, issue.Note,
	).Scan(&issue.ID, &issue.CreatedAt, &issue.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

const selectIssue = `
	SELECT id, code, status, requested_by, approved_by, issued_at, note, created_at, updated_at
	FROM issues`

func scanIssue(row pgx.Row, i *entity.Issue) error {
	return row.Scan(
		&i.ID, &i.Code, &i.Status, &i.RequestedBy, &i.ApprovedBy,
		&i.IssuedAt, &i.Note, &i.CreatedAt, &i.UpdatedAt,
	)
}

// GetByID obtiene una solicitud por ID, o nil si no existe.
func (r *IssueRepo) GetByID(id int64) (*entity.Issue, error) {
	var issue entity.Issue
	err := scanIssue(r.q.QueryRow(context.Background(), selectIssue+" WHERE id = $1", id), &issue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issue: %w", err)
	}
	return &issue, nil
}

// GetByCode obtiene una solicitud por código, o nil si no existe.
func (r *IssueRepo) GetByCode(code string) (*entity.Issue, error) {
	var issue entity.Issue
	err := scanIssue(r.q.QueryRow(context.Background(), selectIssue+" WHERE code = $1", code), &issue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issue by code: %w", err)
	}
	return &issue, nil
}

// Update actualiza una solicitud existente y refresca UpdatedAt.
func (r *IssueRepo) Update(issue *entity.Issue) error {
	query := `
		UPDATE issues
		SET code = $2, status = $3, requested_by = $4, approved_by = $5,
		    issued_at = $6, note = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(context.Background(), query,
		issue.ID, issue.Code, issue.Status, issue.RequestedBy, issue.ApprovedBy,
		issue.IssuedAt, issue.Note,
	).Scan(&issue.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update issue: %w", err)
	}
	return nil
}

// Delete elimina la solicitud; sus líneas caen en cascada por FK.
func (r *IssueRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM issues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	return nil
}

// List lista solicitudes con filtros, búsqueda y paginación, más reciente primero.
func (r *IssueRepo) List(f repository.IssueFilter) ([]*entity.Issue, error) {
	where, args := buildIssueFilter(f)
	pos := len(args) + 1
	query := selectIssue + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var list []*entity.Issue
	for rows.Next() {
		var issue entity.Issue
		if err := scanIssue(rows, &issue); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		list = append(list, &issue)
	}
	return list, rows.Err()
}

// Count cuenta solicitudes con los mismos filtros de List.
func (r *IssueRepo) Count(f repository.IssueFilter) (int, error) {
	where, args := buildIssueFilter(f)
	var count int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM issues`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count issues: %w", err)
	}
	return count, nil
}

// buildIssueFilter arma el WHERE con argumentos posicionales.
func buildIssueFilter(f repository.IssueFilter) (string, []any) {
	var conds []string
	var args []any
	pos := 1
	if f.Search != "" {
		conds = append(conds, fmt.Sprintf("(code ILIKE $%d OR status ILIKE $%d)", pos, pos))
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	if f.Status != "" {
		conds = append(conds, fmt.Sprintf("status = $%d", pos))
		args = append(args, f.Status)
		pos++
	}
	return whereClause(conds), args
}
