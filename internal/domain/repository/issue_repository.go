package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// IssueFilter filtros para listados de solicitudes.
type IssueFilter struct {
	Search string // código o estado, parcial
	Status string // estado exacto
	Limit  int
	Offset int
}

// IssueRepository define el puerto de persistencia para solicitudes de salida.
type IssueRepository interface {
	Create(issue *entity.Issue) error
	GetByID(id int64) (*entity.Issue, error)
	GetByCode(code string) (*entity.Issue, error)
	Update(issue *entity.Issue) error
	Delete(id int64) error
	List(f IssueFilter) ([]*entity.Issue, error)
	Count(f IssueFilter) (int, error)
}
