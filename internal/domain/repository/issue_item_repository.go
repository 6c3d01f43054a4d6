package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// IssueItemFilter filtros para listados de líneas de solicitud.
type IssueItemFilter struct {
	IssueID *int64
	ItemID  *int64
	Limit   int
	Offset  int
}

// IssueItemRepository define el puerto de persistencia para líneas de solicitud.
type IssueItemRepository interface {
	Create(line *entity.IssueItem) error
	CreateBulk(lines []*entity.IssueItem) error
	GetByID(id int64) (*entity.IssueItem, error)
	ListByIssue(issueID int64) ([]*entity.IssueItem, error)
	List(f IssueItemFilter) ([]*entity.IssueItem, error)
	Count(f IssueItemFilter) (int, error)
	UpdateQty(id int64, qty decimal.Decimal) error
	Delete(id int64) error
	ExistsByIssueAndItem(issueID, itemID int64) (bool, error)
}
