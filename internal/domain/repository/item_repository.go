package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ItemFilter filtros para listados de items.
type ItemFilter struct {
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}

// ItemRepository define el puerto de persistencia para items.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id int64) (*entity.Item, error)
	Update(item *entity.Item) error
	// SoftDelete marca el item como inactivo; el ledger conserva su historial.
	SoftDelete(id int64) error
	List(f ItemFilter) ([]*entity.Item, error)
	Count(f ItemFilter) (int, error)
	ExistsByID(id int64) (bool, error)
	ExistsByItemCode(code string) (bool, error)
}
