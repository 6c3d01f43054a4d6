package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(cat *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	Update(cat *entity.Category) error
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Category, error)
	Count() (int, error)
	ExistsByID(id int64) (bool, error)
}
