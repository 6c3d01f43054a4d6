package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// UnitRepository define el puerto de persistencia para unidades de medida.
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id int64) (*entity.Unit, error)
	Update(unit *entity.Unit) error
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Unit, error)
	Count() (int, error)
	ExistsByID(id int64) (bool, error)
}
