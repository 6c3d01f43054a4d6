package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// LocationFilter filtros para listados de ubicaciones.
type LocationFilter struct {
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}

// LocationRepository define el puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(loc *entity.Location) error
	GetByID(id int64) (*entity.Location, error)
	Update(loc *entity.Location) error
	SoftDelete(id int64) error
	List(f LocationFilter) ([]*entity.Location, error)
	Count(f LocationFilter) (int, error)
	ExistsByID(id int64) (bool, error)
}
