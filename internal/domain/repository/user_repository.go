package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// UserFilter filtros para listados de usuarios.
type UserFilter struct {
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	SoftDelete(id int64) error
	List(f UserFilter) ([]*entity.User, error)
	Count(f UserFilter) (int, error)
}
