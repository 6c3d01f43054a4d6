package entity

// Location representa una ubicación física donde se almacena inventario.
type Location struct {
	ID     int64
	Name   string
	Code   string
	Active bool
}
