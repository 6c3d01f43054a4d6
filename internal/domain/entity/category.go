package entity

// Category representa una categoría de items.
type Category struct {
	ID   int64
	Name string
}
