package entity

// Unit representa una unidad de medida (ej. "caja", símbolo "cj", multiplier 12).
type Unit struct {
	ID         int64
	Name       string
	Symbol     string
	Multiplier int
}
