package entity

import "github.com/shopspring/decimal"

// Item representa un artículo del inventario.
type Item struct {
	ID           int64
	ItemCode     string
	Name         string
	CategoryID   int64
	UnitID       int64
	OwnerUserID  int64
	SerialNumber *string
	MinStock     decimal.Decimal
	Description  *string
	ImageURL     *string
	Active       bool
}
