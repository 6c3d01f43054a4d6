package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa la cantidad a mano materializada para un par
// (item, ubicación). Una fila por par; se crea perezosamente con qty 0 en la
// primera transacción que toca el par y nunca se borra. Solo el motor de
// ledger la escribe.
type StockLevel struct {
	ID         int64
	ItemID     int64
	LocationID int64
	QtyOnHand  decimal.Decimal
	UpdatedAt  time.Time

	// Campos denormalizados por JOIN en listados.
	ItemCode     string
	ItemName     string
	LocationName string
}
