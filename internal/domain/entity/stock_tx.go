package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock.
const (
	TxTypeIN   = "IN"   // entrada
	TxTypeOUT  = "OUT"  // salida
	TxTypeADJ  = "ADJ"  // ajuste (qty con signo libre)
	TxTypeXFER = "XFER" // traslado (salida en esta ubicación)
)

// ValidTxType reporta si s es uno de los tipos soportados.
func ValidTxType(s string) bool {
	switch s {
	case TxTypeIN, TxTypeOUT, TxTypeADJ, TxTypeXFER:
		return true
	}
	return false
}

// StockTx representa una entrada del ledger de stock: un movimiento puntual
// de inventario sobre un par (item, ubicación). El historial es inmutable por
// defecto; las correcciones (update/delete) pasan por el motor para re-derivar
// los niveles de stock.
type StockTx struct {
	ID         int64
	ItemID     int64
	LocationID int64
	TxType     string
	Qty        decimal.Decimal
	Ref        *string
	Note       *string
	TxAt       time.Time
	UserID     int64

	// Campos denormalizados por JOIN en lecturas (no persisten en stock_tx).
	ItemCode     string
	ItemName     string
	LocationName string
	// QtyOnHand es la cantidad a mano del par (item, ubicación) al momento de
	// la lectura; en create/update el motor la fija al balance post-commit.
	QtyOnHand decimal.Decimal
}
