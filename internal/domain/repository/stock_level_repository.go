package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockLevelFilter filtros para listados de niveles de stock.
type StockLevelFilter struct {
	ItemID     *int64
	LocationID *int64
	Search     string
	Limit      int
	Offset     int
}

// StockLevelRepository define el puerto para consultar/actualizar la cantidad
// a mano por (item, ubicación). GetForUpdate y Upsert solo tienen sentido
// dentro de una transacción (ver stock.TxRunner).
type StockLevelRepository interface {
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y la devuelve. Si no
	// existe, la inserta con qty 0 dentro de la misma transacción, de modo que
	// el lock exista y dos escritores concurrentes sobre el par se serialicen.
	GetForUpdate(itemID, locationID int64) (*entity.StockLevel, error)
	// Upsert escribe la nueva cantidad. El caller debe tener el lock de
	// GetForUpdate en la misma transacción.
	Upsert(level *entity.StockLevel) error

	List(f StockLevelFilter) ([]*entity.StockLevel, error)
	Count(f StockLevelFilter) (int, error)
	// ListLowStock devuelve niveles por debajo de max(item.min_stock, threshold)
	// para items activos. Solo lectura (lo usa el job de notificaciones).
	ListLowStock(threshold decimal.Decimal, limit int) ([]*entity.StockLevel, error)
}
