package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockTxFilter filtros para listados del ledger.
type StockTxFilter struct {
	ItemID     *int64
	LocationID *int64
	TxType     string
	Search     string
	Limit      int
	Offset     int
}

// StockTxRepository define el puerto de persistencia del ledger de stock.
// Las filas solo se crean/modifican/borran a través del motor (application/stock),
// nunca directamente desde handlers.
type StockTxRepository interface {
	// Create inserta la fila y asigna ID y TxAt.
	Create(tx *entity.StockTx) error
	// GetByID devuelve la fila con item/ubicación denormalizados, o nil si no existe.
	GetByID(id int64) (*entity.StockTx, error)
	Update(tx *entity.StockTx) error
	Delete(id int64) error

	List(f StockTxFilter) ([]*entity.StockTx, error)
	Count(f StockTxFilter) (int, error)
}
