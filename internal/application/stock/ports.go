package stock

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de ledger:
// si fn devuelve error se hace Rollback y ninguna escritura sobrevive.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.StockTxRepository,
		levelRepo repository.StockLevelRepository,
	) error) error
}
