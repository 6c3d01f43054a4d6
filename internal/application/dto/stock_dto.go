package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreateStockTxRequest body para POST /api/stock/transactions.
type CreateStockTxRequest struct {
	ItemID     int64           `json:"item_id"`
	LocationID int64           `json:"location_id"`
	TxType     string          `json:"tx_type"`
	Qty        decimal.Decimal `json:"qty"`
	Ref        *string         `json:"ref,omitempty"`
	Note       *string         `json:"note,omitempty"`
	UserID     int64           `json:"user_id"`
}

// UpdateStockTxRequest body para PUT /api/stock/transactions/:id.
// Los campos omitidos conservan su valor actual.
type UpdateStockTxRequest struct {
	ItemID     *int64           `json:"item_id,omitempty"`
	LocationID *int64           `json:"location_id,omitempty"`
	TxType     *string          `json:"tx_type,omitempty"`
	Qty        *decimal.Decimal `json:"qty,omitempty"`
	Ref        *string          `json:"ref,omitempty"`
	Note       *string          `json:"note,omitempty"`
}

// StockTxResponse una entrada del ledger, anotada con el balance resultante.
type StockTxResponse struct {
	ID           int64           `json:"id"`
	ItemID       int64           `json:"item_id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	LocationID   int64           `json:"location_id"`
	LocationName string          `json:"location_name"`
	TxType       string          `json:"tx_type"`
	Qty          decimal.Decimal `json:"qty"`
	Ref          *string         `json:"ref,omitempty"`
	Note         *string         `json:"note,omitempty"`
	TxAt         time.Time       `json:"tx_at"`
	UserID       int64           `json:"user_id"`
	QtyOnHand    decimal.Decimal `json:"qty_on_hand"`
}

// StockTxListResponse listado paginado de transacciones.
type StockTxListResponse struct {
	Txs      []StockTxResponse `json:"txs"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// StockLevelResponse nivel de stock materializado de un par (item, ubicación).
type StockLevelResponse struct {
	ID           int64           `json:"id"`
	ItemID       int64           `json:"item_id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	LocationID   int64           `json:"location_id"`
	LocationName string          `json:"location_name"`
	QtyOnHand    decimal.Decimal `json:"qty_on_hand"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockLevelListResponse listado paginado de niveles de stock.
type StockLevelListResponse struct {
	Levels   []StockLevelResponse `json:"levels"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// ToStockTxResponse mapea la entidad al DTO de respuesta.
func ToStockTxResponse(tx *entity.StockTx) StockTxResponse {
	return StockTxResponse{
		ID:           tx.ID,
		ItemID:       tx.ItemID,
		ItemCode:     tx.ItemCode,
		ItemName:     tx.ItemName,
		LocationID:   tx.LocationID,
		LocationName: tx.LocationName,
		TxType:       tx.TxType,
		Qty:          tx.Qty,
		Ref:          tx.Ref,
		Note:         tx.Note,
		TxAt:         tx.TxAt,
		UserID:       tx.UserID,
		QtyOnHand:    tx.QtyOnHand,
	}
}

// ToStockLevelResponse mapea la entidad al DTO de respuesta.
func ToStockLevelResponse(l *entity.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ID:           l.ID,
		ItemID:       l.ItemID,
		ItemCode:     l.ItemCode,
		ItemName:     l.ItemName,
		LocationID:   l.LocationID,
		LocationName: l.LocationName,
		QtyOnHand:    l.QtyOnHand,
		UpdatedAt:    l.UpdatedAt,
	}
}
