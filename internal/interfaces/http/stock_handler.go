package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
)

// StockHandler maneja las peticiones HTTP del ledger de stock.
type StockHandler struct {
	uc *stock.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// CreateTransaction godoc
// @Summary      Registrar transacción de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockTxRequest  true  "item_id, location_id, tx_type (IN/OUT/ADJ/XFER), qty"
// @Success      201   {object}  dto.StockTxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transactions [post]
func (h *StockHandler) CreateTransaction(c *fiber.Ctx) error {
	var in dto.CreateStockTxRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CreateTransaction(c.Context(), stock.CreateTxInput{
		ItemID:     in.ItemID,
		LocationID: in.LocationID,
		TxType:     in.TxType,
		Qty:        in.Qty,
		Ref:        in.Ref,
		Note:       in.Note,
		UserID:     in.UserID,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetTransaction godoc
// @Summary      Obtener una transacción por ID
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.StockTxResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/transactions/{id} [get]
func (h *StockHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.GetTransaction(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// UpdateTransaction godoc
// @Summary      Corregir una transacción existente
// @Description  Revierte el efecto original y aplica el nuevo dentro de una
//               misma transacción de base de datos.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.StockTxResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/transactions/{id} [put]
func (h *StockHandler) UpdateTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	var in dto.UpdateStockTxRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.UpdateTransaction(c.Context(), id, stock.UpdateTxInput{
		ItemID:     in.ItemID,
		LocationID: in.LocationID,
		TxType:     in.TxType,
		Qty:        in.Qty,
		Ref:        in.Ref,
		Note:       in.Note,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// DeleteTransaction godoc
// @Summary      Eliminar una transacción revirtiendo su efecto
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/transactions/{id} [delete]
func (h *StockHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	if err := h.uc.DeleteTransaction(c.Context(), id); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "transacción eliminada"})
}

// ListTransactions godoc
// @Summary      Listar transacciones del ledger
// @Tags         stock
// @Produce      json
// @Param        item_id      query  int     false  "Filtrar por artículo"
// @Param        location_id  query  int     false  "Filtrar por ubicación"
// @Param        tx_type      query  string  false  "IN, OUT, ADJ o XFER"
// @Param        search       query  string  false  "Búsqueda por código, nombre, ref o nota"
// @Success      200  {object}  dto.StockTxListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/transactions [get]
func (h *StockHandler) ListTransactions(c *fiber.Ctx) error {
	itemID, err := optionalInt64Query(c, "item_id")
	if err != nil {
		return errorJSON(c, err)
	}
	locationID, err := optionalInt64Query(c, "location_id")
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.ListTransactions(c.Context(), stock.ListTxQuery{
		Page:       pageFromQuery(c),
		ItemID:     itemID,
		LocationID: locationID,
		TxType:     c.Query("tx_type"),
		Search:     c.Query("search"),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// ListStockLevels godoc
// @Summary      Listar niveles de stock por (artículo, ubicación)
// @Tags         stock
// @Produce      json
// @Param        item_id      query  int     false  "Filtrar por artículo"
// @Param        location_id  query  int     false  "Filtrar por ubicación"
// @Param        search       query  string  false  "Búsqueda por código o nombre"
// @Success      200  {object}  dto.StockLevelListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/levels [get]
func (h *StockHandler) ListStockLevels(c *fiber.Ctx) error {
	itemID, err := optionalInt64Query(c, "item_id")
	if err != nil {
		return errorJSON(c, err)
	}
	locationID, err := optionalInt64Query(c, "location_id")
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.ListStockLevels(c.Context(), stock.ListLevelsQuery{
		Page:       pageFromQuery(c),
		ItemID:     itemID,
		LocationID: locationID,
		Search:     c.Query("search"),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
