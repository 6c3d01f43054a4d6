package stock

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LedgerUseCase es el motor del ledger de stock: crea, corrige y elimina
// transacciones de forma atómica, manteniendo los niveles de stock como
// materialización exacta del ledger. Toda mutación bloquea la fila del par
// (item, ubicación) con SELECT FOR UPDATE dentro de una transacción de BD,
// de modo que los escritores sobre el mismo par se serializan y los de pares
// distintos avanzan en paralelo.
type LedgerUseCase struct {
	txRunner     TxRunner
	txRepo       repository.StockTxRepository
	levelRepo    repository.StockLevelRepository
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
	settingsRepo repository.SettingsRepository
}

// NewLedgerUseCase construye el motor. txRepo y levelRepo son los atados al
// pool (solo lecturas); las escrituras pasan por txRunner.
func NewLedgerUseCase(
	txRunner TxRunner,
	txRepo repository.StockTxRepository,
	levelRepo repository.StockLevelRepository,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	settingsRepo repository.SettingsRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		txRepo:       txRepo,
		levelRepo:    levelRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		settingsRepo: settingsRepo,
	}
}

// CreateTxInput entrada para crear una transacción de stock.
type CreateTxInput struct {
	ItemID     int64
	LocationID int64
	TxType     string
	Qty        decimal.Decimal
	Ref        *string
	Note       *string
	UserID     int64
}

// UpdateTxInput campos opcionales para corregir una transacción existente.
// Los campos nil conservan el valor actual de la fila.
type UpdateTxInput struct {
	ItemID     *int64
	LocationID *int64
	TxType     *string
	Qty        *decimal.Decimal
	Ref        *string
	Note       *string
}

// applyEffect aplica el efecto con signo de una transacción sobre la cantidad
// actual: IN y ADJ suman (ADJ admite qty negativa), OUT y XFER restan.
func applyEffect(current decimal.Decimal, txType string, qty decimal.Decimal) decimal.Decimal {
	switch txType {
	case entity.TxTypeOUT, entity.TxTypeXFER:
		return current.Sub(qty)
	default:
		return current.Add(qty)
	}
}

// reverseEffect deshace el efecto de una transacción (inverso exacto de
// applyEffect; reverse(apply(q)) == q con decimales exactos).
func reverseEffect(current decimal.Decimal, txType string, qty decimal.Decimal) decimal.Decimal {
	switch txType {
	case entity.TxTypeOUT, entity.TxTypeXFER:
		return current.Add(qty)
	default:
		return current.Sub(qty)
	}
}

// validateTxInputs valida ids, tipo y restricciones de signo de la cantidad.
func validateTxInputs(itemID, locationID int64, txType string, qty decimal.Decimal) error {
	if itemID <= 0 || locationID <= 0 {
		return domain.ErrInvalidInput
	}
	if !entity.ValidTxType(txType) {
		return domain.ErrInvalidInput
	}
	if qty.IsZero() {
		return domain.ErrInvalidInput
	}
	if txType != entity.TxTypeADJ && qty.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// checkRefs confirma que item y ubicación existan.
func (uc *LedgerUseCase) checkRefs(itemID, locationID int64) error {
	ok, err := uc.itemRepo.ExistsByID(itemID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	ok, err = uc.locationRepo.ExistsByID(locationID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// allowNegativeStock lee la política de stock negativo; inicializa los
// settings por defecto si la fila aún no existe.
func (uc *LedgerUseCase) allowNegativeStock() (bool, error) {
	s, err := uc.settingsRepo.Get()
	if err != nil {
		return false, err
	}
	if s == nil {
		if err := uc.settingsRepo.InitializeDefaults(); err != nil {
			return false, err
		}
		if s, err = uc.settingsRepo.Get(); err != nil {
			return false, err
		}
	}
	return s != nil && s.AllowNegativeStock, nil
}

// CreateTransaction valida, bloquea la fila del par (item, ubicación), aplica
// el efecto según el tipo y persiste el nivel y la fila del ledger en una sola
// transacción. Devuelve la fila creada anotada con el balance resultante.
func (uc *LedgerUseCase) CreateTransaction(ctx context.Context, in CreateTxInput) (*dto.StockTxResponse, error) {
	if err := validateTxInputs(in.ItemID, in.LocationID, in.TxType, in.Qty); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(in.ItemID, in.LocationID); err != nil {
		return nil, err
	}
	allowNegative, err := uc.allowNegativeStock()
	if err != nil {
		return nil, err
	}

	created := entity.StockTx{
		ItemID:     in.ItemID,
		LocationID: in.LocationID,
		TxType:     in.TxType,
		Qty:        in.Qty,
		Ref:        in.Ref,
		Note:       in.Note,
		UserID:     in.UserID,
	}
	var newQty decimal.Decimal
	err = uc.txRunner.Run(ctx, func(txRepo repository.StockTxRepository, levelRepo repository.StockLevelRepository) error {
		level, err := levelRepo.GetForUpdate(in.ItemID, in.LocationID)
		if err != nil {
			return err
		}
		newQty = applyEffect(level.QtyOnHand, in.TxType, in.Qty)
		if !allowNegative && newQty.IsNegative() {
			return domain.ErrInsufficientStock
		}
		level.QtyOnHand = newQty
		if err := levelRepo.Upsert(level); err != nil {
			return err
		}
		return txRepo.Create(&created)
	})
	if err != nil {
		return nil, err
	}

	full, err := uc.txRepo.GetByID(created.ID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return nil, fmt.Errorf("transacción %d no encontrada tras crearla", created.ID)
	}
	full.QtyOnHand = newQty
	resp := dto.ToStockTxResponse(full)
	return &resp, nil
}

// keyLess orden total sobre pares (item, ubicación), usado para adquirir los
// locks en orden determinista cuando un update cambia de par.
func keyLess(itemA, locA, itemB, locB int64) bool {
	if itemA != itemB {
		return itemA < itemB
	}
	return locA < locB
}

// UpdateTransaction corrige una transacción existente preservando el
// invariante nivel == fold del ledger: en una sola transacción de BD deshace
// el efecto original bajo lock y reaplica el efecto nuevo bajo lock (par
// original y nuevo pueden diferir). La política de stock negativo aplica en
// ambas fases; cualquier fallo revierte todo.
func (uc *LedgerUseCase) UpdateTransaction(ctx context.Context, txID int64, in UpdateTxInput) (*dto.StockTxResponse, error) {
	existing, err := uc.txRepo.GetByID(txID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	next := *existing
	if in.ItemID != nil {
		next.ItemID = *in.ItemID
	}
	if in.LocationID != nil {
		next.LocationID = *in.LocationID
	}
	if in.TxType != nil {
		next.TxType = *in.TxType
	}
	if in.Qty != nil {
		next.Qty = *in.Qty
	}
	if in.Ref != nil {
		next.Ref = in.Ref
	}
	if in.Note != nil {
		next.Note = in.Note
	}

	if err := validateTxInputs(next.ItemID, next.LocationID, next.TxType, next.Qty); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(next.ItemID, next.LocationID); err != nil {
		return nil, err
	}
	allowNegative, err := uc.allowNegativeStock()
	if err != nil {
		return nil, err
	}

	sameKey := next.ItemID == existing.ItemID && next.LocationID == existing.LocationID
	var newQty decimal.Decimal
	err = uc.txRunner.Run(ctx, func(txRepo repository.StockTxRepository, levelRepo repository.StockLevelRepository) error {
		// Con cambio de par, dos updates concurrentes que intercambian claves
		// podrían bloquearse en cruce; se adquiere siempre primero el lock del
		// par menor.
		if !sameKey && keyLess(next.ItemID, next.LocationID, existing.ItemID, existing.LocationID) {
			if _, err := levelRepo.GetForUpdate(next.ItemID, next.LocationID); err != nil {
				return err
			}
		}

		// Fase de reversa sobre el par original.
		level, err := levelRepo.GetForUpdate(existing.ItemID, existing.LocationID)
		if err != nil {
			return err
		}
		reversed := reverseEffect(level.QtyOnHand, existing.TxType, existing.Qty)
		if !allowNegative && reversed.IsNegative() {
			return domain.ErrInsufficientStock
		}
		level.QtyOnHand = reversed
		if err := levelRepo.Upsert(level); err != nil {
			return err
		}

		// Fase de reaplicación sobre el par nuevo (el mismo si no cambió).
		target, err := levelRepo.GetForUpdate(next.ItemID, next.LocationID)
		if err != nil {
			return err
		}
		newQty = applyEffect(target.QtyOnHand, next.TxType, next.Qty)
		if !allowNegative && newQty.IsNegative() {
			return domain.ErrInsufficientStock
		}
		target.QtyOnHand = newQty
		if err := levelRepo.Upsert(target); err != nil {
			return err
		}

		return txRepo.Update(&next)
	})
	if err != nil {
		return nil, err
	}

	full, err := uc.txRepo.GetByID(txID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return nil, fmt.Errorf("transacción %d no encontrada tras actualizarla", txID)
	}
	full.QtyOnHand = newQty
	resp := dto.ToStockTxResponse(full)
	return &resp, nil
}

// DeleteTransaction elimina una entrada del ledger deshaciendo su efecto bajo
// lock, respetando la política de stock negativo, en una sola transacción.
func (uc *LedgerUseCase) DeleteTransaction(ctx context.Context, txID int64) error {
	existing, err := uc.txRepo.GetByID(txID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	allowNegative, err := uc.allowNegativeStock()
	if err != nil {
		return err
	}

	return uc.txRunner.Run(ctx, func(txRepo repository.StockTxRepository, levelRepo repository.StockLevelRepository) error {
		level, err := levelRepo.GetForUpdate(existing.ItemID, existing.LocationID)
		if err != nil {
			return err
		}
		reversed := reverseEffect(level.QtyOnHand, existing.TxType, existing.Qty)
		if !allowNegative && reversed.IsNegative() {
			return domain.ErrInsufficientStock
		}
		level.QtyOnHand = reversed
		if err := levelRepo.Upsert(level); err != nil {
			return err
		}
		return txRepo.Delete(existing.ID)
	})
}

// GetTransaction devuelve una entrada del ledger por ID.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, txID int64) (*dto.StockTxResponse, error) {
	if txID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	tx, err := uc.txRepo.GetByID(txID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToStockTxResponse(tx)
	return &resp, nil
}

// ListTxQuery filtros y paginación para listar transacciones.
type ListTxQuery struct {
	Page       dto.PageRequest
	ItemID     *int64
	LocationID *int64
	TxType     string
	Search     string
}

// ListTransactions lista el ledger con filtros, búsqueda y paginación.
// Lectura sin locks: refleja solo estado commiteado.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, q ListTxQuery) (*dto.StockTxListResponse, error) {
	q.Page.DefaultPage()
	if err := q.Page.Validate(); err != nil {
		return nil, err
	}
	if q.TxType != "" && !entity.ValidTxType(q.TxType) {
		return nil, domain.ErrInvalidInput
	}

	f := repository.StockTxFilter{
		ItemID:     q.ItemID,
		LocationID: q.LocationID,
		TxType:     q.TxType,
		Search:     q.Search,
		Limit:      q.Page.PageSize,
		Offset:     q.Page.Offset(),
	}
	txs, err := uc.txRepo.List(f)
	if err != nil {
		return nil, err
	}
	total, err := uc.txRepo.Count(f)
	if err != nil {
		return nil, err
	}

	out := &dto.StockTxListResponse{
		Txs:      make([]dto.StockTxResponse, 0, len(txs)),
		Total:    total,
		Page:     q.Page.Page,
		PageSize: q.Page.PageSize,
	}
	for _, tx := range txs {
		out.Txs = append(out.Txs, dto.ToStockTxResponse(tx))
	}
	return out, nil
}

// ListLevelsQuery filtros y paginación para listar niveles de stock.
type ListLevelsQuery struct {
	Page       dto.PageRequest
	ItemID     *int64
	LocationID *int64
	Search     string
}

// ListStockLevels lista los niveles materializados con filtros y paginación.
func (uc *LedgerUseCase) ListStockLevels(ctx context.Context, q ListLevelsQuery) (*dto.StockLevelListResponse, error) {
	q.Page.DefaultPage()
	if err := q.Page.Validate(); err != nil {
		return nil, err
	}

	f := repository.StockLevelFilter{
		ItemID:     q.ItemID,
		LocationID: q.LocationID,
		Search:     q.Search,
		Limit:      q.Page.PageSize,
		Offset:     q.Page.Offset(),
	}
	levels, err := uc.levelRepo.List(f)
	if err != nil {
		return nil, err
	}
	total, err := uc.levelRepo.Count(f)
	if err != nil {
		return nil, err
	}

	out := &dto.StockLevelListResponse{
		Levels:   make([]dto.StockLevelResponse, 0, len(levels)),
		Total:    total,
		Page:     q.Page.Page,
		PageSize: q.Page.PageSize,
	}
	for _, l := range levels {
		out.Levels = append(out.Levels, dto.ToStockLevelResponse(l))
	}
	return out, nil
}
