package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

// Fakes mínimos en memoria para montar el motor real detrás del handler.

type stubLevelRepo struct {
	levels map[[2]int64]entity.StockLevel
	nextID int64
}

var _ repository.StockLevelRepository = (*stubLevelRepo)(nil)

func (r *stubLevelRepo) GetForUpdate(itemID, locationID int64) (*entity.StockLevel, error) {
	key := [2]int64{itemID, locationID}
	lvl, ok := r.levels[key]
	if !ok {
		r.nextID++
		lvl = entity.StockLevel{ID: r.nextID, ItemID: itemID, LocationID: locationID, QtyOnHand: decimal.Zero}
		r.levels[key] = lvl
	}
	out := lvl
	return &out, nil
}

func (r *stubLevelRepo) Upsert(level *entity.StockLevel) error {
	level.UpdatedAt = time.Now()
	r.levels[[2]int64{level.ItemID, level.LocationID}] = *level
	return nil
}

func (r *stubLevelRepo) List(repository.StockLevelFilter) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, lvl := range r.levels {
		cp := lvl
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubLevelRepo) Count(repository.StockLevelFilter) (int, error) {
	return len(r.levels), nil
}

func (r *stubLevelRepo) ListLowStock(decimal.Decimal, int) ([]*entity.StockLevel, error) {
	return nil, nil
}

type stubTxRepo struct {
	txs    map[int64]entity.StockTx
	nextID int64
}

var _ repository.StockTxRepository = (*stubTxRepo)(nil)

func (r *stubTxRepo) Create(tx *entity.StockTx) error {
	r.nextID++
	tx.ID = r.nextID
	tx.TxAt = time.Now()
	r.txs[tx.ID] = *tx
	return nil
}

func (r *stubTxRepo) GetByID(id int64) (*entity.StockTx, error) {
	tx, ok := r.txs[id]
	if !ok {
		return nil, nil
	}
	out := tx
	return &out, nil
}

func (r *stubTxRepo) Update(tx *entity.StockTx) error {
	r.txs[tx.ID] = *tx
	return nil
}

func (r *stubTxRepo) Delete(id int64) error {
	delete(r.txs, id)
	return nil
}

func (r *stubTxRepo) List(repository.StockTxFilter) ([]*entity.StockTx, error) {
	var out []*entity.StockTx
	for _, tx := range r.txs {
		cp := tx
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubTxRepo) Count(repository.StockTxFilter) (int, error) { return len(r.txs), nil }

type stubRunner struct {
	txRepo    repository.StockTxRepository
	levelRepo repository.StockLevelRepository
}

var _ stock.TxRunner = (*stubRunner)(nil)

func (r *stubRunner) Run(ctx context.Context, fn func(repository.StockTxRepository, repository.StockLevelRepository) error) error {
	return fn(r.txRepo, r.levelRepo)
}

type stubItemRepo struct{ ids map[int64]bool }

var _ repository.ItemRepository = (*stubItemRepo)(nil)

func (r *stubItemRepo) Create(*entity.Item) error                          { return nil }
func (r *stubItemRepo) GetByID(int64) (*entity.Item, error)                { return nil, nil }
func (r *stubItemRepo) Update(*entity.Item) error                          { return nil }
func (r *stubItemRepo) SoftDelete(int64) error                             { return nil }
func (r *stubItemRepo) List(repository.ItemFilter) ([]*entity.Item, error) { return nil, nil }
func (r *stubItemRepo) Count(repository.ItemFilter) (int, error)           { return 0, nil }
func (r *stubItemRepo) ExistsByID(id int64) (bool, error)                  { return r.ids[id], nil }
func (r *stubItemRepo) ExistsByItemCode(string) (bool, error)              { return false, nil }

type stubLocationRepo struct{ ids map[int64]bool }

var _ repository.LocationRepository = (*stubLocationRepo)(nil)

func (r *stubLocationRepo) Create(*entity.Location) error           { return nil }
func (r *stubLocationRepo) GetByID(int64) (*entity.Location, error) { return nil, nil }
func (r *stubLocationRepo) Update(*entity.Location) error           { return nil }
func (r *stubLocationRepo) SoftDelete(int64) error                  { return nil }
func (r *stubLocationRepo) List(repository.LocationFilter) ([]*entity.Location, error) {
	return nil, nil
}
func (r *stubLocationRepo) Count(repository.LocationFilter) (int, error) { return 0, nil }
func (r *stubLocationRepo) ExistsByID(id int64) (bool, error)            { return r.ids[id], nil }

type stubSettingsRepo struct{ allowNegative bool }

var _ repository.SettingsRepository = (*stubSettingsRepo)(nil)

func (r *stubSettingsRepo) Get() (*entity.Settings, error) {
	return &entity.Settings{ID: 1, AllowNegativeStock: r.allowNegative, LowStockThreshold: 10}, nil
}
func (r *stubSettingsRepo) InitializeDefaults() error { return nil }
func (r *stubSettingsRepo) Update(repository.SettingsUpdate, int64) (*entity.Settings, error) {
	return nil, nil
}

// buildStockApp monta una app Fiber con el motor real sobre fakes en memoria.
func buildStockApp() *fiber.App {
	levelRepo := &stubLevelRepo{levels: make(map[[2]int64]entity.StockLevel)}
	txRepo := &stubTxRepo{txs: make(map[int64]entity.StockTx)}
	uc := stock.NewLedgerUseCase(
		&stubRunner{txRepo: txRepo, levelRepo: levelRepo},
		txRepo, levelRepo,
		&stubItemRepo{ids: map[int64]bool{1: true}},
		&stubLocationRepo{ids: map[int64]bool{1: true}},
		&stubSettingsRepo{},
	)

	app := fiber.New()
	handler := apphttp.NewStockHandler(uc)
	app.Post("/api/stock/transactions", handler.CreateTransaction)
	app.Get("/api/stock/transactions/:id", handler.GetTransaction)
	app.Get("/api/stock/levels", handler.ListStockLevels)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, []byte) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestStockHandler_CreateTransaction(t *testing.T) {
	app := buildStockApp()

	code, body := postJSON(t, app, "/api/stock/transactions", fiber.Map{
		"item_id": 1, "location_id": 1, "tx_type": "IN", "qty": "100", "user_id": 1,
	})
	require.Equal(t, fiber.StatusCreated, code, string(body))

	var created dto.StockTxResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "IN", created.TxType)
	assert.True(t, created.QtyOnHand.Equal(decimal.NewFromInt(100)))
}

func TestStockHandler_ErrorMapping(t *testing.T) {
	app := buildStockApp()

	// Tipo inválido → 400 VALIDATION
	code, body := postJSON(t, app, "/api/stock/transactions", fiber.Map{
		"item_id": 1, "location_id": 1, "tx_type": "NOPE", "qty": "1", "user_id": 1,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)

	// Item inexistente → 404
	code, _ = postJSON(t, app, "/api/stock/transactions", fiber.Map{
		"item_id": 99, "location_id": 1, "tx_type": "IN", "qty": "1", "user_id": 1,
	})
	assert.Equal(t, fiber.StatusNotFound, code)

	// Stock insuficiente → 409 INSUFFICIENT_STOCK
	code, body = postJSON(t, app, "/api/stock/transactions", fiber.Map{
		"item_id": 1, "location_id": 1, "tx_type": "OUT", "qty": "5", "user_id": 1,
	})
	assert.Equal(t, fiber.StatusConflict, code)
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)
}

func TestStockHandler_GetTransaction(t *testing.T) {
	app := buildStockApp()

	code, body := postJSON(t, app, "/api/stock/transactions", fiber.Map{
		"item_id": 1, "location_id": 1, "tx_type": "IN", "qty": "10", "user_id": 1,
	})
	require.Equal(t, fiber.StatusCreated, code)

	var created dto.StockTxResponse
	require.NoError(t, json.Unmarshal(body, &created))

	req := httptest.NewRequest("GET", "/api/stock/transactions/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// ID inexistente → 404
	req = httptest.NewRequest("GET", "/api/stock/transactions/999", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// ID no numérico → 400
	req = httptest.NewRequest("GET", "/api/stock/transactions/abc", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStockHandler_ListLevels(t *testing.T) {
	app := buildStockApp()

	code, _ := postJSON(t, app, "/api/stock/transactions", fiber.Map{
		"item_id": 1, "location_id": 1, "tx_type": "IN", "qty": "7", "user_id": 1,
	})
	require.Equal(t, fiber.StatusCreated, code)

	req := httptest.NewRequest("GET", "/api/stock/levels", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list dto.StockLevelListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Levels, 1)
	assert.True(t, list.Levels[0].QtyOnHand.Equal(decimal.NewFromInt(7)))
}

func TestStockHandler_ListQueryValidation(t *testing.T) {
	app := buildStockApp()

	// Filtro numérico mal formado → 400, no se ignora en silencio.
	req := httptest.NewRequest("GET", "/api/stock/levels?item_id=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)

	// Página negativa → 400.
	req = httptest.NewRequest("GET", "/api/stock/levels?page=-1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
