package jobs

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

type stubLevelRepo struct {
	low []*entity.StockLevel
}

var _ repository.StockLevelRepository = (*stubLevelRepo)(nil)

func (r *stubLevelRepo) GetForUpdate(int64, int64) (*entity.StockLevel, error) { return nil, nil }
func (r *stubLevelRepo) Upsert(*entity.StockLevel) error                       { return nil }
func (r *stubLevelRepo) List(repository.StockLevelFilter) ([]*entity.StockLevel, error) {
	return nil, nil
}
func (r *stubLevelRepo) Count(repository.StockLevelFilter) (int, error) { return 0, nil }
func (r *stubLevelRepo) ListLowStock(threshold decimal.Decimal, limit int) ([]*entity.StockLevel, error) {
	return r.low, nil
}

type stubSettingsRepo struct {
	enabled bool
}

var _ repository.SettingsRepository = (*stubSettingsRepo)(nil)

func (r *stubSettingsRepo) Get() (*entity.Settings, error) {
	return &entity.Settings{ID: 1, LowStockThreshold: 10, EnableNotifications: r.enabled}, nil
}
func (r *stubSettingsRepo) InitializeDefaults() error { return nil }
func (r *stubSettingsRepo) Update(repository.SettingsUpdate, int64) (*entity.Settings, error) {
	return nil, nil
}

func TestLowStockNotifier_Run(t *testing.T) {
	low := []*entity.StockLevel{
		{ItemID: 1, ItemCode: "LAP-001", ItemName: "Laptop", LocationID: 2, LocationName: "Bodega", QtyOnHand: decimal.NewFromInt(3)},
	}

	var buf bytes.Buffer
	log := zerolog.New(&buf)

	n := NewLowStockNotifier(&stubLevelRepo{low: low}, &stubSettingsRepo{enabled: true}, log)
	n.Run()

	out := buf.String()
	assert.Contains(t, out, "stock bajo")
	assert.Contains(t, out, "LAP-001")
}

func TestLowStockNotifier_Disabled(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	n := NewLowStockNotifier(&stubLevelRepo{low: []*entity.StockLevel{{ItemID: 1}}}, &stubSettingsRepo{enabled: false}, log)
	n.Run()

	assert.Empty(t, buf.String())
}

func TestLowStockNotifier_StartInvalidSchedule(t *testing.T) {
	var buf bytes.Buffer
	n := NewLowStockNotifier(&stubLevelRepo{}, &stubSettingsRepo{}, zerolog.New(&buf))
	require.Error(t, n.Start("not a cron expr"))

	// Expresión vacía: desactivado, sin error.
	require.NoError(t, n.Start(""))
	n.Stop()
}
