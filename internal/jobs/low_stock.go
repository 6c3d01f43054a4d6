package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const lowStockBatchSize = 200

// LowStockNotifier revisa periódicamente los niveles de stock y registra una
// alerta por cada par (artículo, ubicación) por debajo de su umbral.
type LowStockNotifier struct {
	levelRepo    repository.StockLevelRepository
	settingsRepo repository.SettingsRepository
	log          zerolog.Logger
	cron         *cron.Cron
}

// NewLowStockNotifier construye el job de alertas de stock bajo.
func NewLowStockNotifier(
	levelRepo repository.StockLevelRepository,
	settingsRepo repository.SettingsRepository,
	log zerolog.Logger,
) *LowStockNotifier {
	return &LowStockNotifier{
		levelRepo:    levelRepo,
		settingsRepo: settingsRepo,
		log:          log.With().Str("job", "low_stock").Logger(),
		cron:         cron.New(),
	}
}

// Start programa el job con la expresión cron dada. Una expresión vacía
// desactiva el job.
func (n *LowStockNotifier) Start(schedule string) error {
	if schedule == "" {
		n.log.Info().Msg("job de stock bajo desactivado")
		return nil
	}
	if _, err := n.cron.AddFunc(schedule, n.Run); err != nil {
		return fmt.Errorf("programar job de stock bajo: %w", err)
	}
	n.cron.Start()
	n.log.Info().Str("schedule", schedule).Msg("job de stock bajo programado")
	return nil
}

// Stop detiene el scheduler. No interrumpe una ejecución en curso.
func (n *LowStockNotifier) Stop() {
	n.cron.Stop()
}

// Run ejecuta una pasada del chequeo. Es pública para poder dispararla
// manualmente y desde tests.
func (n *LowStockNotifier) Run() {
	settings, err := n.settingsRepo.Get()
	if err != nil {
		n.log.Error().Err(err).Msg("leer configuración")
		return
	}
	if settings == nil || !settings.EnableNotifications {
		return
	}

	threshold := decimal.NewFromInt(int64(settings.LowStockThreshold))
	levels, err := n.levelRepo.ListLowStock(threshold, lowStockBatchSize)
	if err != nil {
		n.log.Error().Err(err).Msg("consultar niveles de stock bajo")
		return
	}

	for _, l := range levels {
		n.log.Warn().
			Int64("item_id", l.ItemID).
			Str("item_code", l.ItemCode).
			Str("item_name", l.ItemName).
			Int64("location_id", l.LocationID).
			Str("location", l.LocationName).
			Str("qty_on_hand", l.QtyOnHand.String()).
			Msg("stock bajo")
	}
	if len(levels) > 0 {
		n.log.Info().Int("count", len(levels)).Msg("alertas de stock bajo emitidas")
	}
}
