package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación del puerto SettingsRepository sobre PostgreSQL.
// La tabla settings mantiene una única fila con id = 1.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de persistencia para settings.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

const selectSettings = `
	SELECT id, app_name, items_per_page, allow_negative_stock, auto_backup_enabled,
	       backup_retention_days, low_stock_threshold, enable_notifications,
	       updated_at, updated_by
	FROM settings WHERE id = 1`

func scanSettings(row pgx.Row, s *entity.Settings) error {
	return row.Scan(&s.ID, &s.AppName, &s.ItemsPerPage, &s.AllowNegativeStock,
		&s.AutoBackupEnabled, &s.BackupRetentionDays, &s.LowStockThreshold,
		&s.EnableNotifications, &s.UpdatedAt, &s.UpdatedBy)
}

// Get devuelve la fila de settings, o nil si aún no fue inicializada.
func (r *SettingsRepo) Get() (*entity.Settings, error) {
	var s entity.Settings
	err := scanSettings(r.q.QueryRow(context.Background(), selectSettings), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// InitializeDefaults inserta la fila de settings con valores por defecto si
// todavía no existe. Es idempotente.
func (r *SettingsRepo) InitializeDefaults() error {
	query := `
		INSERT INTO settings (id, app_name, items_per_page, allow_negative_stock,
		                      auto_backup_enabled, backup_retention_days,
		                      low_stock_threshold, enable_notifications)
		VALUES (1, 'Inventory Management System', 50, false, true, 30, 10, true)
		ON CONFLICT (id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), query); err != nil {
		return fmt.Errorf("initialize settings: %w", err)
	}
	return nil
}

// Update aplica una actualización parcial sobre la fila única de settings y
// devuelve el estado resultante.
func (r *SettingsRepo) Update(upd repository.SettingsUpdate, userID int64) (*entity.Settings, error) {
	var sets []string
	var args []any
	pos := 1

	add := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, pos))
		args = append(args, val)
		pos++
	}
	if upd.AppName != nil {
		add("app_name", *upd.AppName)
	}
	if upd.ItemsPerPage != nil {
		add("items_per_page", *upd.ItemsPerPage)
	}
	if upd.AllowNegativeStock != nil {
		add("allow_negative_stock", *upd.AllowNegativeStock)
	}
	if upd.AutoBackupEnabled != nil {
		add("auto_backup_enabled", *upd.AutoBackupEnabled)
	}
	if upd.BackupRetentionDays != nil {
		add("backup_retention_days", *upd.BackupRetentionDays)
	}
	if upd.LowStockThreshold != nil {
		add("low_stock_threshold", *upd.LowStockThreshold)
	}
	if upd.EnableNotifications != nil {
		add("enable_notifications", *upd.EnableNotifications)
	}

	add("updated_by", userID)
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE settings SET %s WHERE id = 1
		RETURNING id, app_name, items_per_page, allow_negative_stock, auto_backup_enabled,
		          backup_retention_days, low_stock_threshold, enable_notifications,
		          updated_at, updated_by`, strings.Join(sets, ", "))

	var s entity.Settings
	if err := scanSettings(r.q.QueryRow(context.Background(), query, args...), &s); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return &s, nil
}
