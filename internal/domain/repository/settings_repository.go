package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// SettingsUpdate campos opcionales para actualización parcial de settings.
type SettingsUpdate struct {
	AppName             *string
	ItemsPerPage        *int
	AllowNegativeStock  *bool
	AutoBackupEnabled   *bool
	BackupRetentionDays *int
	LowStockThreshold   *int
	EnableNotifications *bool
}

// SettingsRepository define el puerto de persistencia para la configuración
// global (fila única).
type SettingsRepository interface {
	// Get devuelve la fila de settings, o nil si aún no existe.
	Get() (*entity.Settings, error)
	Update(upd SettingsUpdate, userID int64) (*entity.Settings, error)
	// InitializeDefaults inserta la fila con valores por defecto si no existe.
	InitializeDefaults() error
}
