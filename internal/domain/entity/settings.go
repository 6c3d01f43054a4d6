package entity

import "time"

// Settings configuración global de la aplicación (fila única, id = 1).
// AllowNegativeStock controla la política de stock negativo del motor de ledger.
type Settings struct {
	ID                  int64
	AppName             string
	ItemsPerPage        int
	AllowNegativeStock  bool
	AutoBackupEnabled   bool
	BackupRetentionDays int
	LowStockThreshold   int
	EnableNotifications bool
	UpdatedAt           time.Time
	UpdatedBy           *int64
}
