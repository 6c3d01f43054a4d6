package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// UpdateSettingsRequest body para PUT /api/settings (campos opcionales).
type UpdateSettingsRequest struct {
	AppName             *string `json:"app_name,omitempty"`
	ItemsPerPage        *int    `json:"items_per_page,omitempty"`
	AllowNegativeStock  *bool   `json:"allow_negative_stock,omitempty"`
	AutoBackupEnabled   *bool   `json:"auto_backup_enabled,omitempty"`
	BackupRetentionDays *int    `json:"backup_retention_days,omitempty"`
	LowStockThreshold   *int    `json:"low_stock_threshold,omitempty"`
	EnableNotifications *bool   `json:"enable_notifications,omitempty"`
}

// SettingsResponse configuración global de la aplicación.
type SettingsResponse struct {
	ID                  int64     `json:"id"`
	AppName             string    `json:"app_name"`
	ItemsPerPage        int       `json:"items_per_page"`
	AllowNegativeStock  bool      `json:"allow_negative_stock"`
	AutoBackupEnabled   bool      `json:"auto_backup_enabled"`
	BackupRetentionDays int       `json:"backup_retention_days"`
	LowStockThreshold   int       `json:"low_stock_threshold"`
	EnableNotifications bool      `json:"enable_notifications"`
	UpdatedAt           time.Time `json:"updated_at"`
	UpdatedBy           *int64    `json:"updated_by,omitempty"`
}

// ToSettingsResponse mapea la entidad al DTO.
func ToSettingsResponse(s *entity.Settings) SettingsResponse {
	return SettingsResponse{
		ID:                  s.ID,
		AppName:             s.AppName,
		ItemsPerPage:        s.ItemsPerPage,
		AllowNegativeStock:  s.AllowNegativeStock,
		AutoBackupEnabled:   s.AutoBackupEnabled,
		BackupRetentionDays: s.BackupRetentionDays,
		LowStockThreshold:   s.LowStockThreshold,
		EnableNotifications: s.EnableNotifications,
		UpdatedAt:           s.UpdatedAt,
		UpdatedBy:           s.UpdatedBy,
	}
}
