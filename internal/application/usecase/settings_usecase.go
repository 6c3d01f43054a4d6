package usecase

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// SettingsUseCase lectura y actualización parcial de la configuración global.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve los settings, inicializando los valores por defecto si la fila
// aún no existe.
func (uc *SettingsUseCase) Get() (*dto.SettingsResponse, error) {
	s, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if s == nil {
		if err := uc.repo.InitializeDefaults(); err != nil {
			return nil, err
		}
		if s, err = uc.repo.Get(); err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.ErrNotFound
		}
	}
	resp := dto.ToSettingsResponse(s)
	return &resp, nil
}

// Update aplica una actualización parcial y devuelve el estado resultante.
func (uc *SettingsUseCase) Update(in dto.UpdateSettingsRequest, userID int64) (*dto.SettingsResponse, error) {
	if in.ItemsPerPage != nil && (*in.ItemsPerPage < 1 || *in.ItemsPerPage > 100) {
		return nil, domain.ErrInvalidInput
	}
	if in.BackupRetentionDays != nil && (*in.BackupRetentionDays < 1 || *in.BackupRetentionDays > 365) {
		return nil, domain.ErrInvalidInput
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	// Asegura que la fila exista antes del UPDATE parcial.
	if _, err := uc.Get(); err != nil {
		return nil, err
	}
	s, err := uc.repo.Update(repository.SettingsUpdate{
		AppName:             in.AppName,
		ItemsPerPage:        in.ItemsPerPage,
		AllowNegativeStock:  in.AllowNegativeStock,
		AutoBackupEnabled:   in.AutoBackupEnabled,
		BackupRetentionDays: in.BackupRetentionDays,
		LowStockThreshold:   in.LowStockThreshold,
		EnableNotifications: in.EnableNotifications,
	}, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToSettingsResponse(s)
	return &resp, nil
}
