package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// memSettingsRepo SettingsRepository en memoria para tests.
type memSettingsRepo struct {
	settings *entity.Settings
}

var _ repository.SettingsRepository = (*memSettingsRepo)(nil)

func (r *memSettingsRepo) Get() (*entity.Settings, error) {
	if r.settings == nil {
		return nil, nil
	}
	out := *r.settings
	return &out, nil
}

func (r *memSettingsRepo) InitializeDefaults() error {
	if r.settings == nil {
		r.settings = &entity.Settings{
			ID:                  1,
			AppName:             "Inventory Management System",
			ItemsPerPage:        50,
			AllowNegativeStock:  false,
			AutoBackupEnabled:   true,
			BackupRetentionDays: 30,
			LowStockThreshold:   10,
			EnableNotifications: true,
		}
	}
	return nil
}

func (r *memSettingsRepo) Update(upd repository.SettingsUpdate, userID int64) (*entity.Settings, error) {
	s := r.settings
	if upd.AppName != nil {
		s.AppName = *upd.AppName
	}
	if upd.ItemsPerPage != nil {
		s.ItemsPerPage = *upd.ItemsPerPage
	}
	if upd.AllowNegativeStock != nil {
		s.AllowNegativeStock = *upd.AllowNegativeStock
	}
	if upd.AutoBackupEnabled != nil {
		s.AutoBackupEnabled = *upd.AutoBackupEnabled
	}
	if upd.BackupRetentionDays != nil {
		s.BackupRetentionDays = *upd.BackupRetentionDays
	}
	if upd.LowStockThreshold != nil {
		s.LowStockThreshold = *upd.LowStockThreshold
	}
	if upd.EnableNotifications != nil {
		s.EnableNotifications = *upd.EnableNotifications
	}
	s.UpdatedAt = time.Now()
	s.UpdatedBy = &userID
	out := *s
	return &out, nil
}

func TestSettingsGet_InitializesDefaults(t *testing.T) {
	uc := NewSettingsUseCase(&memSettingsRepo{})

	resp, err := uc.Get()
	require.NoError(t, err)
	assert.Equal(t, "Inventory Management System", resp.AppName)
	assert.Equal(t, 50, resp.ItemsPerPage)
	assert.False(t, resp.AllowNegativeStock)
	assert.Equal(t, 10, resp.LowStockThreshold)
}

func TestSettingsUpdate_Partial(t *testing.T) {
	uc := NewSettingsUseCase(&memSettingsRepo{})

	allow := true
	threshold := 25
	resp, err := uc.Update(dto.UpdateSettingsRequest{
		AllowNegativeStock: &allow,
		LowStockThreshold:  &threshold,
	}, 7)
	require.NoError(t, err)
	assert.True(t, resp.AllowNegativeStock)
	assert.Equal(t, 25, resp.LowStockThreshold)
	// Los campos omitidos conservan su valor.
	assert.Equal(t, 50, resp.ItemsPerPage)
	require.NotNil(t, resp.UpdatedBy)
	assert.Equal(t, int64(7), *resp.UpdatedBy)
}

func TestSettingsUpdate_Validation(t *testing.T) {
	uc := NewSettingsUseCase(&memSettingsRepo{})

	bad := 0
	_, err := uc.Update(dto.UpdateSettingsRequest{ItemsPerPage: &bad}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	days := 1000
	_, err = uc.Update(dto.UpdateSettingsRequest{BackupRetentionDays: &days}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := -1
	_, err = uc.Update(dto.UpdateSettingsRequest{LowStockThreshold: &neg}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
