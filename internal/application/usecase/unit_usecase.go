package usecase

import (
	"strings"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UnitUseCase casos de uso CRUD para unidades de medida.
type UnitUseCase struct {
	repo repository.UnitRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo}
}

func validateUnit(in dto.UnitRequest) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Symbol) == "" {
		return domain.ErrInvalidInput
	}
	if in.Multiplier <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create crea una unidad.
func (uc *UnitUseCase) Create(in dto.UnitRequest) (*dto.UnitResponse, error) {
	if err := validateUnit(in); err != nil {
		return nil, err
	}
	unit := &entity.Unit{
		Name:       strings.TrimSpace(in.Name),
		Symbol:     strings.TrimSpace(in.Symbol),
		Multiplier: in.Multiplier,
	}
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	resp := dto.ToUnitResponse(unit)
	return &resp, nil
}

// GetByID obtiene una unidad por ID.
func (uc *UnitUseCase) GetByID(id int64) (*dto.UnitResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToUnitResponse(unit)
	return &resp, nil
}

// Update actualiza una unidad.
func (uc *UnitUseCase) Update(id int64, in dto.UnitRequest) (*dto.UnitResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validateUnit(in); err != nil {
		return nil, err
	}
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	unit.Name = strings.TrimSpace(in.Name)
	unit.Symbol = strings.TrimSpace(in.Symbol)
	unit.Multiplier = in.Multiplier
	if err := uc.repo.Update(unit); err != nil {
		return nil, err
	}
	resp := dto.ToUnitResponse(unit)
	return &resp, nil
}

// Delete elimina una unidad (falla con ErrConflict si tiene items, vía FK).
func (uc *UnitUseCase) Delete(id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista unidades con paginación.
func (uc *UnitUseCase) List(page dto.PageRequest) (*dto.UnitListResponse, error) {
	page.DefaultPage()
	if err := page.Validate(); err != nil {
		return nil, err
	}
	units, err := uc.repo.List(page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	out := &dto.UnitListResponse{
		Units:    make([]dto.UnitResponse, 0, len(units)),
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	for _, u := range units {
		out.Units = append(out.Units, dto.ToUnitResponse(u))
	}
	return out, nil
}
