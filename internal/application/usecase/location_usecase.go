package usecase

import (
	"strings"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(in.Name)
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}
	loc := &entity.Location{Name: name, Code: code, Active: true}
	if err := uc.repo.Create(loc); err != nil {
		return nil, err
	}
	resp := dto.ToLocationResponse(loc)
	return &resp, nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(id int64) (*dto.LocationResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToLocationResponse(loc)
	return &resp, nil
}

// Update actualiza una ubicación.
func (uc *LocationUseCase) Update(id int64, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		loc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*in.Code))
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		loc.Code = code
	}
	if in.Active != nil {
		loc.Active = *in.Active
	}
	if err := uc.repo.Update(loc); err != nil {
		return nil, err
	}
	resp := dto.ToLocationResponse(loc)
	return &resp, nil
}

// Delete baja lógica de la ubicación; sus niveles de stock se conservan.
func (uc *LocationUseCase) Delete(id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	loc, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id)
}

// List lista ubicaciones con filtros y paginación.
func (uc *LocationUseCase) List(page dto.PageRequest, activeOnly bool, search string) (*dto.LocationListResponse, error) {
	page.DefaultPage()
	if err := page.Validate(); err != nil {
		return nil, err
	}
	f := repository.LocationFilter{
		ActiveOnly: activeOnly,
		Search:     search,
		Limit:      page.PageSize,
		Offset:     page.Offset(),
	}
	locs, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(f)
	if err != nil {
		return nil, err
	}
	out := &dto.LocationListResponse{
		Locations: make([]dto.LocationResponse, 0, len(locs)),
		Total:     total,
		Page:      page.Page,
		PageSize:  page.PageSize,
	}
	for _, l := range locs {
		out.Locations = append(out.Locations, dto.ToLocationResponse(l))
	}
	return out, nil
}
