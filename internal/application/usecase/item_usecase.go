package usecase

import (
	"strings"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para items. El stock no se toca aquí:
// toda mutación de cantidades pasa por el motor de ledger.
type ItemUseCase struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	repo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
) *ItemUseCase {
	return &ItemUseCase{repo: repo, categoryRepo: categoryRepo, unitRepo: unitRepo}
}

// Create crea un item validando categoría, unidad y unicidad del item_code.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.ItemCode))
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ok, err := uc.categoryRepo.ExistsByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	ok, err = uc.unitRepo.ExistsByID(in.UnitID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.repo.ExistsByItemCode(code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	item := &entity.Item{
		ItemCode:     code,
		Name:         strings.TrimSpace(in.Name),
		CategoryID:   in.CategoryID,
		UnitID:       in.UnitID,
		OwnerUserID:  in.OwnerUserID,
		SerialNumber: in.SerialNumber,
		MinStock:     in.MinStock,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		Active:       true,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	resp := dto.ToItemResponse(item)
	return &resp, nil
}

// GetByID obtiene un item por ID.
func (uc *ItemUseCase) GetByID(id int64) (*dto.ItemResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToItemResponse(item)
	return &resp, nil
}

// Update actualiza un item; re-valida item_code, categoría y unidad si cambian.
func (uc *ItemUseCase) Update(id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if in.ItemCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*in.ItemCode))
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		if code != item.ItemCode {
			exists, err := uc.repo.ExistsByItemCode(code)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrDuplicate
			}
			item.ItemCode = code
		}
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.CategoryID != nil {
		ok, err := uc.categoryRepo.ExistsByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotFound
		}
		item.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		ok, err := uc.unitRepo.ExistsByID(*in.UnitID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotFound
		}
		item.UnitID = *in.UnitID
	}
	if in.SerialNumber != nil {
		item.SerialNumber = in.SerialNumber
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.MinStock = *in.MinStock
	}
	if in.Description != nil {
		item.Description = in.Description
	}
	if in.ImageURL != nil {
		item.ImageURL = in.ImageURL
	}
	if in.Active != nil {
		item.Active = *in.Active
	}

	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	resp := dto.ToItemResponse(item)
	return &resp, nil
}

// Delete baja lógica: marca el item como inactivo (el ledger conserva su historial).
func (uc *ItemUseCase) Delete(id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id)
}

// List lista items con filtros y paginación.
func (uc *ItemUseCase) List(page dto.PageRequest, activeOnly bool, search string) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	if err := page.Validate(); err != nil {
		return nil, err
	}
	f := repository.ItemFilter{
		ActiveOnly: activeOnly,
		Search:     search,
		Limit:      page.PageSize,
		Offset:     page.Offset(),
	}
	items, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(f)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{
		Items:    make([]dto.ItemResponse, 0, len(items)),
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.ToItemResponse(it))
	}
	return out, nil
}
