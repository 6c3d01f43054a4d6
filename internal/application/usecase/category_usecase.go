package usecase

import (
	"strings"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat := &entity.Category{Name: name}
	if err := uc.repo.Create(cat); err != nil {
		return nil, err
	}
	resp := dto.ToCategoryResponse(cat)
	return &resp, nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(id int64) (*dto.CategoryResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToCategoryResponse(cat)
	return &resp, nil
}

// Update renombra una categoría.
func (uc *CategoryUseCase) Update(id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if id <= 0 || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	cat.Name = strings.TrimSpace(in.Name)
	if err := uc.repo.Update(cat); err != nil {
		return nil, err
	}
	resp := dto.ToCategoryResponse(cat)
	return &resp, nil
}

// Delete elimina una categoría (falla con ErrConflict si tiene items, vía FK).
func (uc *CategoryUseCase) Delete(id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista categorías con paginación.
func (uc *CategoryUseCase) List(page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage()
	if err := page.Validate(); err != nil {
		return nil, err
	}
	cats, err := uc.repo.List(page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryListResponse{
		Categories: make([]dto.CategoryResponse, 0, len(cats)),
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
	for _, c := range cats {
		out.Categories = append(out.Categories, dto.ToCategoryResponse(c))
	}
	return out, nil
}
