package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// memItemRepo ItemRepository en memoria para tests.
type memItemRepo struct {
	items  map[int64]entity.Item
	nextID int64
}

var _ repository.ItemRepository = (*memItemRepo)(nil)

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[int64]entity.Item)}
}

func (r *memItemRepo) Create(item *entity.Item) error {
	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) GetByID(id int64) (*entity.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	out := item
	return &out, nil
}

func (r *memItemRepo) Update(item *entity.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) SoftDelete(id int64) error {
	item := r.items[id]
	item.Active = false
	r.items[id] = item
	return nil
}

func (r *memItemRepo) List(f repository.ItemFilter) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, item := range r.items {
		if f.ActiveOnly && !item.Active {
			continue
		}
		cp := item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memItemRepo) Count(f repository.ItemFilter) (int, error) {
	list, _ := r.List(f)
	return len(list), nil
}

func (r *memItemRepo) ExistsByID(id int64) (bool, error) {
	_, ok := r.items[id]
	return ok, nil
}

func (r *memItemRepo) ExistsByItemCode(code string) (bool, error) {
	for _, item := range r.items {
		if item.ItemCode == code {
			return true, nil
		}
	}
	return false, nil
}

// existsRepo fake mínimo para categorías y unidades.
type existsRepo struct {
	ids map[int64]bool
}

func (r *existsRepo) ExistsByID(id int64) (bool, error) { return r.ids[id], nil }

type memCategoryRepo struct{ existsRepo }

var _ repository.CategoryRepository = (*memCategoryRepo)(nil)

func (r *memCategoryRepo) Create(*entity.Category) error            { return nil }
func (r *memCategoryRepo) GetByID(int64) (*entity.Category, error)  { return nil, nil }
func (r *memCategoryRepo) Update(*entity.Category) error            { return nil }
func (r *memCategoryRepo) Delete(int64) error                       { return nil }
func (r *memCategoryRepo) List(int, int) ([]*entity.Category, error) { return nil, nil }
func (r *memCategoryRepo) Count() (int, error)                      { return 0, nil }

type memUnitRepo struct{ existsRepo }

var _ repository.UnitRepository = (*memUnitRepo)(nil)

func (r *memUnitRepo) Create(*entity.Unit) error            { return nil }
func (r *memUnitRepo) GetByID(int64) (*entity.Unit, error)  { return nil, nil }
func (r *memUnitRepo) Update(*entity.Unit) error            { return nil }
func (r *memUnitRepo) Delete(int64) error                   { return nil }
func (r *memUnitRepo) List(int, int) ([]*entity.Unit, error) { return nil, nil }
func (r *memUnitRepo) Count() (int, error)                  { return 0, nil }

func newItemUC() (*ItemUseCase, *memItemRepo) {
	repo := newMemItemRepo()
	uc := NewItemUseCase(
		repo,
		&memCategoryRepo{existsRepo{ids: map[int64]bool{1: true}}},
		&memUnitRepo{existsRepo{ids: map[int64]bool{1: true}}},
	)
	return uc, repo
}

func TestItemCreate(t *testing.T) {
	uc, _ := newItemUC()

	resp, err := uc.Create(dto.CreateItemRequest{
		ItemCode:   "lap-001",
		Name:       "Laptop",
		CategoryID: 1,
		UnitID:     1,
		MinStock:   decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "LAP-001", resp.ItemCode) // se normaliza a mayúsculas
	assert.True(t, resp.Active)

	// item_code duplicado
	_, err = uc.Create(dto.CreateItemRequest{ItemCode: "LAP-001", Name: "Otra", CategoryID: 1, UnitID: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemCreate_Validation(t *testing.T) {
	uc, _ := newItemUC()

	_, err := uc.Create(dto.CreateItemRequest{ItemCode: "  ", Name: "X", CategoryID: 1, UnitID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateItemRequest{ItemCode: "A", Name: "X", CategoryID: 1, UnitID: 1, MinStock: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateItemRequest{ItemCode: "A", Name: "X", CategoryID: 9, UnitID: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(dto.CreateItemRequest{ItemCode: "A", Name: "X", CategoryID: 1, UnitID: 9})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUpdate(t *testing.T) {
	uc, _ := newItemUC()

	created, err := uc.Create(dto.CreateItemRequest{ItemCode: "A-1", Name: "Original", CategoryID: 1, UnitID: 1})
	require.NoError(t, err)

	name := "Renombrado"
	resp, err := uc.Update(created.ID, dto.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", resp.Name)
	assert.Equal(t, "A-1", resp.ItemCode)

	_, err = uc.Update(999, dto.UpdateItemRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemDelete_Soft(t *testing.T) {
	uc, repo := newItemUC()

	created, err := uc.Create(dto.CreateItemRequest{ItemCode: "A-1", Name: "X", CategoryID: 1, UnitID: 1})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))

	// La fila sigue existiendo, marcada inactiva.
	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Active)

	assert.ErrorIs(t, uc.Delete(999), domain.ErrNotFound)
}

func TestItemList(t *testing.T) {
	uc, _ := newItemUC()

	for _, code := range []string{"A-1", "A-2", "A-3"} {
		_, err := uc.Create(dto.CreateItemRequest{ItemCode: code, Name: code, CategoryID: 1, UnitID: 1})
		require.NoError(t, err)
	}

	resp, err := uc.List(dto.PageRequest{}, false, "")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Page)

	_, err = uc.List(dto.PageRequest{Page: 1, PageSize: 500}, false, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
