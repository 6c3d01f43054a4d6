package usecase

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// memIssueRepo IssueRepository en memoria para tests.
type memIssueRepo struct {
	issues map[int64]entity.Issue
	nextID int64
}

var _ repository.IssueRepository = (*memIssueRepo)(nil)

func newMemIssueRepo() *memIssueRepo {
	return &memIssueRepo{issues: make(map[int64]entity.Issue)}
}

func (r *memIssueRepo) Create(issue *entity.Issue) error {
	r.nextID++
	issue.ID = r.nextID
	r.issues[issue.ID] = *issue
	return nil
}

func (r *memIssueRepo) GetByID(id int64) (*entity.Issue, error) {
	issue, ok := r.issues[id]
	if !ok {
		return nil, nil
	}
	out := issue
	return &out, nil
}

func (r *memIssueRepo) GetByCode(code string) (*entity.Issue, error) {
	for _, issue := range r.issues {
		if issue.Code == code {
			out := issue
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memIssueRepo) Update(issue *entity.Issue) error {
	r.issues[issue.ID] = *issue
	return nil
}

func (r *memIssueRepo) Delete(id int64) error {
	delete(r.issues, id)
	return nil
}

func (r *memIssueRepo) List(f repository.IssueFilter) ([]*entity.Issue, error) {
	var out []*entity.Issue
	for _, issue := range r.issues {
		if f.Status != "" && issue.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(issue.Code, f.Search) && !strings.Contains(issue.Status, f.Search) {
			continue
		}
		cp := issue
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memIssueRepo) Count(f repository.IssueFilter) (int, error) {
	list, _ := r.List(f)
	return len(list), nil
}

// memIssueItemRepo IssueItemRepository en memoria para tests.
type memIssueItemRepo struct {
	lines  map[int64]entity.IssueItem
	nextID int64
}

var _ repository.IssueItemRepository = (*memIssueItemRepo)(nil)

func newMemIssueItemRepo() *memIssueItemRepo {
	return &memIssueItemRepo{lines: make(map[int64]entity.IssueItem)}
}

func (r *memIssueItemRepo) Create(line *entity.IssueItem) error {
	r.nextID++
	line.ID = r.nextID
	r.lines[line.ID] = *line
	return nil
}

func (r *memIssueItemRepo) CreateBulk(lines []*entity.IssueItem) error {
	for _, line := range lines {
		if err := r.Create(line); err != nil {
			return err
		}
	}
	return nil
}

func (r *memIssueItemRepo) GetByID(id int64) (*entity.IssueItem, error) {
	line, ok := r.lines[id]
	if !ok {
		return nil, nil
	}
	out := line
	return &out, nil
}

func (r *memIssueItemRepo) ListByIssue(issueID int64) ([]*entity.IssueItem, error) {
	id := issueID
	return r.List(repository.IssueItemFilter{IssueID: &id})
}

func (r *memIssueItemRepo) List(f repository.IssueItemFilter) ([]*entity.IssueItem, error) {
	var out []*entity.IssueItem
	for _, line := range r.lines {
		if f.IssueID != nil && line.IssueID != *f.IssueID {
			continue
		}
		if f.ItemID != nil && line.ItemID != *f.ItemID {
			continue
		}
		cp := line
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memIssueItemRepo) Count(f repository.IssueItemFilter) (int, error) {
	list, _ := r.List(f)
	return len(list), nil
}

func (r *memIssueItemRepo) UpdateQty(id int64, qty decimal.Decimal) error {
	line := r.lines[id]
	line.Qty = qty
	r.lines[id] = line
	return nil
}

func (r *memIssueItemRepo) Delete(id int64) error {
	delete(r.lines, id)
	return nil
}

func (r *memIssueItemRepo) ExistsByIssueAndItem(issueID, itemID int64) (bool, error) {
	for _, line := range r.lines {
		if line.IssueID == issueID && line.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

// issueUserRepo UserRepository mínimo: solo GetByID responde.
type issueUserRepo struct {
	ids map[int64]bool
}

var _ repository.UserRepository = (*issueUserRepo)(nil)

func (r *issueUserRepo) Create(*entity.User) error { return nil }
func (r *issueUserRepo) GetByID(id int64) (*entity.User, error) {
	if !r.ids[id] {
		return nil, nil
	}
	return &entity.User{ID: id, Active: true}, nil
}
func (r *issueUserRepo) GetByEmail(string) (*entity.User, error)              { return nil, nil }
func (r *issueUserRepo) Update(*entity.User) error                            { return nil }
func (r *issueUserRepo) SoftDelete(int64) error                               { return nil }
func (r *issueUserRepo) List(repository.UserFilter) ([]*entity.User, error)   { return nil, nil }
func (r *issueUserRepo) Count(repository.UserFilter) (int, error)             { return 0, nil }

func newIssueUseCases() (*IssueUseCase, *IssueItemUseCase, *memIssueRepo, *memIssueItemRepo) {
	issueRepo := newMemIssueRepo()
	lineRepo := newMemIssueItemRepo()
	users := &issueUserRepo{ids: map[int64]bool{1: true, 2: true}}

	itemRepo := newMemItemRepo()
	itemRepo.Create(&entity.Item{ItemCode: "LAP-001", Name: "Laptop", Active: true})
	itemRepo.Create(&entity.Item{ItemCode: "MON-001", Name: "Monitor", Active: true})

	issueUC := NewIssueUseCase(issueRepo, users)
	lineUC := NewIssueItemUseCase(lineRepo, issueRepo, itemRepo)
	return issueUC, lineUC, issueRepo, lineRepo
}

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

func TestIssueCreate(t *testing.T) {
	uc, _, _, _ := newIssueUseCases()

	resp, err := uc.Create(dto.CreateIssueRequest{Code: "  ISS-001  ", RequestedBy: i64Ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, "ISS-001", resp.Code)
	assert.Equal(t, entity.IssueStatusDraft, resp.Status)

	// Código duplicado.
	_, err = uc.Create(dto.CreateIssueRequest{Code: "ISS-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Código vacío y estado desconocido.
	_, err = uc.Create(dto.CreateIssueRequest{Code: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(dto.CreateIssueRequest{Code: "ISS-002", Status: "BOGUS"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Usuario solicitante inexistente.
	_, err = uc.Create(dto.CreateIssueRequest{Code: "ISS-003", RequestedBy: i64Ptr(99)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueGetByCode(t *testing.T) {
	uc, _, _, _ := newIssueUseCases()

	_, err := uc.Create(dto.CreateIssueRequest{Code: "ISS-001"})
	require.NoError(t, err)

	resp, err := uc.GetByCode("ISS-001")
	require.NoError(t, err)
	assert.Equal(t, "ISS-001", resp.Code)

	_, err = uc.GetByCode("NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByCode("  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIssueUpdate(t *testing.T) {
	uc, _, _, _ := newIssueUseCases()

	created, err := uc.Create(dto.CreateIssueRequest{Code: "ISS-001"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateIssueRequest{Code: "ISS-002"})
	require.NoError(t, err)

	resp, err := uc.Update(created.ID, dto.UpdateIssueRequest{Note: strPtr("urgente")})
	require.NoError(t, err)
	require.NotNil(t, resp.Note)
	assert.Equal(t, "urgente", *resp.Note)

	// Cambio de código a uno ya usado.
	_, err = uc.Update(created.ID, dto.UpdateIssueRequest{Code: strPtr("ISS-002")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Estado desconocido.
	_, err = uc.Update(created.ID, dto.UpdateIssueRequest{Status: strPtr("BOGUS")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(999, dto.UpdateIssueRequest{Note: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueApprove(t *testing.T) {
	uc, _, _, _ := newIssueUseCases()

	created, err := uc.Create(dto.CreateIssueRequest{Code: "ISS-001"})
	require.NoError(t, err)

	resp, err := uc.Approve(created.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.IssueStatusApproved, resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, int64(2), *resp.ApprovedBy)

	// Ya no está en DRAFT.
	_, err = uc.Approve(created.ID, 2)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Aprobador inexistente.
	created2, err := uc.Create(dto.CreateIssueRequest{Code: "ISS-002"})
	require.NoError(t, err)
	_, err = uc.Approve(created2.ID, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Approve(999, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueChangeStatus(t *testing.T) {
	uc, _, _, _ := newIssueUseCases()

	created, err := uc.Create(dto.CreateIssueRequest{Code: "ISS-001"})
	require.NoError(t, err)

	resp, err := uc.ChangeStatus(created.ID, entity.IssueStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.IssueStatusCancelled, resp.Status)

	_, err = uc.ChangeStatus(created.ID, "BOGUS")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ChangeStatus(999, entity.IssueStatusIssued)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueDelete(t *testing.T) {
	uc, _, _, _ := newIssueUseCases()

	created, err := uc.Create(dto.CreateIssueRequest{Code: "ISS-001"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(created.ID))

	_, err = uc.GetByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(created.ID), domain.ErrNotFound)
}

func TestIssueList(t *testing.T) {
	uc, _, _, _ := newIssueUseCases()

	for _, code := range []string{"ISS-001", "ISS-002", "ISS-003"} {
		_, err := uc.Create(dto.CreateIssueRequest{Code: code})
		require.NoError(t, err)
	}
	created, err := uc.GetByCode("ISS-003")
	require.NoError(t, err)
	_, err = uc.Approve(created.ID, 1)
	require.NoError(t, err)

	resp, err := uc.List(dto.PageRequest{}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 50, resp.PageSize)

	// Filtro por estado.
	resp, err = uc.List(dto.PageRequest{}, "", entity.IssueStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	// Estado de filtro desconocido y paginación fuera de rango.
	_, err = uc.List(dto.PageRequest{}, "", "BOGUS")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.List(dto.PageRequest{Page: -1, PageSize: 10}, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.List(dto.PageRequest{Page: 1, PageSize: 101}, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIssueItemCreate(t *testing.T) {
	issueUC, lineUC, _, _ := newIssueUseCases()

	issue, err := issueUC.Create(dto.CreateIssueRequest{Code: "ISS-001"})
	require.NoError(t, err)

	resp, err := lineUC.Create(dto.CreateIssueItemRequest{IssueID: issue.ID, ItemID: 1, Qty: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, issue.ID, resp.IssueID)
	assert.True(t, resp.Qty.Equal(decimal.NewFromInt(5)))

	// Par (issue, item) repetido.
	_, err = lineUC.Create(dto.CreateIssueItemRequest{IssueID: issue.ID, ItemID: 1, Qty: decimal.NewFromInt(2)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Cantidad no positiva y artículo inexistente.
	_, err = lineUC.Create(dto.CreateIssueItemRequest{IssueID: issue.ID, ItemID: 2, Qty: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = lineUC.Create(dto.CreateIssueItemRequest{IssueID: issue.ID, ItemID: 99, Qty: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Solicitud fuera de DRAFT no admite líneas nuevas.
	_, err = issueUC.Approve(issue.ID, 1)
	require.NoError(t, err)
	_, err = lineUC.Create(dto.CreateIssueItemRequest{IssueID: issue.ID, ItemID: 2, Qty: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestIssueItemCreateBulk(t *testing.T) {
	issueUC, lineUC, _, _ := newIssueUseCases()

	issue, err := issueUC.Create(dto.CreateIssueRequest{Code: "ISS-001"})
	require.NoError(t, err)

	created, err := lineUC.CreateBulk(dto.BulkCreateIssueItemsRequest{
		IssueID: issue.ID,
		Items: []dto.BulkIssueItemLine{
			{ItemID: 1, Qty: decimal.NewFromInt(5)},
			{ItemID: 2, Qty: decimal.RequireFromString("2.5")},
		},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	// Artículo repetido dentro del lote.
	issue2, err := issueUC.Create(dto.CreateIssueRequest{Code: "ISS-002"})
	require.NoError(t, err)
	_, err = lineUC.CreateBulk(dto.BulkCreateIssueItemsRequest{
		IssueID: issue2.ID,
		Items: []dto.BulkIssueItemLine{
			{ItemID: 1, Qty: decimal.NewFromInt(1)},
			{ItemID: 1, Qty: decimal.NewFromInt(2)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Una línea inválida rechaza el lote completo.
	_, err = lineUC.CreateBulk(dto.BulkCreateIssueItemsRequest{
		IssueID: issue2.ID,
		Items: []dto.BulkIssueItemLine{
			{ItemID: 2, Qty: decimal.NewFromInt(1)},
			{ItemID: 99, Qty: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	lines, err := lineUC.ListByIssue(issue2.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// Lote vacío.
	_, err = lineUC.CreateBulk(dto.BulkCreateIssueItemsRequest{IssueID: issue2.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIssueItemUpdateAndDelete(t *testing.T) {
	issueUC, lineUC, _, _ := newIssueUseCases()

	issue, err := issueUC.Create(dto.CreateIssueRequest{Code: "ISS-001"})
	require.NoError(t, err)
	line, err := lineUC.Create(dto.CreateIssueItemRequest{IssueID: issue.ID, ItemID: 1, Qty: decimal.NewFromInt(5)})
	require.NoError(t, err)

	qty := decimal.RequireFromString("7.5")
	resp, err := lineUC.Update(line.ID, dto.UpdateIssueItemRequest{Qty: &qty})
	require.NoError(t, err)
	assert.True(t, resp.Qty.Equal(qty))

	// Cantidad no positiva.
	bad := decimal.NewFromInt(-1)
	_, err = lineUC.Update(line.ID, dto.UpdateIssueItemRequest{Qty: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Con la solicitud aprobada ya no se puede tocar la línea.
	_, err = issueUC.Approve(issue.ID, 1)
	require.NoError(t, err)
	_, err = lineUC.Update(line.ID, dto.UpdateIssueItemRequest{Qty: &qty})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, lineUC.Delete(line.ID), domain.ErrConflict)

	// De vuelta en DRAFT la línea se elimina.
	_, err = issueUC.ChangeStatus(issue.ID, entity.IssueStatusDraft)
	require.NoError(t, err)
	require.NoError(t, lineUC.Delete(line.ID))
	_, err = lineUC.GetByID(line.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueItemList(t *testing.T) {
	issueUC, lineUC, _, _ := newIssueUseCases()

	issue1, err := issueUC.Create(dto.CreateIssueRequest{Code: "ISS-001"})
	require.NoError(t, err)
	issue2, err := issueUC.Create(dto.CreateIssueRequest{Code: "ISS-002"})
	require.NoError(t, err)
	_, err = lineUC.Create(dto.CreateIssueItemRequest{IssueID: issue1.ID, ItemID: 1, Qty: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = lineUC.Create(dto.CreateIssueItemRequest{IssueID: issue1.ID, ItemID: 2, Qty: decimal.NewFromInt(2)})
	require.NoError(t, err)
	_, err = lineUC.Create(dto.CreateIssueItemRequest{IssueID: issue2.ID, ItemID: 1, Qty: decimal.NewFromInt(3)})
	require.NoError(t, err)

	resp, err := lineUC.List(dto.PageRequest{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)

	resp, err = lineUC.List(dto.PageRequest{}, i64Ptr(issue1.ID), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	resp, err = lineUC.List(dto.PageRequest{}, nil, i64Ptr(1))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	_, err = lineUC.List(dto.PageRequest{Page: -1, PageSize: 10}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	lines, err := lineUC.ListByIssue(issue2.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Qty.Equal(decimal.NewFromInt(3)))
}
