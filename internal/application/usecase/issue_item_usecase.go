package usecase

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// IssueItemUseCase casos de uso para líneas de solicitud. Las líneas solo se
// crean, modifican o eliminan mientras la solicitud está en DRAFT.
type IssueItemUseCase struct {
	repo   repository.IssueItemRepository
	issues repository.IssueRepository
	items  repository.ItemRepository
}

// NewIssueItemUseCase construye el caso de uso.
func NewIssueItemUseCase(
	repo repository.IssueItemRepository,
	issues repository.IssueRepository,
	items repository.ItemRepository,
) *IssueItemUseCase {
	return &IssueItemUseCase{repo: repo, issues: issues, items: items}
}

// draftIssue obtiene la solicitud y verifica que siga en DRAFT.
func (uc *IssueItemUseCase) draftIssue(issueID int64) (*entity.Issue, error) {
	issue, err := uc.issues.GetByID(issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrNotFound
	}
	if issue.Status != entity.IssueStatusDraft {
		return nil, domain.ErrConflict
	}
	return issue, nil
}

// itemExists verifica que el artículo referenciado exista.
func (uc *IssueItemUseCase) itemExists(itemID int64) error {
	ok, err := uc.items.ExistsByID(itemID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Create agrega una línea a una solicitud en DRAFT.
func (uc *IssueItemUseCase) Create(in dto.CreateIssueItemRequest) (*dto.IssueItemResponse, error) {
	if in.IssueID <= 0 || in.ItemID <= 0 || !in.Qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.draftIssue(in.IssueID); err != nil {
		return nil, err
	}
	if err := uc.itemExists(in.ItemID); err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsByIssueAndItem(in.IssueID, in.ItemID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	line := &entity.IssueItem{
		IssueID: in.IssueID,
		ItemID:  in.ItemID,
		Qty:     in.Qty,
	}
	if err := uc.repo.Create(line); err != nil {
		return nil, err
	}
	// Relee para denormalizar código y nombre del artículo.
	created, err := uc.repo.GetByID(line.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = line
	}
	resp := dto.ToIssueItemResponse(created)
	return &resp, nil
}

// CreateBulk agrega varias líneas a una solicitud en DRAFT en una sola
// operación. Valida todas las líneas antes de insertar: cualquier artículo
// inexistente, cantidad no positiva o par repetido rechaza el lote completo.
func (uc *IssueItemUseCase) CreateBulk(in dto.BulkCreateIssueItemsRequest) ([]dto.IssueItemResponse, error) {
	if in.IssueID <= 0 || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.draftIssue(in.IssueID); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(in.Items))
	lines := make([]*entity.IssueItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.ItemID <= 0 || !item.Qty.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if seen[item.ItemID] {
			return nil, domain.ErrDuplicate
		}
		seen[item.ItemID] = true
		if err := uc.itemExists(item.ItemID); err != nil {
			return nil, err
		}
		exists, err := uc.repo.ExistsByIssueAndItem(in.IssueID, item.ItemID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
		lines = append(lines, &entity.IssueItem{
			IssueID: in.IssueID,
			ItemID:  item.ItemID,
			Qty:     item.Qty,
		})
	}
	if err := uc.repo.CreateBulk(lines); err != nil {
		return nil, err
	}

	created, err := uc.repo.ListByIssue(in.IssueID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IssueItemResponse, 0, len(created))
	for _, line := range created {
		out = append(out, dto.ToIssueItemResponse(line))
	}
	return out, nil
}

// GetByID obtiene una línea por ID.
func (uc *IssueItemUseCase) GetByID(id int64) (*dto.IssueItemResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	line, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToIssueItemResponse(line)
	return &resp, nil
}

// ListByIssue lista todas las líneas de una solicitud.
func (uc *IssueItemUseCase) ListByIssue(issueID int64) ([]dto.IssueItemResponse, error) {
	if issueID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	issue, err := uc.issues.GetByID(issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.repo.ListByIssue(issueID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IssueItemResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, dto.ToIssueItemResponse(line))
	}
	return out, nil
}

// List lista líneas con filtros por solicitud o artículo y paginación.
func (uc *IssueItemUseCase) List(page dto.PageRequest, issueID, itemID *int64) (*dto.IssueItemListResponse, error) {
	page.DefaultPage()
	if err := page.Validate(); err != nil {
		return nil, err
	}
	f := repository.IssueItemFilter{
		IssueID: issueID,
		ItemID:  itemID,
		Limit:   page.PageSize,
		Offset:  page.Offset(),
	}
	lines, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(f)
	if err != nil {
		return nil, err
	}
	out := &dto.IssueItemListResponse{
		IssueItems: make([]dto.IssueItemResponse, 0, len(lines)),
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
	for _, line := range lines {
		out.IssueItems = append(out.IssueItems, dto.ToIssueItemResponse(line))
	}
	return out, nil
}

// Update corrige la cantidad de una línea de una solicitud en DRAFT.
func (uc *IssueItemUseCase) Update(id int64, in dto.UpdateIssueItemRequest) (*dto.IssueItemResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Qty == nil || !in.Qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	line, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.draftIssue(line.IssueID); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateQty(id, *in.Qty); err != nil {
		return nil, err
	}
	line.Qty = *in.Qty
	resp := dto.ToIssueItemResponse(line)
	return &resp, nil
}

// Delete elimina una línea de una solicitud en DRAFT.
func (uc *IssueItemUseCase) Delete(id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	line, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if line == nil {
		return domain.ErrNotFound
	}
	if _, err := uc.draftIssue(line.IssueID); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
