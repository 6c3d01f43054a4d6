package usecase

import (
	"strings"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// IssueUseCase casos de uso para solicitudes de salida de almacén. El flujo
// de estados es DRAFT -> APPROVED -> ISSUED (o CANCELLED); solo las
// solicitudes en DRAFT admiten aprobación.
type IssueUseCase struct {
	repo  repository.IssueRepository
	users repository.UserRepository
}

// NewIssueUseCase construye el caso de uso.
func NewIssueUseCase(repo repository.IssueRepository, users repository.UserRepository) *IssueUseCase {
	return &IssueUseCase{repo: repo, users: users}
}

// userExists verifica que el usuario referenciado exista.
func (uc *IssueUseCase) userExists(id int64) error {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return nil
}

// Create registra una solicitud validando código único y referencias a usuarios.
func (uc *IssueUseCase) Create(in dto.CreateIssueRequest) (*dto.IssueResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.IssueStatusDraft
	}
	if !entity.ValidIssueStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.RequestedBy != nil {
		if err := uc.userExists(*in.RequestedBy); err != nil {
			return nil, err
		}
	}
	if in.ApprovedBy != nil {
		if err := uc.userExists(*in.ApprovedBy); err != nil {
			return nil, err
		}
	}

	issue := &entity.Issue{
		Code:        code,
		Status:      status,
		RequestedBy: in.RequestedBy,
		ApprovedBy:  in.ApprovedBy,
		IssuedAt:    in.IssuedAt,
		Note:        in.Note,
	}
	if err := uc.repo.Create(issue); err != nil {
		return nil, err
	}
	resp := dto.ToIssueResponse(issue)
	return &resp, nil
}

// GetByID obtiene una solicitud por ID.
func (uc *IssueUseCase) GetByID(id int64) (*dto.IssueResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	issue, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToIssueResponse(issue)
	return &resp, nil
}

// GetByCode obtiene una solicitud por su código.
func (uc *IssueUseCase) GetByCode(code string) (*dto.IssueResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	issue, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToIssueResponse(issue)
	return &resp, nil
}

// Update actualiza los campos de una solicitud.
func (uc *IssueUseCase) Update(id int64, in dto.UpdateIssueRequest) (*dto.IssueResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	issue, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		if code != issue.Code {
			existing, err := uc.repo.GetByCode(code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrDuplicate
			}
			issue.Code = code
		}
	}
	if in.Status != nil {
		if !entity.ValidIssueStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		issue.Status = *in.Status
	}
	if in.RequestedBy != nil {
		if err := uc.userExists(*in.RequestedBy); err != nil {
			return nil, err
		}
		issue.RequestedBy = in.RequestedBy
	}
	if in.ApprovedBy != nil {
		if err := uc.userExists(*in.ApprovedBy); err != nil {
			return nil, err
		}
		issue.ApprovedBy = in.ApprovedBy
	}
	if in.IssuedAt != nil {
		issue.IssuedAt = in.IssuedAt
	}
	if in.Note != nil {
		issue.Note = in.Note
	}
	if err := uc.repo.Update(issue); err != nil {
		return nil, err
	}
	resp := dto.ToIssueResponse(issue)
	return &resp, nil
}

// Delete elimina una solicitud; sus líneas caen en cascada.
func (uc *IssueUseCase) Delete(id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	issue, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if issue == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Approve aprueba una solicitud en DRAFT y registra quién la aprobó.
func (uc *IssueUseCase) Approve(id, approverID int64) (*dto.IssueResponse, error) {
	if id <= 0 || approverID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	issue, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrNotFound
	}
	if issue.Status != entity.IssueStatusDraft {
		return nil, domain.ErrConflict
	}
	if err := uc.userExists(approverID); err != nil {
		return nil, err
	}
	issue.Status = entity.IssueStatusApproved
	issue.ApprovedBy = &approverID
	if err := uc.repo.Update(issue); err != nil {
		return nil, err
	}
	resp := dto.ToIssueResponse(issue)
	return &resp, nil
}

// ChangeStatus cambia el estado de una solicitud a uno de los soportados.
func (uc *IssueUseCase) ChangeStatus(id int64, newStatus string) (*dto.IssueResponse, error) {
	if id <= 0 || !entity.ValidIssueStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	issue, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, domain.ErrNotFound
	}
	issue.Status = newStatus
	if err := uc.repo.Update(issue); err != nil {
		return nil, err
	}
	resp := dto.ToIssueResponse(issue)
	return &resp, nil
}

// List lista solicitudes con búsqueda, filtro por estado y paginación.
func (uc *IssueUseCase) List(page dto.PageRequest, search, status string) (*dto.IssueListResponse, error) {
	page.DefaultPage()
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if status != "" && !entity.ValidIssueStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	f := repository.IssueFilter{
		Search: search,
		Status: status,
		Limit:  page.PageSize,
		Offset: page.Offset(),
	}
	issues, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(f)
	if err != nil {
		return nil, err
	}
	out := &dto.IssueListResponse{
		Issues:   make([]dto.IssueResponse, 0, len(issues)),
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	for _, issue := range issues {
		out.Issues = append(out.Issues, dto.ToIssueResponse(issue))
	}
	return out, nil
}
