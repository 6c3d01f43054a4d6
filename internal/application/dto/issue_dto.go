package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreateIssueRequest body para POST /api/issues.
type CreateIssueRequest struct {
	Code        string     `json:"code"`
	Status      string     `json:"status"`
	RequestedBy *int64     `json:"requested_by,omitempty"`
	ApprovedBy  *int64     `json:"approved_by,omitempty"`
	IssuedAt    *time.Time `json:"issued_at,omitempty"`
	Note        *string    `json:"note,omitempty"`
}

// UpdateIssueRequest body para PUT /api/issues/:id (campos opcionales).
type UpdateIssueRequest struct {
	Code        *string    `json:"code,omitempty"`
	Status      *string    `json:"status,omitempty"`
	RequestedBy *int64     `json:"requested_by,omitempty"`
	ApprovedBy  *int64     `json:"approved_by,omitempty"`
	IssuedAt    *time.Time `json:"issued_at,omitempty"`
	Note        *string    `json:"note,omitempty"`
}

// IssueResponse representación de una solicitud de salida.
type IssueResponse struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Status      string     `json:"status"`
	RequestedBy *int64     `json:"requested_by,omitempty"`
	ApprovedBy  *int64     `json:"approved_by,omitempty"`
	IssuedAt    *time.Time `json:"issued_at,omitempty"`
	Note        *string    `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IssueListResponse listado paginado de solicitudes.
type IssueListResponse struct {
	Issues   []IssueResponse `json:"issues"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// CreateIssueItemRequest body para POST /api/issue-items.
type CreateIssueItemRequest struct {
	IssueID int64           `json:"issue_id"`
	ItemID  int64           `json:"item_id"`
	Qty     decimal.Decimal `json:"qty"`
}

// UpdateIssueItemRequest body para PUT /api/issue-items/:id.
type UpdateIssueItemRequest struct {
	Qty *decimal.Decimal `json:"qty,omitempty"`
}

// BulkIssueItemLine una línea dentro de una carga masiva.
type BulkIssueItemLine struct {
	ItemID int64           `json:"item_id"`
	Qty    decimal.Decimal `json:"qty"`
}

// BulkCreateIssueItemsRequest body para POST /api/issue-items/bulk.
type BulkCreateIssueItemsRequest struct {
	IssueID int64               `json:"issue_id"`
	Items   []BulkIssueItemLine `json:"items"`
}

// IssueItemResponse representación de una línea de solicitud.
type IssueItemResponse struct {
	ID       int64           `json:"id"`
	IssueID  int64           `json:"issue_id"`
	ItemID   int64           `json:"item_id"`
	Qty      decimal.Decimal `json:"qty"`
	ItemCode string          `json:"item_code,omitempty"`
	ItemName string          `json:"item_name,omitempty"`
}

// IssueItemListResponse listado paginado de líneas de solicitud.
type IssueItemListResponse struct {
	IssueItems []IssueItemResponse `json:"issue_items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

// ToIssueResponse mapea la entidad al DTO.
func ToIssueResponse(i *entity.Issue) IssueResponse {
	return IssueResponse{
		ID:          i.ID,
		Code:        i.Code,
		Status:      i.Status,
		RequestedBy: i.RequestedBy,
		ApprovedBy:  i.ApprovedBy,
		IssuedAt:    i.IssuedAt,
		Note:        i.Note,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// ToIssueItemResponse mapea la entidad al DTO.
func ToIssueItemResponse(l *entity.IssueItem) IssueItemResponse {
	return IssueItemResponse{
		ID:       l.ID,
		IssueID:  l.IssueID,
		ItemID:   l.ItemID,
		Qty:      l.Qty,
		ItemCode: l.ItemCode,
		ItemName: l.ItemName,
	}
}
