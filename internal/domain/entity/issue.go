package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de salida de almacén.
const (
	IssueStatusDraft     = "DRAFT"
	IssueStatusApproved  = "APPROVED"
	IssueStatusIssued    = "ISSUED"
	IssueStatusCancelled = "CANCELLED"
)

// ValidIssueStatus reporta si s es uno de los estados soportados.
func ValidIssueStatus(s string) bool {
	switch s {
	case IssueStatusDraft, IssueStatusApproved, IssueStatusIssued, IssueStatusCancelled:
		return true
	}
	return false
}

// Issue representa una solicitud de salida de material: un encabezado con
// código único y flujo de estados cuyas líneas son IssueItem. Solo las
// solicitudes en DRAFT admiten cambios en sus líneas.
type Issue struct {
	ID          int64
	Code        string
	Status      string
	RequestedBy *int64
	ApprovedBy  *int64
	IssuedAt    *time.Time
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IssueItem es una línea de solicitud: la cantidad pedida de un artículo.
// El par (issue, item) es único dentro de una solicitud.
type IssueItem struct {
	ID      int64
	IssueID int64
	ItemID  int64
	Qty     decimal.Decimal

	// Campos denormalizados por JOIN en lecturas (no persisten en issue_items).
	ItemCode string
	ItemName string
}
