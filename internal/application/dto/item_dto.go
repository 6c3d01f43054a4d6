package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	ItemCode     string          `json:"item_code"`
	Name         string          `json:"name"`
	CategoryID   int64           `json:"category_id"`
	UnitID       int64           `json:"unit_id"`
	OwnerUserID  int64           `json:"owner_user_id"`
	SerialNumber *string         `json:"serial_number,omitempty"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Description  *string         `json:"description,omitempty"`
	ImageURL     *string         `json:"image_url,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id (campos opcionales).
type UpdateItemRequest struct {
	ItemCode     *string          `json:"item_code,omitempty"`
	Name         *string          `json:"name,omitempty"`
	CategoryID   *int64           `json:"category_id,omitempty"`
	UnitID       *int64           `json:"unit_id,omitempty"`
	SerialNumber *string          `json:"serial_number,omitempty"`
	MinStock     *decimal.Decimal `json:"min_stock,omitempty"`
	Description  *string          `json:"description,omitempty"`
	ImageURL     *string          `json:"image_url,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

// ItemResponse representación de un item.
type ItemResponse struct {
	ID           int64           `json:"id"`
	ItemCode     string          `json:"item_code"`
	Name         string          `json:"name"`
	CategoryID   int64           `json:"category_id"`
	UnitID       int64           `json:"unit_id"`
	OwnerUserID  int64           `json:"owner_user_id"`
	SerialNumber *string         `json:"serial_number,omitempty"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Description  *string         `json:"description,omitempty"`
	ImageURL     *string         `json:"image_url,omitempty"`
	Active       bool            `json:"active"`
}

// ItemListResponse listado paginado de items.
type ItemListResponse struct {
	Items    []ItemResponse `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ToItemResponse mapea la entidad al DTO de respuesta.
func ToItemResponse(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		ItemCode:     i.ItemCode,
		Name:         i.Name,
		CategoryID:   i.CategoryID,
		UnitID:       i.UnitID,
		OwnerUserID:  i.OwnerUserID,
		SerialNumber: i.SerialNumber,
		MinStock:     i.MinStock,
		Description:  i.Description,
		ImageURL:     i.ImageURL,
		Active:       i.Active,
	}
}
