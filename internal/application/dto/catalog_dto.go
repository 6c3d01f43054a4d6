package dto

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// CategoryRequest body para crear/actualizar categorías.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse representación de una categoría.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryListResponse listado paginado de categorías.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}

// UnitRequest body para crear/actualizar unidades.
type UnitRequest struct {
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Multiplier int    `json:"multiplier"`
}

// UnitResponse representación de una unidad de medida.
type UnitResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Multiplier int    `json:"multiplier"`
}

// UnitListResponse listado paginado de unidades.
type UnitListResponse struct {
	Units    []UnitResponse `json:"units"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// UpdateLocationRequest body para PUT /api/locations/:id.
type UpdateLocationRequest struct {
	Name   *string `json:"name,omitempty"`
	Code   *string `json:"code,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// LocationResponse representación de una ubicación.
type LocationResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Active bool   `json:"active"`
}

// LocationListResponse listado paginado de ubicaciones.
type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

// ToCategoryResponse mapea la entidad al DTO.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

// ToUnitResponse mapea la entidad al DTO.
func ToUnitResponse(u *entity.Unit) UnitResponse {
	return UnitResponse{ID: u.ID, Name: u.Name, Symbol: u.Symbol, Multiplier: u.Multiplier}
}

// ToLocationResponse mapea la entidad al DTO.
func ToLocationResponse(l *entity.Location) LocationResponse {
	return LocationResponse{ID: l.ID, Name: l.Name, Code: l.Code, Active: l.Active}
}
