package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// IssueHandler maneja las peticiones HTTP de solicitudes de salida.
type IssueHandler struct {
	uc *usecase.IssueUseCase
}

// NewIssueHandler construye el handler.
func NewIssueHandler(uc *usecase.IssueUseCase) *IssueHandler {
	return &IssueHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de salida
// @Tags         issues
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.IssueResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/issues [post]
func (h *IssueHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID obtiene una solicitud por ID.
func (h *IssueHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.GetByID(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// GetByCode obtiene una solicitud por su código.
func (h *IssueHandler) GetByCode(c *fiber.Ctx) error {
	resp, err := h.uc.GetByCode(c.Params("code"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Update actualiza campos de una solicitud.
func (h *IssueHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	var in dto.UpdateIssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Update(id, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Delete elimina una solicitud y sus líneas.
func (h *IssueHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	if err := h.uc.Delete(id); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "solicitud eliminada"})
}

// Approve godoc
// @Summary      Aprobar solicitud en estado DRAFT
// @Tags         issues
// @Produce      json
// @Param        id       path   int  true  "ID de la solicitud"
// @Param        user_id  query  int  true  "Usuario que aprueba"
// @Success      200  {object}  dto.IssueResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/issues/{id}/approve [patch]
func (h *IssueHandler) Approve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	approverID := int64(c.QueryInt("user_id", 0))
	resp, err := h.uc.Approve(id, approverID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// ChangeStatus cambia el estado de una solicitud (query new_status).
func (h *IssueHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.ChangeStatus(id, c.Query("new_status"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// List lista solicitudes con búsqueda, filtro por estado y paginación.
func (h *IssueHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.List(pageFromQuery(c), c.Query("search"), c.Query("status"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// IssueItemHandler maneja las peticiones HTTP de líneas de solicitud.
type IssueItemHandler struct {
	uc *usecase.IssueItemUseCase
}

// NewIssueItemHandler construye el handler.
func NewIssueItemHandler(uc *usecase.IssueItemUseCase) *IssueItemHandler {
	return &IssueItemHandler{uc: uc}
}

// Create agrega una línea a una solicitud en DRAFT.
func (h *IssueItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIssueItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CreateBulk godoc
// @Summary      Agregar varias líneas a una solicitud en DRAFT
// @Tags         issues
// @Accept       json
// @Produce      json
// @Success      201  {array}   dto.IssueItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/issue-items/bulk [post]
func (h *IssueItemHandler) CreateBulk(c *fiber.Ctx) error {
	var in dto.BulkCreateIssueItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CreateBulk(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID obtiene una línea por ID.
func (h *IssueItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.GetByID(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// ListByIssue lista todas las líneas de una solicitud.
func (h *IssueItemHandler) ListByIssue(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.ListByIssue(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// List lista líneas con filtros por solicitud o artículo y paginación.
func (h *IssueItemHandler) List(c *fiber.Ctx) error {
	issueID, err := optionalInt64Query(c, "issue_id")
	if err != nil {
		return errorJSON(c, err)
	}
	itemID, err := optionalInt64Query(c, "item_id")
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.List(pageFromQuery(c), issueID, itemID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Update corrige la cantidad de una línea.
func (h *IssueItemHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	var in dto.UpdateIssueItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Update(id, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Delete elimina una línea.
func (h *IssueItemHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errorJSON(c, err)
	}
	if err := h.uc.Delete(id); err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}
