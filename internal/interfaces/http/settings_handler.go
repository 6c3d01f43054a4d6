package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// SettingsHandler maneja las peticiones HTTP de configuración global.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get devuelve la configuración, inicializándola si aún no existe.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Get()
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Update aplica una actualización parcial de la configuración. El parámetro
// user_id registra quién hizo el cambio.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	userID := int64(c.QueryInt("user_id", 0))
	resp, err := h.uc.Update(in, userID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
