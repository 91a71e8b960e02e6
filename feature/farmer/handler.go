package farmer

import (
	"errors"

	"farmer-registry/core/logger"
	"farmer-registry/feature/farmer/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VerifyRequest carries the NRC to check against the stored ciphertext.
type VerifyRequest struct {
	NRC string `json:"nrc" validate:"required"`
}

// Handler handles HTTP requests for registry administration.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

// RegisterRoutes registers the farmer routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/farmers")
	group.Get("/:farmer_id", h.HandleGet)
	group.Post("/:farmer_id/nrc/verify", h.HandleVerifyNRC)
}

// HandleGet returns a registered farmer.
// @Summary Get Farmer
// @Description Returns a registered farmer by registry id. Encrypted fields are never returned.
// @Tags farmers
// @Produce json
// @Param farmer_id path string true "Farmer ID"
// @Success 200 {object} models.Farmer
// @Failure 404 {object} map[string]string "Farmer not found"
// @Router /api/farmers/{farmer_id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	f, err := h.service.Get(c.UserContext(), c.Params("farmer_id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Farmer not found"})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to read farmer", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(f)
}

// HandleVerifyNRC checks an NRC against the one on record.
// @Summary Verify Farmer NRC
// @Description Checks whether the supplied NRC matches the encrypted NRC stored for the farmer.
// @Tags farmers
// @Accept json
// @Produce json
// @Param farmer_id path string true "Farmer ID"
// @Param request body VerifyRequest true "Candidate NRC"
// @Success 200 {object} map[string]bool "Match result"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Farmer not found"
// @Failure 409 {object} map[string]string "No NRC on record"
// @Router /api/farmers/{farmer_id}/nrc/verify [post]
func (h *Handler) HandleVerifyNRC(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "nrc is required"})
	}

	farmerID := c.Params("farmer_id")
	match, err := h.service.VerifyNRC(c.UserContext(), farmerID, req.NRC)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Farmer not found"})
	case errors.Is(err, ErrNoNRC):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("NRC verification failed", zap.String("farmer_id", farmerID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("NRC verified", zap.String("farmer_id", farmerID), zap.Bool("match", match))
	return c.JSON(fiber.Map{"match": match})
}
