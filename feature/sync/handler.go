package sync

import (
	"errors"
	"fmt"

	"farmer-registry/core/jobs"
	"farmer-registry/core/logger"
	"farmer-registry/core/middleware/auth"
	"farmer-registry/feature/farmer/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BatchRequest is the body of a sync submission.
type BatchRequest struct {
	Farmers  []models.IncomingRecord `json:"farmers" validate:"required,min=1"`
	LastSync *string                 `json:"last_sync,omitempty"`
}

// SubmitResponse acknowledges a queued batch.
type SubmitResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// Handler handles HTTP requests for batch sync.
type Handler struct {
	service  *Service
	validate *validator.Validate
	maxBatch int
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler. maxBatch <= 0 disables the size limit.
func NewHandler(service *Service, maxBatch int) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		maxBatch: maxBatch,
		logger:   service.logger,
	}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/sync")
	group.Post("/batch", h.HandleSubmit)
	group.Get("/status", h.HandleStatus)
}

// HandleSubmit queues a batch of offline registrations.
// @Summary Submit Sync Batch
// @Description Queues offline-captured farmer records for reconciliation and returns the job id immediately.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Batch"
// @Success 202 {object} SubmitResponse
// @Failure 400 {object} map[string]string "Invalid batch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Queue full"
// @Router /api/sync/batch [post]
func (h *Handler) HandleSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid batch", "details": err.Error()})
	}
	if h.maxBatch > 0 {
		if err := h.validate.Var(req.Farmers, fmt.Sprintf("max=%d", h.maxBatch)); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Batch exceeds %d records", h.maxBatch),
			})
		}
	}

	actor := auth.Actor(c)
	if actor == "" {
		actor = "anonymous"
	}

	id, err := h.service.Submit(c.UserContext(), req.Farmers, actor)
	switch {
	case errors.Is(err, jobs.ErrQueueFull), errors.Is(err, jobs.ErrQueueClosed):
		l.Warn("Sync batch rejected", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to queue sync batch", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusAccepted).JSON(SubmitResponse{JobID: id, Status: "queued"})
}

// HandleStatus reports a sync job.
// @Summary Sync Job Status
// @Description Returns the state of a sync job and, once done, the per-record outcomes in submission order.
// @Tags sync
// @Produce json
// @Param job_id query string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job"
// @Failure 400 {object} map[string]string "Missing job_id"
// @Failure 404 {object} map[string]string "Unknown job"
// @Router /api/sync/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	id := c.Query("job_id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "job_id is required"})
	}

	job, err := h.service.Status(c.UserContext(), id)
	if errors.Is(err, jobs.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to read sync job", zap.String("job_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(job)
}
