package integrity

import (
	"errors"

	"model-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errStorageDisabled = errors.New("object storage is not configured")

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/history", h.HandleHistoryCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Checks the script bucket and the pass history schema.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if storageReport, err := h.service.CheckStorage(c.Context(), false); err != nil {
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = storageReport
	}

	if historyReport, err := h.service.CheckHistory(); err != nil {
		report["history"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["history"] = historyReport
	}

	return c.JSON(report)
}

// HandleStorageCheck checks and optionally creates the script bucket.
// @Summary Check Storage
// @Description Checks that the script bucket exists and lists stream prefixes. Optionally creates the bucket.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create a missing bucket"
// @Success 200 {object} checks.StorageReport "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckStorage(c.Context(), c.QueryBool("fix"))
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleHistoryCheck checks the pass history schema.
// @Summary Check History Schema
// @Description Validates that the sync_passes table has every column of the pass model.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.HistoryReport "History Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/history [get]
func (h *Handler) HandleHistoryCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckHistory()
	if err != nil {
		l.Error("History check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
