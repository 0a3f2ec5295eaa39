package sync

import (
	"errors"

	"model-sync/core/cache"
	"model-sync/core/logger"
	"model-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync sessions.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/:stream", h.HandleGetSummary)
	group.Get("/:stream/commands", h.HandleGetCommands)
	group.Get("/:stream/expired", h.HandleGetExpired)
	group.Get("/:stream/history", h.HandleGetHistory)
	group.Post("/:stream/pass", h.HandleRunPass)
}

// NamespaceSummary counts the records of one keyword and reports its allocation.
type NamespaceSummary struct {
	Namespace string `json:"namespace"`
	Indices   int    `json:"indices"`
	Keys      int    `json:"keys"`
	Reserved  []int  `json:"reserved"`
	Highest   int    `json:"highest"`
}

// SessionSummary describes the state of a live session.
type SessionSummary struct {
	Stream     string             `json:"stream"`
	Records    int                `json:"records"`
	Live       int                `json:"live"`
	Expired    int                `json:"expired"`
	Namespaces []NamespaceSummary `json:"namespaces"`
}

// PassRequest is the body of a sync pass request.
type PassRequest struct {
	// Lines are desired objects as record lines, see ParseDesired.
	Lines []string `json:"lines"`
	// Objects are desired objects in structured form.
	Objects []Desired `json:"objects"`
	DryRun  bool      `json:"dry_run"`
	Full    bool      `json:"full"`
	Confirm bool      `json:"confirm"`
	Export  bool      `json:"export"`
}

// HandleGetSummary returns counts for a live session.
// @Summary Get Session Summary
// @Description Get record counts of the live sync session of a stream.
// @Tags sync
// @Produce json
// @Param stream path string true "Stream ID"
// @Success 200 {object} SessionSummary "Session summary"
// @Failure 404 {object} map[string]string "Unknown session"
// @Router /sync/{stream} [get]
func (h *Handler) HandleGetSummary(c *fiber.Ctx) error {
	sess, err := h.service.Session(c.Params("stream"))
	if err != nil {
		return h.fail(c, err)
	}

	summary := SessionSummary{Stream: sess.Group()}
	sess.Read(func(col *cache.Collection) {
		summary.Records = col.Len()
		summary.Live = len(col.LiveData())
		summary.Expired = len(col.ExpiredData())
		for _, ns := range col.Namespaces() {
			summary.Namespaces = append(summary.Namespaces, NamespaceSummary{
				Namespace: ns,
				Indices:   len(col.Indices(ns)),
				Keys:      col.KeyCount(ns),
			})
		}
	})
	for i := range summary.Namespaces {
		ns := &summary.Namespaces[i]
		ns.Reserved, ns.Highest = sess.Allocation(ns.Namespace)
	}
	return c.JSON(summary)
}

// HandleGetCommands returns the commands re-issuing every current record.
// @Summary Get Set Commands
// @Description Get the SET and SET_AT commands of every current record of a stream.
// @Tags sync
// @Produce json
// @Param stream path string true "Stream ID"
// @Success 200 {array} string "Commands"
// @Failure 404 {object} map[string]string "Unknown session"
// @Router /sync/{stream}/commands [get]
func (h *Handler) HandleGetCommands(c *fiber.Ctx) error {
	sess, err := h.service.Session(c.Params("stream"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess.SetCommands())
}

// HandleGetExpired returns the records awaiting removal.
// @Summary Get Expired Records
// @Description Get the records of a stream that the next pass will blank.
// @Tags sync
// @Produce json
// @Param stream path string true "Stream ID"
// @Success 200 {array} cache.Data "Expired records"
// @Failure 404 {object} map[string]string "Unknown session"
// @Router /sync/{stream}/expired [get]
func (h *Handler) HandleGetExpired(c *fiber.Ctx) error {
	sess, err := h.service.Session(c.Params("stream"))
	if err != nil {
		return h.fail(c, err)
	}
	expired := sess.ExpiredData()
	if expired == nil {
		expired = []cache.Data{}
	}
	return c.JSON(expired)
}

// HandleGetHistory returns recent passes of a stream.
// @Summary Get Pass History
// @Description Get the most recent sync passes of a stream.
// @Tags sync
// @Produce json
// @Param stream path string true "Stream ID"
// @Param limit query int false "Maximum number of passes"
// @Success 200 {array} PassRecord "Passes"
// @Failure 503 {object} map[string]string "History disabled"
// @Router /sync/{stream}/history [get]
func (h *Handler) HandleGetHistory(c *fiber.Ctx) error {
	history := h.service.History()
	if history == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "pass history is disabled",
		})
	}

	passes, err := history.List(c.Context(), c.Params("stream"), c.QueryInt("limit", 20))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(passes)
}

// HandleRunPass runs a sync pass for a stream.
// @Summary Run Sync Pass
// @Description Place the desired objects and plan the commands bringing the model up to date.
// @Tags sync
// @Accept json
// @Produce json
// @Param stream path string true "Stream ID"
// @Param request body PassRequest true "Desired objects"
// @Success 200 {object} PassResult "Pass result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/{stream}/pass [post]
func (h *Handler) HandleRunPass(c *fiber.Ctx) error {
	stream := c.Params("stream")
	l := logger.WithStream(logger.WithRayID(h.logger, c), stream)

	var req PassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	desired, err := ParseDesired(h.service.registry.Format(), req.Lines)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	desired = append(desired, req.Objects...)

	opts := PassOptions{
		Options: reconcile.Options{
			DryRun:    req.DryRun,
			DoBlank:   true,
			DoSet:     true,
			Full:      req.Full,
			Confirmed: req.Confirm,
		},
		Export: req.Export,
	}

	res, err := h.service.RunPass(c.Context(), stream, h.service.ModelSource(stream), desired, opts)
	if err != nil {
		l.Error("Sync pass failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownSession):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrEmptyStream):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
