package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cryptovlab/coursework-api/internal/service"
	"github.com/cryptovlab/coursework-api/internal/utils"
)

// StatsHandler wires the statistics and activity feed routes.
type StatsHandler struct {
	stats    service.StatsService
	activity service.ActivityService
	logger   zerolog.Logger
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(stats service.StatsService, activity service.ActivityService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		stats:    stats,
		activity: activity,
		logger:   logger.With().Str("component", "stats_handler").Logger(),
	}
}

// Register attaches statistics endpoints to the router group.
func (h *StatsHandler) Register(router fiber.Router) {
	router.Get("", h.overview)
	router.Get("/recent-submissions", h.recentSubmissions)
	router.Get("/activity", h.recentActivity)
}

func (h *StatsHandler) overview(c *fiber.Ctx) error {
	stats, err := h.stats.Overview(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "statistics retrieved", stats)
}

func (h *StatsHandler) recentSubmissions(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", 5)

	submissions, err := h.stats.RecentSubmissions(c.Context(), limit)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "recent submissions retrieved", submissions)
}

func (h *StatsHandler) recentActivity(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", 20)

	events, err := h.activity.Recent(c.Context(), limit)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "recent activity retrieved", events)
}

func (h *StatsHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Str("path", c.Path()).Msg("stats request failed")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
