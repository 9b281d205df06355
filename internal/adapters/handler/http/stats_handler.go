package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glowtrack/routine-engine/internal/core/domain"
	"github.com/glowtrack/routine-engine/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetUserStats)
}

// GetUserStats serves the three derived metrics for one subscriber.
// Success responses carry the bare stats payload, no envelope.
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest,
			"Invalid request parameters", "userId is required")
		return
	}
	if _, err := uuid.Parse(userID); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest,
			"Invalid request parameters", "userId must be a valid UUID")
		return
	}

	stats, err := h.svc.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			respondError(c, http.StatusNotFound, CodeNotFound, "User not found")
			return
		}
		// ErrStatsFailed and anything unexpected collapse to the same
		// pre-sanitized message; internals were already logged upstream.
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to fetch user stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
