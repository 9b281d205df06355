package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowtrack/routine-engine/internal/core/domain"
	"github.com/glowtrack/routine-engine/internal/core/services"
)

type CompletionHandler struct {
	svc *services.CompletionService
}

func NewCompletionHandler(svc *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{svc: svc}
}

type scheduleStepRequest struct {
	UserID        string `json:"userId" binding:"required,uuid"`
	RoutineStepID string `json:"routineStepId" binding:"required"`
	ScheduledDate string `json:"scheduledDate" binding:"required"`
	TimeOfDay     string `json:"timeOfDay" binding:"required,oneof=morning evening"`
}

type completeStepRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

// RegisterConsumerRoutes mounts the consumer-app write path.
func (h *CompletionHandler) RegisterConsumerRoutes(router *gin.RouterGroup) {
	completions := router.Group("/completions")
	{
		completions.POST("", h.Schedule)
		completions.POST("/:id/complete", h.Complete)
	}
}

// RegisterAdminRoutes mounts the coach-facing reads.
func (h *CompletionHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/profiles/:id/completions", h.ListByProfile)
}

func (h *CompletionHandler) Schedule(c *gin.Context) {
	var req scheduleStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest,
			"Invalid request parameters", err.Error())
		return
	}

	record, err := h.svc.ScheduleStep(c.Request.Context(), services.ScheduleStepInput{
		AuthUserID:    req.UserID,
		RoutineStepID: req.RoutineStepID,
		ScheduledDate: req.ScheduledDate,
		TimeOfDay:     req.TimeOfDay,
	})
	if err != nil {
		handleCompletionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *CompletionHandler) Complete(c *gin.Context) {
	var req completeStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest,
			"Invalid request parameters", err.Error())
		return
	}

	record, err := h.svc.CompleteStep(c.Request.Context(), services.CompleteStepInput{
		AuthUserID: req.UserID,
		RecordID:   c.Param("id"),
	})
	if err != nil {
		handleCompletionError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *CompletionHandler) ListByProfile(c *gin.Context) {
	profileID := c.Param("id")

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest,
			"Invalid request parameters", "from and to are required (YYYY-MM-DD)")
		return
	}

	records, err := h.svc.ListByProfile(c.Request.Context(), profileID, from, to)
	if err != nil {
		handleCompletionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

func handleCompletionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		respondError(c, http.StatusNotFound, CodeNotFound, "User not found")

	case errors.Is(err, domain.ErrCompletionNotFound):
		respondError(c, http.StatusNotFound, CodeNotFound, "Completion record not found")

	case errors.Is(err, domain.ErrInvalidCompletion):
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request parameters", err.Error())

	case errors.Is(err, domain.ErrCompletionConflict):
		respondError(c, http.StatusConflict, CodeConflict, "Step already scheduled for that slot")

	case errors.Is(err, domain.ErrCompletionResolved):
		respondError(c, http.StatusConflict, CodeConflict, "Completion record already resolved")

	case errors.Is(err, domain.ErrCompletionWindowClosed):
		respondError(c, http.StatusConflict, CodeConflict, "Completion window has closed")

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Internal server error")
	}
}
