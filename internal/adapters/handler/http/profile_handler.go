package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowtrack/routine-engine/internal/core/domain"
	"github.com/glowtrack/routine-engine/internal/core/services"
)

type ProfileHandler struct {
	svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type createProfileRequest struct {
	AuthUserID  string `json:"authUserId" binding:"required,uuid"`
	DisplayName string `json:"displayName"`
	Timezone    string `json:"timezone"`
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName"`
	Timezone    string `json:"timezone"`
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profiles := router.Group("/profiles")
	{
		profiles.POST("", h.Create)
		profiles.GET("/:id", h.Get)
		profiles.PUT("/:id", h.Update)
	}
}

func (h *ProfileHandler) Create(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request parameters", err.Error())
		return
	}

	profile, err := h.svc.Create(c.Request.Context(), services.CreateProfileInput{
		AuthUserID:  req.AuthUserID,
		DisplayName: req.DisplayName,
		Timezone:    req.Timezone,
	})
	if err != nil {
		handleProfileError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request parameters", err.Error())
		return
	}

	profile, err := h.svc.Update(c.Request.Context(), services.UpdateProfileInput{
		ID:          c.Param("id"),
		DisplayName: req.DisplayName,
		Timezone:    req.Timezone,
	})
	if err != nil {
		handleProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func handleProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		respondError(c, http.StatusNotFound, CodeNotFound, "User not found")

	case errors.Is(err, domain.ErrProfileAlreadyExists):
		respondError(c, http.StatusConflict, CodeConflict, "Profile already exists for that auth user")

	case errors.Is(err, domain.ErrInvalidTimezone):
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request parameters", "timezone must be a valid IANA name")

	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Internal server error")
	}
}
