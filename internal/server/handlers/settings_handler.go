package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/repository/mongodb"
	settingssvc "github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/service/settings"
)

// SettingsHandler exposes the versioned admin settings over HTTP.
type SettingsHandler struct {
	svc    *settingssvc.Service
	logger *zap.Logger
}

// NewSettingsHandler constructs the settings HTTP adapter.
func NewSettingsHandler(svc *settingssvc.Service, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{svc: svc, logger: logger}
}

// userID pulls the acting admin from the request header; the auth layer in
// front of this service is responsible for verifying it.
func userID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return "anonymous"
}

// Current returns the latest version of a category.
func (h *SettingsHandler) Current(c *gin.Context) {
	version, err := h.svc.Current(c.Request.Context(), c.Param("category"))
	if errors.Is(err, mongodb.ErrNoVersions) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no settings for category"})
		return
	}
	if err != nil {
		h.logger.Error("failed loading settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, version)
}

// History lists every version of a category.
func (h *SettingsHandler) History(c *gin.Context) {
	versions, err := h.svc.History(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.logger.Error("failed loading settings history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

// Update appends the submitted payload as the next version.
func (h *SettingsHandler) Update(c *gin.Context) {
	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	version, err := h.svc.Update(c.Request.Context(), c.Param("category"), payload, userID(c))
	if errors.Is(err, settingssvc.ErrInvalidPayload) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed updating settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}
	c.JSON(http.StatusCreated, version)
}

type rollbackRequest struct {
	Version int `json:"version" binding:"required"`
}

// Rollback re-applies an old version's payload as a new version.
func (h *SettingsHandler) Rollback(c *gin.Context) {
	var req rollbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	version, err := h.svc.Rollback(c.Request.Context(), c.Param("category"), req.Version, userID(c))
	if errors.Is(err, mongodb.ErrNoVersions) {
		c.JSON(http.StatusNotFound, gin.H{"error": "version not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed rolling back settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to roll back settings"})
		return
	}
	c.JSON(http.StatusCreated, version)
}
