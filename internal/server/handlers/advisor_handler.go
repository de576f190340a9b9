package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/service/advisor"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/store"
)

// AdvisorHandler adapts the advisor service and state store to HTTP.
type AdvisorHandler struct {
	svc    *advisor.Service
	store  *store.Store
	logger *zap.Logger
}

// NewAdvisorHandler constructs the HTTP handler adapter.
func NewAdvisorHandler(svc *advisor.Service, st *store.Store, logger *zap.Logger) *AdvisorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisorHandler{svc: svc, store: st, logger: logger}
}

// Recommendations runs the generators and returns the ranked output.
func (h *AdvisorHandler) Recommendations(c *gin.Context) {
	recs := h.svc.Recommend(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// AcceptRecommendation turns a recommendation into a scheduled task.
func (h *AdvisorHandler) AcceptRecommendation(c *gin.Context) {
	task, err := h.svc.AcceptRecommendation(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed accepting recommendation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept recommendation"})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// DismissRecommendation marks a recommendation dismissed.
func (h *AdvisorHandler) DismissRecommendation(c *gin.Context) {
	if err := h.store.SetRecommendationStatus(c.Param("id"), models.RecommendationDismissed); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeferRecommendation parks a recommendation for later; unlike dismissal the
// state is not terminal, so a later accept still works.
func (h *AdvisorHandler) DeferRecommendation(c *gin.Context) {
	if err := h.store.SetRecommendationStatus(c.Param("id"), models.RecommendationDeferred); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Alerts lists the alert log; ?unresolved=true filters out resolved entries.
func (h *AdvisorHandler) Alerts(c *gin.Context) {
	unresolvedOnly := c.Query("unresolved") == "true"
	c.JSON(http.StatusOK, gin.H{"alerts": h.store.Alerts(unresolvedOnly)})
}

// AcknowledgeAlert flags an alert as seen.
func (h *AdvisorHandler) AcknowledgeAlert(c *gin.Context) {
	if err := h.store.AcknowledgeAlert(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ResolveAlert flags an alert as handled.
func (h *AdvisorHandler) ResolveAlert(c *gin.Context) {
	if err := h.store.ResolveAlert(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Tasks lists the automation tasks.
func (h *AdvisorHandler) Tasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": h.store.Tasks()})
}

// CompleteTask finishes a task and credits its reward.
func (h *AdvisorHandler) CompleteTask(c *gin.Context) {
	if err := h.svc.CompleteTask(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DismissTask drops a task without reward.
func (h *AdvisorHandler) DismissTask(c *gin.Context) {
	if err := h.store.SetTaskStatus(c.Param("id"), models.TaskDismissed); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// BreedingRecords lists all pairings.
func (h *AdvisorHandler) BreedingRecords(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"records": h.store.BreedingRecords()})
}

// BestMatch suggests the strongest partner for an animal.
func (h *AdvisorHandler) BestMatch(c *gin.Context) {
	match, err := h.svc.BestMatch(c.Param("animalId"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "animal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, match)
}

type scheduleBreedingRequest struct {
	SireID string `json:"sire_id" binding:"required"`
	DamID  string `json:"dam_id" binding:"required"`
}

// ScheduleBreeding pairs two animals.
func (h *AdvisorHandler) ScheduleBreeding(c *gin.Context) {
	var req scheduleBreedingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	record, err := h.svc.ScheduleBreeding(req.SireID, req.DamID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "animal not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed scheduling breeding", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to schedule breeding"})
		return
	}
	c.JSON(http.StatusCreated, record)
}

// CompleteBreeding marks a pairing done and starts gestation.
func (h *AdvisorHandler) CompleteBreeding(c *gin.Context) {
	record, err := h.svc.CompleteBreeding(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "breeding record not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}

// CoachTick advances time-based state and returns the fired hint, if any.
func (h *AdvisorHandler) CoachTick(c *gin.Context) {
	advice := h.svc.Tick(c.Request.Context())
	if advice == nil {
		c.Status(http.StatusNoContent)
		return
	}
	h.svc.ShowHint(*advice)
	c.JSON(http.StatusOK, advice)
}

// DismissHint cancels a hint's pending auto-dismiss.
func (h *AdvisorHandler) DismissHint(c *gin.Context) {
	h.svc.DismissHint(c.Param("key"))
	c.Status(http.StatusNoContent)
}

type visitRequest struct {
	Area string `json:"area" binding:"required"`
}

// MarkVisited records that the player opened a game area.
func (h *AdvisorHandler) MarkVisited(c *gin.Context) {
	var req visitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.svc.MarkVisited(req.Area)
	c.Status(http.StatusNoContent)
}

// ResetSession re-arms the one-shot coaching triggers.
func (h *AdvisorHandler) ResetSession(c *gin.Context) {
	h.svc.ResetSession()
	c.Status(http.StatusNoContent)
}
