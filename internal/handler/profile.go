package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inmobot/internal/metrics"
	"inmobot/internal/model"
	"inmobot/internal/repository"
)

// ProfileHandler stores search profiles
type ProfileHandler struct {
	store  repository.ProfileStore
	logger *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(store repository.ProfileStore, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		store:  store,
		logger: logger,
	}
}

// Upsert handles POST /profile/upsert. Every call creates a new profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req model.ProfileUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.ProfileText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgProfileFieldsMissing})
		return
	}

	id, err := h.store.Put(c.Request.Context(), repository.ProfileInput{
		UserID:      req.UserID,
		ProfileText: req.ProfileText,
		Filtros:     req.Filtros,
	})
	if err != nil {
		h.logger.Error("failed to store profile", zap.String("user_id", req.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.ProfilesCreated.WithLabelValues(h.store.Name()).Inc()
	h.logger.Info("profile created",
		zap.String("profile_id", id),
		zap.String("user_id", req.UserID),
		zap.Any("filtros", req.Filtros),
	)

	c.JSON(http.StatusOK, model.ProfileUpsertResponse{ProfileID: id})
}
