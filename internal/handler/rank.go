package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inmobot/internal/model"
	"inmobot/internal/repository"
	"inmobot/internal/service"
)

// Ranker produces suggestions for a stored profile
type Ranker interface {
	Rank(ctx context.Context, req service.RankRequest) (*model.RankResponse, error)
}

// RankHandler handles suggestion requests
type RankHandler struct {
	ranker Ranker
	logger *zap.Logger
}

// NewRankHandler creates a new rank handler
func NewRankHandler(ranker Ranker, logger *zap.Logger) *RankHandler {
	return &RankHandler{
		ranker: ranker,
		logger: logger,
	}
}

// Rank handles POST /rank
func (h *RankHandler) Rank(c *gin.Context) {
	var req model.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProfileID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgProfileIDRequired})
		return
	}

	resp, err := h.ranker.Rank(c.Request.Context(), service.RankRequest{
		ProfileID:  req.ProfileID,
		CurrentURL: req.CurrentURL,
		Limit:      req.Limit,
	})
	if errors.Is(err, repository.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": MsgProfileNotFound})
		return
	}
	if err != nil {
		h.logger.Error("rank failed", zap.String("profile_id", req.ProfileID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if resp.Degraded {
		h.logger.Warn("serving fallback listings",
			zap.String("profile_id", req.ProfileID),
			zap.String("reason", resp.DegradedReason),
		)
	}

	c.JSON(http.StatusOK, resp)
}
