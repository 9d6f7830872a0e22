package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"inmobot/internal/model"
	"inmobot/internal/repository"
)

// HistoryHandler exposes recorded searches and their listings
type HistoryHandler struct {
	store  repository.SearchStore
	logger *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(store repository.SearchStore, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		store:  store,
		logger: logger,
	}
}

// CreateSearch handles POST /searches
func (h *HistoryHandler) CreateSearch(c *gin.Context) {
	var req model.SearchCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgPromptRequired})
		return
	}

	rec, err := h.store.CreateSearch(c.Request.Context(), repository.SearchInput{
		Prompt:   req.Prompt,
		Metadata: req.Metadata,
	})
	if err != nil {
		h.logger.Error("failed to create search", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// GetSearch handles GET /searches/:id
func (h *HistoryHandler) GetSearch(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	rec, err := h.store.GetSearch(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListSearchListings handles GET /searches/:id/listings. An unknown search
// has an empty list.
func (h *HistoryHandler) ListSearchListings(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	listings, err := h.store.ListingsForSearch(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// GetSearchFull handles GET /searches/:id/full
func (h *HistoryHandler) GetSearchFull(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	rec, err := h.store.GetSearch(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	listings, err := h.store.ListingsForSearch(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SearchWithListings{Search: *rec, Listings: listings})
}

// CreateListing handles POST /listings. A listing for an unknown search is
// a client error.
func (h *HistoryHandler) CreateListing(c *gin.Context) {
	var req model.ListingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.SearchID) == "" || strings.TrimSpace(req.Link) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgListingFieldsMissing})
		return
	}
	if _, err := uuid.Parse(req.SearchID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidID})
		return
	}

	rec, err := h.store.CreateListing(c.Request.Context(), repository.ListingInput{
		SearchID: req.SearchID,
		Link:     req.Link,
		Metadata: req.Metadata,
	})
	if errors.Is(err, repository.ErrSearchNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgSearchNotFound})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// GetListing handles GET /listings/:id
func (h *HistoryHandler) GetListing(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	rec, err := h.store.GetListing(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *HistoryHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrSearchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": MsgSearchNotFound})
	case errors.Is(err, repository.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": MsgListingNotFound})
	default:
		h.logger.Error("history request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// recordID reads the :id path parameter, answering 400 when it is not a UUID
func recordID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidID})
		return "", false
	}
	return id, true
}
