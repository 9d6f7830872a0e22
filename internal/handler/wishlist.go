package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inmobot/internal/model"
)

// WishlistHandler accepts wishlist calls. Nothing is persisted yet; the
// endpoints exist so clients can already call them.
type WishlistHandler struct {
	logger *zap.Logger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{logger: logger}
}

// Add handles POST /wishlist/add
func (h *WishlistHandler) Add(c *gin.Context) {
	var req model.WishlistAddRequest
	_ = c.ShouldBindJSON(&req)

	h.logger.Debug("wishlist add", zap.String("user_id", req.UserID), zap.String("url", req.PropertyURL))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// List handles GET /wishlist/:user_id
func (h *WishlistHandler) List(c *gin.Context) {
	h.logger.Debug("wishlist list", zap.String("user_id", c.Param("user_id")))
	c.JSON(http.StatusOK, gin.H{"wishlist": []model.Suggestion{}})
}
