package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthInfo is what /health and /version report
type HealthInfo struct {
	ChatModel      string
	SearchModel    string
	SearchProvider string
	ProfileStore   string
	Version        string
	BuildTime      string
	GitCommit      string
}

// HealthHandler reports service status
type HealthHandler struct {
	info HealthInfo
}

// NewHealthHandler creates a new health handler. Model names must already
// be alias-resolved.
func NewHealthHandler(info HealthInfo) *HealthHandler {
	return &HealthHandler{info: info}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"chat":            fmt.Sprintf("ChatGPT (%s)", h.info.ChatModel),
		"search":          fmt.Sprintf("ChatGPT mini (%s)", h.info.SearchModel),
		"search_provider": h.info.SearchProvider,
		"profile_store":   h.info.ProfileStore,
		"version":         h.info.Version,
	})
}

// Version handles GET /version
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.info.Version,
		"build_time": h.info.BuildTime,
		"git_commit": h.info.GitCommit,
	})
}
