package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"inmobot/internal/handler"
	"inmobot/internal/logger"
	"inmobot/internal/repository"
)

// Deps are the collaborators the HTTP API is built from
type Deps struct {
	Chat           handler.Replier
	Store          repository.ProfileStore
	History        repository.SearchStore
	Ranker         handler.Ranker
	Health         handler.HealthInfo
	AllowedOrigins string
	Logger         *zap.Logger
}

// NewRouter wires middleware and routes
func NewRouter(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(logger.GinRecovery(log), logger.GinLogger(log))

	// CORS configuration; the browser extension calls from its own origin
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitOrigins(d.AllowedOrigins)
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	chatHandler := handler.NewChatHandler(d.Chat, log)
	profileHandler := handler.NewProfileHandler(d.Store, log)
	rankHandler := handler.NewRankHandler(d.Ranker, log)
	wishlistHandler := handler.NewWishlistHandler(log)
	healthHandler := handler.NewHealthHandler(d.Health)

	router.POST("/chat", chatHandler.Chat)
	router.POST("/profile/upsert", profileHandler.Upsert)
	router.POST("/rank", rankHandler.Rank)
	router.POST("/wishlist/add", wishlistHandler.Add)
	router.GET("/wishlist/:user_id", wishlistHandler.List)

	if d.History != nil {
		historyHandler := handler.NewHistoryHandler(d.History, log)
		router.POST("/searches", historyHandler.CreateSearch)
		router.GET("/searches/:id", historyHandler.GetSearch)
		router.GET("/searches/:id/listings", historyHandler.ListSearchListings)
		router.GET("/searches/:id/full", historyHandler.GetSearchFull)
		router.POST("/listings", historyHandler.CreateListing)
		router.GET("/listings/:id", historyHandler.GetListing)
	}

	router.GET("/health", healthHandler.Health)
	router.GET("/version", healthHandler.Version)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
