package server

import (
	"inmobot/internal/config"
	"inmobot/internal/handler"
)

// BuildInfo is stamped into the binary at link time
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// HealthInfoFor resolves the model aliases and describes the configured
// backends for /health
func HealthInfoFor(cfg *config.Config, storeName string, build BuildInfo) handler.HealthInfo {
	provider := "tavily"
	if cfg.Search.APIKey == "" {
		provider = "mock"
	}
	return handler.HealthInfo{
		ChatModel:      cfg.OpenAI.ResolveModel(cfg.OpenAI.ChatModel),
		SearchModel:    cfg.OpenAI.ResolveModel(cfg.OpenAI.SearchModel),
		SearchProvider: provider,
		ProfileStore:   storeName,
		Version:        build.Version,
		BuildTime:      build.BuildTime,
		GitCommit:      build.GitCommit,
	}
}
