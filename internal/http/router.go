package http

import (
	"net/http"

	"github.com/derex0721/cryptorex/internal/config"
	"github.com/derex0721/cryptorex/internal/handlers"
	"github.com/derex0721/cryptorex/internal/services"
)

func NewRouter(cfg config.Config, agg *services.Aggregator, conv *services.Conversation) http.Handler {
	api := handlers.New(cfg, agg, conv)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", api.Health)
	mux.HandleFunc("/api/v1/market", api.Market)
	mux.HandleFunc("/api/v1/funding", api.Funding)
	mux.HandleFunc("/api/v1/intel", api.Intel)
	mux.HandleFunc("/api/v1/chat/history", api.ChatHistory)
	mux.HandleFunc("/api/v1/chat/context", api.ChatContext)
	mux.HandleFunc("/api/v1/chat/message", api.ChatMessage)
	mux.HandleFunc("/api/v1/chat/scan", api.ChatScan)

	h := http.Handler(mux)
	h = withRecovery(h)
	h = withLogging(h)
	h = withRateLimit(cfg.RateLimitPerMin)(h)
	h = withCORS(h)
	return h
}
