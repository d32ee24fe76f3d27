package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/derex0721/cryptorex/internal/config"
	"github.com/derex0721/cryptorex/internal/services"
)

type API struct {
	cfg  config.Config
	agg  *services.Aggregator
	conv *services.Conversation
}

func New(cfg config.Config, agg *services.Aggregator, conv *services.Conversation) *API {
	return &API{cfg: cfg, agg: agg, conv: conv}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIntParam(v string, def int, min int, max int) int {
	if v == "" {
		return def
	}
	var out int
	_, err := fmt.Sscanf(v, "%d", &out)
	if err != nil {
		return def
	}
	if out < min {
		return min
	}
	if out > max {
		return max
	}
	return out
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
