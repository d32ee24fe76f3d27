package handlers

import (
	"net/http"
	"os"

	"github.com/derex0721/cryptorex/internal/models"
)

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Ok:      true,
		TsISO:   nowISO(),
		Service: "cryptorex-api",
		Version: os.Getenv("SERVICE_VERSION"),
		Env: map[string]bool{
			"GEMINI_API_KEY": a.cfg.GeminiAPIKey != "",
			"REDIS_URL":      os.Getenv("REDIS_URL") != "",
		},
	}
	writeJSON(w, http.StatusOK, resp)
}
