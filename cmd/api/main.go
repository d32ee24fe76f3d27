package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/derex0721/cryptorex/internal/config"
	internalhttp "github.com/derex0721/cryptorex/internal/http"
	"github.com/derex0721/cryptorex/internal/locale"
	"github.com/derex0721/cryptorex/internal/services"
)

func main() {
	_ = godotenv.Load(".env", ".env.local")
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	cache := services.NewCache(cfg)
	markets := services.NewMarketsClient(cfg, cache)
	funding := services.NewFundingClient(cfg, cache)
	intel := services.NewIntelFeed(nil)
	agg := services.NewAggregator(markets, funding, intel)

	gemini := services.NewGeminiClient(cfg)
	conv := services.NewConversation(gemini, services.NewAnalysisExtractor(gemini))

	// Warm the first snapshot and seed the conversation with the
	// top-ranked asset.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	bundle := agg.Refresh(ctx)
	cancel()
	if len(bundle.Quotes) > 0 {
		conv.SetContext(bundle.Quotes[0], locale.Resolve(cfg.DefaultLanguage))
	}

	h := internalhttp.NewRouter(cfg, agg, conv)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logrus.Infof("cryptorex backend listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logrus.Fatal(err)
	}
}
