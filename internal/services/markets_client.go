package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/derex0721/cryptorex/internal/config"
	"github.com/derex0721/cryptorex/internal/models"
)

// MarketsClient talks to the CoinGecko markets and trending endpoints. It
// never returns an error: the quote fetch degrades to the bundled dataset
// and the trending fetch degrades to an empty list.
type MarketsClient struct {
	hc          *http.Client
	cache       Cache
	baseURL     string
	ttlMarket   time.Duration
	ttlTrending time.Duration
}

func NewMarketsClient(cfg config.Config, cache Cache) *MarketsClient {
	return &MarketsClient{
		hc: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		cache:       cache,
		baseURL:     cfg.CoinGeckoBaseURL,
		ttlMarket:   cfg.CacheTTLMarket,
		ttlTrending: cfg.CacheTTLTrending,
	}
}

// FetchQuotes returns the top 50 assets by market cap, normalized. Any
// failure path, including a success response with zero records, yields the
// identical bundled fallback list; the fallback is never written to the
// cache.
func (c *MarketsClient) FetchQuotes(ctx context.Context) []models.AssetQuote {
	key := "markets:v1"
	if c.cache != nil {
		if b, ok := c.cache.Get(ctx, key); ok {
			var cached []models.AssetQuote
			if err := UnmarshalCache(b, &cached); err == nil && len(cached) > 0 {
				return cached
			}
		}
	}

	url := fmt.Sprintf("%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=50&page=1&sparkline=true&price_change_percentage=24h", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FallbackQuotes()
	}
	res, err := c.hc.Do(req)
	if err != nil {
		logrus.WithError(err).Error("market source unreachable, serving bundled dataset")
		return FallbackQuotes()
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusTooManyRequests {
		logrus.Warn("market source rate limited, serving bundled dataset")
		return FallbackQuotes()
	}
	if res.StatusCode >= 300 {
		logrus.WithField("status", res.Status).Error("market source error, serving bundled dataset")
		return FallbackQuotes()
	}

	var raw []rawMarketCoin
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		logrus.WithError(err).Error("market source payload malformed, serving bundled dataset")
		return FallbackQuotes()
	}

	out := make([]models.AssetQuote, 0, len(raw))
	for _, r := range raw {
		out = append(out, normalizeQuote(r))
	}
	if len(out) == 0 {
		logrus.Warn("market source returned no records, serving bundled dataset")
		return FallbackQuotes()
	}
	if c.cache != nil {
		if b, err := MarshalCache(out); err == nil {
			_ = c.cache.Set(ctx, key, b, c.ttlMarket)
		}
	}
	return out
}

// FetchTrending returns the trending-search list; there is no meaningful
// offline substitute, so failure yields an empty list.
func (c *MarketsClient) FetchTrending(ctx context.Context) []models.TrendingItem {
	key := "trending:v1"
	if c.cache != nil {
		if b, ok := c.cache.Get(ctx, key); ok {
			var cached []models.TrendingItem
			if err := UnmarshalCache(b, &cached); err == nil {
				return cached
			}
		}
	}

	url := c.baseURL + "/search/trending"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return []models.TrendingItem{}
	}
	res, err := c.hc.Do(req)
	if err != nil {
		logrus.WithError(err).Error("trending source unreachable")
		return []models.TrendingItem{}
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		logrus.WithField("status", res.Status).Error("trending source error")
		return []models.TrendingItem{}
	}

	var raw struct {
		Coins []struct {
			Item rawTrendingItem `json:"item"`
		} `json:"coins"`
	}
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		logrus.WithError(err).Error("trending source payload malformed")
		return []models.TrendingItem{}
	}

	out := make([]models.TrendingItem, 0, len(raw.Coins))
	for _, rc := range raw.Coins {
		out = append(out, normalizeTrending(rc.Item))
	}
	if c.cache != nil {
		if b, err := MarshalCache(out); err == nil {
			_ = c.cache.Set(ctx, key, b, c.ttlTrending)
		}
	}
	return out
}
