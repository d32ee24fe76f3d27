package services

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/derex0721/cryptorex/internal/config"
	"github.com/derex0721/cryptorex/internal/models"
)

const maxFundingRounds = 60

// FundingClient talks to the DeFiLlama raises feed. Failure yields an empty
// list.
type FundingClient struct {
	hc      *http.Client
	cache   Cache
	baseURL string
	ttl     time.Duration
}

func NewFundingClient(cfg config.Config, cache Cache) *FundingClient {
	return &FundingClient{
		hc: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		cache:   cache,
		baseURL: cfg.LlamaBaseURL,
		ttl:     cfg.CacheTTLFunding,
	}
}

// FetchRaises returns the newest rounds first, capped at 60, normalized.
func (c *FundingClient) FetchRaises(ctx context.Context) []models.FundingRound {
	key := "funding:v1"
	if c.cache != nil {
		if b, ok := c.cache.Get(ctx, key); ok {
			var cached []models.FundingRound
			if err := UnmarshalCache(b, &cached); err == nil {
				return cached
			}
		}
	}

	url := c.baseURL + "/raises"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return []models.FundingRound{}
	}
	res, err := c.hc.Do(req)
	if err != nil {
		logrus.WithError(err).Error("funding source unreachable")
		return []models.FundingRound{}
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		logrus.WithField("status", res.Status).Error("funding source error")
		return []models.FundingRound{}
	}

	var raw struct {
		Raises []rawRaise `json:"raises"`
	}
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		logrus.WithError(err).Error("funding source payload malformed")
		return []models.FundingRound{}
	}

	out := sortAndNormalizeRaises(raw.Raises)
	if c.cache != nil {
		if b, err := MarshalCache(out); err == nil {
			_ = c.cache.Set(ctx, key, b, c.ttl)
		}
	}
	return out
}

// sortAndNormalizeRaises orders by raw epoch date descending before the cap,
// so the 60 kept rounds are always the newest regardless of feed order.
func sortAndNormalizeRaises(raises []rawRaise) []models.FundingRound {
	sorted := make([]rawRaise, len(raises))
	copy(sorted, raises)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	if len(sorted) > maxFundingRounds {
		sorted = sorted[:maxFundingRounds]
	}
	out := make([]models.FundingRound, 0, len(sorted))
	for i, r := range sorted {
		out = append(out, normalizeRaise(r, i))
	}
	return out
}
