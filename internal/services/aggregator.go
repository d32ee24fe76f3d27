package services

import (
	"context"
	"sync"
	"time"

	"github.com/derex0721/cryptorex/internal/models"
)

// Aggregator fans out to the four sources and joins them into one atomic
// snapshot. Partial results are never published: either all four sources
// have resolved (success or per-source fallback) or no snapshot exists.
type Aggregator struct {
	markets *MarketsClient
	funding *FundingClient
	intel   *IntelFeed

	mu       sync.Mutex
	snapshot *models.MarketBundle
}

func NewAggregator(markets *MarketsClient, funding *FundingClient, intel *IntelFeed) *Aggregator {
	return &Aggregator{markets: markets, funding: funding, intel: intel}
}

// Refresh launches the four fetches concurrently and waits for all of them.
// Each source applies its own failure policy, so Refresh itself cannot fail.
func (a *Aggregator) Refresh(ctx context.Context) models.MarketBundle {
	var (
		quotes   []models.AssetQuote
		trending []models.TrendingItem
		funding  []models.FundingRound
		intel    models.IntelBundle
	)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		quotes = a.markets.FetchQuotes(ctx)
	}()
	go func() {
		defer wg.Done()
		trending = a.markets.FetchTrending(ctx)
	}()
	go func() {
		defer wg.Done()
		funding = a.funding.FetchRaises(ctx)
	}()
	go func() {
		defer wg.Done()
		intel = a.intel.Fetch()
	}()
	wg.Wait()

	bundle := models.MarketBundle{
		TsISO:    time.Now().UTC().Format(time.RFC3339),
		Quotes:   quotes,
		Trending: trending,
		Funding:  funding,
		Intel:    intel,
	}
	if len(quotes) > 0 {
		bundle.SelectedID = quotes[0].ID
	}

	a.mu.Lock()
	snap := bundle
	a.snapshot = &snap
	a.mu.Unlock()

	return bundle
}

// Snapshot returns the last published bundle, if any.
func (a *Aggregator) Snapshot() (models.MarketBundle, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.snapshot == nil {
		return models.MarketBundle{}, false
	}
	return *a.snapshot, true
}

// Quote looks an asset up in the current snapshot by id.
func (a *Aggregator) Quote(id string) (models.AssetQuote, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.snapshot == nil {
		return models.AssetQuote{}, false
	}
	for _, q := range a.snapshot.Quotes {
		if q.ID == id {
			return q, true
		}
	}
	return models.AssetQuote{}, false
}
