package services

import (
	"fmt"
	"testing"
)

func TestNormalizeQuote(t *testing.T) {
	raw := rawMarketCoin{
		ID:           "bitcoin",
		Symbol:       "btc",
		Name:         "Bitcoin",
		CurrentPrice: 97000,
		Change24h:    2.4,
		TotalVolume:  42_800_000_000,
		MarketCap:    1_920_000_000_000,
		Rank:         1,
	}
	for i := 0; i < 30; i++ {
		raw.Sparkline.Price = append(raw.Sparkline.Price, float64(90000+i))
	}

	q := normalizeQuote(raw)
	if q.Symbol != "BTC" {
		t.Fatalf("expected upper-cased symbol, got %q", q.Symbol)
	}
	if q.Volume != "42.80B" || q.MarketCap != "1.92T" {
		t.Fatalf("unexpected formatted magnitudes: %q %q", q.Volume, q.MarketCap)
	}
	if len(q.History) != 24 {
		t.Fatalf("expected history trimmed to 24, got %d", len(q.History))
	}
	for i, p := range q.History {
		if p.Time != fmt.Sprintf("%d:00", i) {
			t.Fatalf("expected synthetic label %d:00, got %q", i, p.Time)
		}
	}
	// trimmed to the LAST 24 samples
	if q.History[0].Price != 90006 {
		t.Fatalf("expected first kept sample 90006, got %v", q.History[0].Price)
	}
	if q.Description != "Bitcoin rank #1. Market Cap: 1.92T." {
		t.Fatalf("unexpected description: %q", q.Description)
	}
}

func TestNormalizeQuoteShortHistory(t *testing.T) {
	raw := rawMarketCoin{ID: "x", Symbol: "x", Name: "X"}
	raw.Sparkline.Price = []float64{1, 2, 3}
	q := normalizeQuote(raw)
	if len(q.History) != 3 {
		t.Fatalf("expected short history preserved, got %d", len(q.History))
	}
}

func TestNormalizeRaiseDefaults(t *testing.T) {
	r := normalizeRaise(rawRaise{Name: "Acme", Date: 1710460800}, 2)
	if r.ID != "Acme-1710460800-2" {
		t.Fatalf("unexpected id: %q", r.ID)
	}
	if r.Amount != "Undisclosed" {
		t.Fatalf("expected Undisclosed amount, got %q", r.Amount)
	}
	if r.Valuation != "-" {
		t.Fatalf("expected valuation sentinel, got %q", r.Valuation)
	}
	if r.Category != "Web3" {
		t.Fatalf("expected default category Web3, got %q", r.Category)
	}
	if r.LeadInvestors == nil || r.Investors == nil {
		t.Fatal("expected non-nil investor slices")
	}
}
