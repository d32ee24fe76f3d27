package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSortAndNormalizeRaises(t *testing.T) {
	raises := []rawRaise{
		{Name: "Old", Date: 1_600_000_000, Amount: 5_000_000},
		{Name: "New", Date: 1_700_000_000, Amount: 10_000_000},
		{Name: "Mid", Date: 1_650_000_000},
	}
	out := sortAndNormalizeRaises(raises)
	if len(out) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].RawDate < out[i].RawDate {
			t.Fatalf("rounds not sorted descending by date: %d before %d", out[i-1].RawDate, out[i].RawDate)
		}
	}
	if out[0].Name != "New" || out[2].Name != "Old" {
		t.Fatalf("unexpected order: %s..%s", out[0].Name, out[2].Name)
	}
	if out[1].Amount != "Undisclosed" {
		t.Fatalf("expected Undisclosed for zero amount, got %q", out[1].Amount)
	}

	// idempotent under re-sorting
	again := sortAndNormalizeRaises(raises)
	for i := range out {
		if out[i].RawDate != again[i].RawDate {
			t.Fatal("re-sort changed order")
		}
	}
}

func TestSortAndNormalizeRaisesCap(t *testing.T) {
	raises := make([]rawRaise, 0, 80)
	for i := 0; i < 80; i++ {
		raises = append(raises, rawRaise{Name: "p", Date: int64(i)})
	}
	out := sortAndNormalizeRaises(raises)
	if len(out) != maxFundingRounds {
		t.Fatalf("expected cap at %d, got %d", maxFundingRounds, len(out))
	}
	if out[0].RawDate != 79 {
		t.Fatalf("expected newest round kept, got date %d", out[0].RawDate)
	}
}

func TestFetchRaisesFailureYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewFundingClient(testConfig(srv.URL), nil)
	if got := c.FetchRaises(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty list on failure, got %d", len(got))
	}
}

func TestFetchRaisesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"raises":[
			{"name":"Acme","date":1710460800,"round":"Seed","amount":5000000,"leadInvestors":["Lead VC"],"otherInvestors":["Other VC"],"valuation":50000000,"category":"DeFi","url":"https://acme.xyz"},
			{"name":"Beta","date":1720460800,"round":"Series A","amount":0}
		]}`))
	}))
	defer srv.Close()

	c := NewFundingClient(testConfig(srv.URL), nil)
	out := c.FetchRaises(context.Background())
	if len(out) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(out))
	}
	if out[0].Name != "Beta" {
		t.Fatalf("expected newest first, got %q", out[0].Name)
	}
	if out[1].Amount != "$5.00M" || out[1].Valuation != "50.00M" {
		t.Fatalf("unexpected formatting: %q %q", out[1].Amount, out[1].Valuation)
	}
	if out[1].LeadInvestors[0] != "Lead VC" || out[1].Investors[0] != "Other VC" {
		t.Fatalf("investors not separated: %+v", out[1])
	}
}
