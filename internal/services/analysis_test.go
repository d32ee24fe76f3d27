package services

import (
	"context"
	"errors"
	"testing"

	"github.com/derex0721/cryptorex/internal/locale"
)

func TestAnalyzeValidPayload(t *testing.T) {
	gen := &scriptedGenerator{
		jsonOut: []byte(`{"sentimentScore":61,"trend":"Neutral","confidence":55,"supportLevels":[90000],"resistanceLevels":[100000],"keyNarrative":"Range-bound.","actionableInsight":"Wait for a break."}`),
	}
	e := NewAnalysisExtractor(gen)
	out := e.Analyze(context.Background(), "Bitcoin", "ctx", locale.Resolve("en"))
	if out == nil {
		t.Fatal("expected result for valid payload")
	}
	if out.Trend != "Neutral" || out.SentimentScore != 61 {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestAnalyzeNilOnFailure(t *testing.T) {
	cases := []struct {
		name string
		gen  *scriptedGenerator
	}{
		{"request error", &scriptedGenerator{jsonErr: errors.New("upstream down")}},
		{"malformed json", &scriptedGenerator{jsonOut: []byte(`{"trend":`)}},
		{"unknown trend", &scriptedGenerator{jsonOut: []byte(`{"sentimentScore":50,"trend":"Crab","confidence":50,"supportLevels":[1],"resistanceLevels":[2],"keyNarrative":"x","actionableInsight":"y"}`)}},
		{"score out of range", &scriptedGenerator{jsonOut: []byte(`{"sentimentScore":140,"trend":"Bullish","confidence":50,"supportLevels":[1],"resistanceLevels":[2],"keyNarrative":"x","actionableInsight":"y"}`)}},
		{"missing narrative", &scriptedGenerator{jsonOut: []byte(`{"sentimentScore":50,"trend":"Bullish","confidence":50,"supportLevels":[1],"resistanceLevels":[2],"actionableInsight":"y"}`)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewAnalysisExtractor(tc.gen)
			if out := e.Analyze(context.Background(), "Bitcoin", "ctx", locale.Resolve("en")); out != nil {
				t.Fatalf("expected nil, got %+v", out)
			}
		})
	}
}
