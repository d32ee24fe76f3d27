package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/derex0721/cryptorex/internal/locale"
	"github.com/derex0721/cryptorex/internal/models"
)

// scriptedGenerator lets tests control what the AI backend emits, and
// optionally block mid-flight to exercise in-flight invalidation.
type scriptedGenerator struct {
	chunks    []string
	streamErr error
	jsonOut   []byte
	jsonErr   error

	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
}

func (g *scriptedGenerator) GenerateStream(_ context.Context, _ string, onChunk func(string)) error {
	g.mu.Lock()
	started, release := g.started, g.release
	g.started, g.release = nil, nil
	g.mu.Unlock()
	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}
	for _, c := range g.chunks {
		onChunk(c)
	}
	return g.streamErr
}

func (g *scriptedGenerator) GenerateJSON(context.Context, string, map[string]any) ([]byte, error) {
	return g.jsonOut, g.jsonErr
}

func btcQuote() models.AssetQuote {
	return models.AssetQuote{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Price: 97000, Change24h: 2.4, MarketCap: "1.92T", Volume: "42.80B"}
}

func ethQuote() models.AssetQuote {
	return models.AssetQuote{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Price: 3400, Change24h: 1.1}
}

func newTestConversation(gen *scriptedGenerator) *Conversation {
	return NewConversation(gen, NewAnalysisExtractor(gen))
}

func TestSetContextSeedsSingleGreeting(t *testing.T) {
	conv := newTestConversation(&scriptedGenerator{chunks: []string{"hello"}})
	conv.SetContext(btcQuote(), locale.Resolve("en"))

	if err := conv.Send(context.Background(), "what is the trend?", nil); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if got := len(conv.Messages()); got != 3 {
		t.Fatalf("expected 3 messages before switch, got %d", got)
	}

	conv.SetContext(ethQuote(), locale.Resolve("en"))
	msgs := conv.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected history reset to exactly one message, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleAssistant {
		t.Fatalf("expected assistant greeting, got role %q", msgs[0].Role)
	}
	if !strings.Contains(msgs[0].Text, "Ethereum") || !strings.Contains(msgs[0].Text, "ETH") {
		t.Fatalf("greeting does not reference new asset: %q", msgs[0].Text)
	}
}

func TestSendAccumulatesChunksInOrder(t *testing.T) {
	gen := &scriptedGenerator{chunks: []string{"The ", "trend ", "is up."}}
	conv := newTestConversation(gen)
	conv.SetContext(btcQuote(), locale.Resolve("en"))

	var updates []models.ChatMessage
	if err := conv.Send(context.Background(), "trend?", func(m models.ChatMessage) {
		updates = append(updates, m)
	}); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	msgs := conv.Messages()
	last := msgs[len(msgs)-1]
	if last.Text != "The trend is up." {
		t.Fatalf("chunks not concatenated in order: %q", last.Text)
	}
	if last.Pending {
		t.Fatal("expected pending cleared after completion")
	}
	if msgs[len(msgs)-2].Text != "trend?" || msgs[len(msgs)-2].Role != models.RoleUser {
		t.Fatalf("user message missing: %+v", msgs[len(msgs)-2])
	}
	// placeholder first, then one update per chunk, then the settle
	if len(updates) < 3 {
		t.Fatalf("expected incremental updates, got %d", len(updates))
	}
}

func TestSendStreamFailureSetsErrorText(t *testing.T) {
	gen := &scriptedGenerator{chunks: []string{"partial"}, streamErr: errors.New("boom")}
	conv := newTestConversation(gen)
	lang := locale.Resolve("en")
	conv.SetContext(btcQuote(), lang)

	if err := conv.Send(context.Background(), "trend?", nil); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	msgs := conv.Messages()
	last := msgs[len(msgs)-1]
	if last.Text != lang.AnalysisError {
		t.Fatalf("expected fixed error string, got %q", last.Text)
	}
	if last.Pending {
		t.Fatal("expected pending cleared after failure")
	}
}

func TestSendWhilePendingIsDropped(t *testing.T) {
	gen := &scriptedGenerator{
		chunks:  []string{"slow"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	started, release := gen.started, gen.release
	conv := newTestConversation(gen)
	conv.SetContext(btcQuote(), locale.Resolve("en"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = conv.Send(context.Background(), "first", nil)
	}()
	<-started

	if err := conv.Send(context.Background(), "second", nil); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(release)
	<-done

	for _, m := range conv.Messages() {
		if m.Text == "second" {
			t.Fatal("dropped request must not append a user message")
		}
	}
	// greeting + first user + assistant
	if got := len(conv.Messages()); got != 3 {
		t.Fatalf("expected 3 messages, got %d", got)
	}
}

func TestStaleStreamCannotResurrectHistory(t *testing.T) {
	gen := &scriptedGenerator{
		chunks:  []string{"stale chunk"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	started, release := gen.started, gen.release
	conv := newTestConversation(gen)
	conv.SetContext(btcQuote(), locale.Resolve("en"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = conv.Send(context.Background(), "question", nil)
	}()
	<-started

	// reset while the stream is in flight
	conv.SetContext(ethQuote(), locale.Resolve("en"))

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("send did not finish")
	}

	msgs := conv.Messages()
	if len(msgs) != 1 {
		t.Fatalf("stale completion mutated reset history: %d messages", len(msgs))
	}

	// the reset also cleared busy, so a new send must go through
	gen.chunks = []string{"fresh"}
	if err := conv.Send(context.Background(), "again", nil); err != nil {
		t.Fatalf("send after reset failed: %v", err)
	}
}

func TestDeepScanAttachesResult(t *testing.T) {
	gen := &scriptedGenerator{
		jsonOut: []byte(`{"sentimentScore":72,"trend":"Bullish","confidence":65,"supportLevels":[91000,89000],"resistanceLevels":[99000,102000],"keyNarrative":"Momentum holds.","actionableInsight":"Watch 99k."}`),
	}
	conv := newTestConversation(gen)
	lang := locale.Resolve("en")
	conv.SetContext(btcQuote(), lang)

	if err := conv.DeepScan(context.Background(), nil); err != nil {
		t.Fatalf("deep scan failed: %v", err)
	}
	msgs := conv.Messages()
	last := msgs[len(msgs)-1]
	if last.Text != lang.AnalysisComplete {
		t.Fatalf("unexpected completion text: %q", last.Text)
	}
	if last.TrendResult == nil || last.TrendResult.Trend != "Bullish" {
		t.Fatalf("structured result not attached: %+v", last.TrendResult)
	}
	if msgs[len(msgs)-2].Text != lang.DeepScan {
		t.Fatalf("synthetic user message missing: %q", msgs[len(msgs)-2].Text)
	}
}

func TestDeepScanRejectsInvalidTrend(t *testing.T) {
	gen := &scriptedGenerator{
		jsonOut: []byte(`{"sentimentScore":50,"trend":"Sideways","confidence":50,"supportLevels":[1],"resistanceLevels":[2],"keyNarrative":"x","actionableInsight":"y"}`),
	}
	conv := newTestConversation(gen)
	lang := locale.Resolve("en")
	conv.SetContext(btcQuote(), lang)

	if err := conv.DeepScan(context.Background(), nil); err != nil {
		t.Fatalf("deep scan failed: %v", err)
	}
	last := conv.Messages()[len(conv.Messages())-1]
	if last.TrendResult != nil {
		t.Fatal("invalid trend must not be rendered")
	}
	if last.Text != lang.AnalysisError {
		t.Fatalf("expected fixed error string, got %q", last.Text)
	}
}

func TestSendWithoutContext(t *testing.T) {
	conv := newTestConversation(&scriptedGenerator{})
	if err := conv.Send(context.Background(), "hi", nil); !errors.Is(err, ErrNoContext) {
		t.Fatalf("expected ErrNoContext, got %v", err)
	}
}
