package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/derex0721/cryptorex/internal/locale"
	"github.com/derex0721/cryptorex/internal/models"
)

var (
	// ErrBusy means a request is already outstanding; the new one is
	// dropped, not queued.
	ErrBusy = errors.New("a request is already in flight")
	// ErrNoContext means no asset has been selected yet.
	ErrNoContext = errors.New("no asset selected")
)

// Conversation owns the message history for the currently selected asset and
// language. The history is an ordered id slice plus an id-indexed map of
// records; every mutation replaces the whole record at its id.
//
// Each SetContext bumps a generation counter. In-flight requests carry the
// generation they were issued under; completions whose generation no longer
// matches are discarded, so a stale stream can never resurrect messages
// after a reset.
type Conversation struct {
	gen       TextGenerator
	extractor *AnalysisExtractor

	mu         sync.Mutex
	asset      models.AssetQuote
	lang       locale.Language
	seeded     bool
	busy       bool
	generation uint64
	order      []string
	byID       map[string]models.ChatMessage
}

func NewConversation(gen TextGenerator, extractor *AnalysisExtractor) *Conversation {
	return &Conversation{
		gen:       gen,
		extractor: extractor,
		byID:      make(map[string]models.ChatMessage),
	}
}

// SetContext discards the entire history and seeds a fresh greeting for the
// new asset/language pair. The reset is unconditional; any in-flight request
// is invalidated by the generation bump.
func (c *Conversation) SetContext(asset models.AssetQuote, lang locale.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.busy = false
	c.asset = asset
	c.lang = lang
	c.seeded = true
	c.order = nil
	c.byID = make(map[string]models.ChatMessage)
	c.appendLocked(models.ChatMessage{
		ID:   uuid.NewString(),
		Role: models.RoleAssistant,
		Text: lang.GreetingFor(asset.Name, asset.Symbol),
	})
}

// Messages returns a snapshot of the transcript in insertion order.
func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatMessage, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Send appends the user message plus a pending assistant placeholder, streams
// the reply, and accumulates chunks into the placeholder in arrival order.
// A stream failure replaces the text with the fixed localized error string;
// it is never surfaced as an error to the caller. onUpdate, when non-nil, is
// invoked with every record replacement.
func (c *Conversation) Send(ctx context.Context, text string, onUpdate func(models.ChatMessage)) error {
	c.mu.Lock()
	if !c.seeded {
		c.mu.Unlock()
		return ErrNoContext
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	gen := c.generation
	userMsg := models.ChatMessage{ID: uuid.NewString(), Role: models.RoleUser, Text: text}
	asst := models.ChatMessage{ID: uuid.NewString(), Role: models.RoleAssistant, Pending: true}
	c.appendLocked(userMsg)
	c.appendLocked(asst)
	prompt := fmt.Sprintf("Context Data: %s\n\nUser Question: %s\n\n%s", c.contextLocked(), text, c.lang.Directive())
	errText := c.lang.AnalysisError
	c.mu.Unlock()

	notify(onUpdate, userMsg)
	notify(onUpdate, asst)

	streamErr := c.gen.GenerateStream(ctx, prompt, func(chunk string) {
		if msg, ok := c.applyChunk(gen, asst.ID, chunk); ok {
			notify(onUpdate, msg)
		}
	})
	if streamErr != nil {
		logrus.WithError(streamErr).Error("analysis stream failed")
	}
	if msg, ok := c.settle(gen, asst.ID, streamErr != nil, errText); ok {
		notify(onUpdate, msg)
	}
	return nil
}

// DeepScan appends a synthetic user message announcing the scan, runs the
// extractor once, and attaches the structured result (or the error string)
// to the assistant placeholder.
func (c *Conversation) DeepScan(ctx context.Context, onUpdate func(models.ChatMessage)) error {
	c.mu.Lock()
	if !c.seeded {
		c.mu.Unlock()
		return ErrNoContext
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	gen := c.generation
	lang := c.lang
	assetName := c.asset.Name
	contextData := c.contextLocked()
	userMsg := models.ChatMessage{ID: uuid.NewString(), Role: models.RoleUser, Text: lang.DeepScan}
	asst := models.ChatMessage{ID: uuid.NewString(), Role: models.RoleAssistant, Pending: true}
	c.appendLocked(userMsg)
	c.appendLocked(asst)
	c.mu.Unlock()

	notify(onUpdate, userMsg)
	notify(onUpdate, asst)

	result := c.extractor.Analyze(ctx, assetName, contextData, lang)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return nil
	}
	c.busy = false
	msg := c.byID[asst.ID]
	msg.Pending = false
	if result != nil {
		msg.Text = lang.AnalysisComplete
		msg.TrendResult = result
	} else {
		msg.Text = lang.AnalysisError
	}
	c.byID[asst.ID] = msg
	c.mu.Unlock()

	notify(onUpdate, msg)
	return nil
}

// applyChunk concatenates one stream fragment onto the record at id, unless
// the generation no longer matches the current context.
func (c *Conversation) applyChunk(gen uint64, id, chunk string) (models.ChatMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return models.ChatMessage{}, false
	}
	msg := c.byID[id]
	msg.Text += chunk
	msg.Pending = false
	c.byID[id] = msg
	return msg, true
}

// settle finalizes the assistant record when the stream ends. A stale
// generation leaves state untouched: the reset already rebuilt the history
// and cleared busy.
func (c *Conversation) settle(gen uint64, id string, failed bool, errText string) (models.ChatMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return models.ChatMessage{}, false
	}
	c.busy = false
	msg := c.byID[id]
	if failed {
		msg.Text = errText
	}
	msg.Pending = false
	c.byID[id] = msg
	return msg, true
}

func (c *Conversation) appendLocked(msg models.ChatMessage) {
	c.order = append(c.order, msg.ID)
	c.byID[msg.ID] = msg
}

// contextLocked derives the context string passed verbatim to the AI backend.
func (c *Conversation) contextLocked() string {
	prices := make([]float64, 0, len(c.asset.History))
	for _, p := range c.asset.History {
		prices = append(prices, p.Price)
	}
	hist, _ := json.Marshal(prices)
	return fmt.Sprintf(
		"Current Coin: %s (%s)\nPrice: $%v\n24h Change: %v%%\nMarket Cap: %s\nVolume: %s\nDescription: %s\nPrice History (Last 24h): %s",
		c.asset.Name, c.asset.Symbol, c.asset.Price, c.asset.Change24h,
		c.asset.MarketCap, c.asset.Volume, c.asset.Description, hist)
}

func notify(onUpdate func(models.ChatMessage), msg models.ChatMessage) {
	if onUpdate != nil {
		onUpdate(msg)
	}
}
