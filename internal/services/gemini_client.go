package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/derex0721/cryptorex/internal/config"
)

const analystSystemPrompt = "You are CryptoSight AI, an expert digital-asset market analyst. " +
	"Ground every answer in the context data provided. Be concise and data-driven, " +
	"quantify where possible, and never present projections as guarantees."

// TextGenerator is the surface the conversation engine needs from the AI
// backend; tests substitute a scripted implementation.
type TextGenerator interface {
	GenerateStream(ctx context.Context, prompt string, onChunk func(text string)) error
	GenerateJSON(ctx context.Context, prompt string, schema map[string]any) ([]byte, error)
}

type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini api: %d", e.Status)
}

// GeminiClient is a hand-rolled client for the Gemini REST API: SSE frames
// from :streamGenerateContent for free text, one-shot :generateContent with
// a response schema for structured output.
type GeminiClient struct {
	baseURL string
	apiKey  string
	model   string
	hc      *http.Client
}

func NewGeminiClient(cfg config.Config) *GeminiClient {
	return &GeminiClient{
		baseURL: strings.TrimRight(cfg.GeminiBaseURL, "/"),
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		hc: &http.Client{
			Timeout: cfg.StreamTimeout,
		},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  map[string]any  `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r geminiResponse) text() string {
	var b strings.Builder
	for _, cand := range r.Candidates {
		for _, p := range cand.Content.Parts {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

func (c *GeminiClient) endpoint(verb string, stream bool) string {
	u := fmt.Sprintf("%s/v1beta/models/%s:%s", c.baseURL, c.model, verb)
	q := url.Values{}
	if stream {
		q.Set("alt", "sse")
	}
	q.Set("key", c.apiKey)
	return u + "?" + q.Encode()
}

func (c *GeminiClient) post(ctx context.Context, endpoint string, body geminiRequest) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		res.Body.Close()
		return nil, &UpstreamError{Status: res.StatusCode, Body: string(b)}
	}
	return res, nil
}

// GenerateStream emits text fragments in the order the stream produces them.
func (c *GeminiClient) GenerateStream(ctx context.Context, prompt string, onChunk func(text string)) error {
	body := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: analystSystemPrompt}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}
	res, err := c.post(ctx, c.endpoint("streamGenerateContent", true), body)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	scanner := bufio.NewScanner(res.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}
		var frame geminiResponse
		if err := json.Unmarshal([]byte(payload), &frame); err != nil {
			continue
		}
		if text := frame.text(); text != "" {
			onChunk(text)
		}
	}
	return scanner.Err()
}

// GenerateJSON runs one schema-constrained request and returns the raw JSON
// document the model produced.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema map[string]any) ([]byte, error) {
	body := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: analystSystemPrompt}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   schema,
			"temperature":      0.5,
		},
	}
	res, err := c.post(ctx, c.endpoint("generateContent", false), body)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var out geminiResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	text := out.text()
	if text == "" {
		return nil, errors.New("empty response body")
	}
	return []byte(text), nil
}
