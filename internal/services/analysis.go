package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/derex0721/cryptorex/internal/locale"
	"github.com/derex0721/cryptorex/internal/models"
)

// AnalysisExtractor issues one schema-constrained request per invocation and
// validates the result. It never retries and never fabricates a partial
// object: any failure returns nil ("analysis unavailable").
type AnalysisExtractor struct {
	gen      TextGenerator
	validate *validator.Validate
}

func NewAnalysisExtractor(gen TextGenerator) *AnalysisExtractor {
	return &AnalysisExtractor{gen: gen, validate: validator.New()}
}

func trendSchema(langName string) map[string]any {
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"sentimentScore": map[string]any{
				"type":        "NUMBER",
				"description": "A score from 0 (Bearish) to 100 (Bullish)",
			},
			"trend": map[string]any{
				"type": "STRING",
				"enum": []string{"Bullish", "Bearish", "Neutral"},
			},
			"confidence": map[string]any{
				"type":        "NUMBER",
				"description": "Confidence percentage 0-100",
			},
			"supportLevels": map[string]any{
				"type":        "ARRAY",
				"items":       map[string]any{"type": "NUMBER"},
				"description": "List of 3 estimated support prices",
			},
			"resistanceLevels": map[string]any{
				"type":        "ARRAY",
				"items":       map[string]any{"type": "NUMBER"},
				"description": "List of 3 estimated resistance prices",
			},
			"keyNarrative": map[string]any{
				"type":        "STRING",
				"description": fmt.Sprintf("A one sentence summary of the market driver in %s", langName),
			},
			"actionableInsight": map[string]any{
				"type":        "STRING",
				"description": fmt.Sprintf("A concise actionable tip for a trader in %s", langName),
			},
		},
		"required": []string{
			"sentimentScore", "trend", "confidence",
			"supportLevels", "resistanceLevels", "keyNarrative", "actionableInsight",
		},
	}
}

// Analyze runs the deep scan for one asset. A nil result means "analysis
// unavailable", never a zero-value analysis.
func (e *AnalysisExtractor) Analyze(ctx context.Context, assetName, contextData string, lang locale.Language) *models.TrendAnalysisResult {
	task := fmt.Sprintf(
		"Analyze the provided market data for %s.\n"+
			"Based on the price history and volatility in the context, determine the current trend, support/resistance levels, and sentiment.\n"+
			"Provide a strictly valid JSON response.\n"+
			"Translate the 'keyNarrative' and 'actionableInsight' values into %s.",
		assetName, lang.PromptName)
	prompt := fmt.Sprintf("Context: %s\n\nTask: %s", contextData, task)

	raw, err := e.gen.GenerateJSON(ctx, prompt, trendSchema(lang.PromptName))
	if err != nil {
		logrus.WithError(err).Error("trend analysis request failed")
		return nil
	}

	var out models.TrendAnalysisResult
	if err := json.Unmarshal(raw, &out); err != nil {
		logrus.WithError(err).Error("trend analysis payload malformed")
		return nil
	}
	if err := e.validate.Struct(&out); err != nil {
		logrus.WithError(err).Warn("trend analysis rejected by validation")
		return nil
	}
	return &out
}
