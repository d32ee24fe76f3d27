package services

import (
	"fmt"
	"strings"

	"github.com/derex0721/cryptorex/internal/models"
)

// Raw wire shapes of the upstream providers. Normalization into the
// canonical models is pure and side-effect free.

type rawMarketCoin struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
	Change24h    float64 `json:"price_change_percentage_24h"`
	TotalVolume  float64 `json:"total_volume"`
	MarketCap    float64 `json:"market_cap"`
	Sparkline    struct {
		Price []float64 `json:"price"`
	} `json:"sparkline_in_7d"`
	Image   string  `json:"image"`
	High24h float64 `json:"high_24h"`
	Low24h  float64 `json:"low_24h"`
	Rank    int     `json:"market_cap_rank"`
}

type rawTrendingItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Rank     int     `json:"market_cap_rank"`
	Thumb    string  `json:"thumb"`
	PriceBTC float64 `json:"price_btc"`
}

type rawRaise struct {
	Name           string   `json:"name"`
	Date           int64    `json:"date"`
	Round          string   `json:"round"`
	Amount         float64  `json:"amount"`
	LeadInvestors  []string `json:"leadInvestors"`
	OtherInvestors []string `json:"otherInvestors"`
	Valuation      float64  `json:"valuation"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	URL            string   `json:"url"`
}

func normalizeQuote(r rawMarketCoin) models.AssetQuote {
	marketCap := FormatCompact(r.MarketCap)
	return models.AssetQuote{
		ID:          r.ID,
		Symbol:      strings.ToUpper(r.Symbol),
		Name:        r.Name,
		Price:       r.CurrentPrice,
		Change24h:   r.Change24h,
		Volume:      FormatCompact(r.TotalVolume),
		MarketCap:   marketCap,
		History:     sparklineHistory(r.Sparkline.Price),
		Description: fmt.Sprintf("%s rank #%d. Market Cap: %s.", r.Name, r.Rank, marketCap),
		Image:       r.Image,
		High24h:     r.High24h,
		Low24h:      r.Low24h,
		Rank:        r.Rank,
	}
}

// sparklineHistory trims a 7d intraday series to its last 24 samples and
// relabels them with synthetic hour indices "0:00".."23:00".
func sparklineHistory(prices []float64) []models.PricePoint {
	if len(prices) > 24 {
		prices = prices[len(prices)-24:]
	}
	out := make([]models.PricePoint, 0, len(prices))
	for i, p := range prices {
		out = append(out, models.PricePoint{Time: fmt.Sprintf("%d:00", i), Price: p})
	}
	return out
}

func normalizeTrending(r rawTrendingItem) models.TrendingItem {
	return models.TrendingItem{
		ID:       r.ID,
		Name:     r.Name,
		Symbol:   r.Symbol,
		Rank:     r.Rank,
		Thumb:    r.Thumb,
		PriceBTC: r.PriceBTC,
	}
}

func normalizeRaise(r rawRaise, index int) models.FundingRound {
	valuation := "-"
	if r.Valuation != 0 {
		valuation = FormatCompact(r.Valuation)
	}
	category := r.Category
	if category == "" {
		category = "Web3"
	}
	lead := r.LeadInvestors
	if lead == nil {
		lead = []string{}
	}
	others := r.OtherInvestors
	if others == nil {
		others = []string{}
	}
	return models.FundingRound{
		ID:            fmt.Sprintf("%s-%d-%d", r.Name, r.Date, index),
		Date:          FormatShortDate(r.Date),
		RawDate:       r.Date,
		Name:          r.Name,
		Round:         r.Round,
		Amount:        FormatAmount(r.Amount),
		RawAmount:     r.Amount,
		LeadInvestors: lead,
		Investors:     others,
		Valuation:     valuation,
		Category:      category,
		Description:   r.Description,
		Link:          r.URL,
	}
}
