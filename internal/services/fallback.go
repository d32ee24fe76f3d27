package services

import "github.com/derex0721/cryptorex/internal/models"

// Bundled quote dataset served when the market source is unreachable or rate
// limited. The values are a fixed snapshot; repeated failures always yield
// this exact list.
var fallbackQuotes = []models.AssetQuote{
	{
		ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin",
		Price: 97250.12, Change24h: 2.41, Volume: "42.80B", MarketCap: "1.92T",
		History: []models.PricePoint{
			{Time: "0:00", Price: 95120.55}, {Time: "1:00", Price: 95340.10},
			{Time: "2:00", Price: 94980.72}, {Time: "3:00", Price: 95610.33},
			{Time: "4:00", Price: 96020.48}, {Time: "5:00", Price: 96210.90},
			{Time: "6:00", Price: 96105.27}, {Time: "7:00", Price: 96480.61},
			{Time: "8:00", Price: 96890.04}, {Time: "9:00", Price: 97010.85},
			{Time: "10:00", Price: 96940.16}, {Time: "11:00", Price: 97250.12},
		},
		Description: "Bitcoin rank #1. Market Cap: 1.92T.",
		High24h:     97510.00, Low24h: 94800.30, Rank: 1,
	},
	{
		ID: "ethereum", Symbol: "ETH", Name: "Ethereum",
		Price: 3412.77, Change24h: 1.08, Volume: "18.30B", MarketCap: "410.55B",
		History: []models.PricePoint{
			{Time: "0:00", Price: 3365.20}, {Time: "1:00", Price: 3371.85},
			{Time: "2:00", Price: 3358.40}, {Time: "3:00", Price: 3380.12},
			{Time: "4:00", Price: 3395.66}, {Time: "5:00", Price: 3402.31},
			{Time: "6:00", Price: 3398.07}, {Time: "7:00", Price: 3405.54},
			{Time: "8:00", Price: 3410.93}, {Time: "9:00", Price: 3412.77},
		},
		Description: "Ethereum rank #2. Market Cap: 410.55B.",
		High24h:     3428.10, Low24h: 3351.90, Rank: 2,
	},
	{
		ID: "solana", Symbol: "SOL", Name: "Solana",
		Price: 188.43, Change24h: -0.74, Volume: "3.60B", MarketCap: "89.20B",
		History: []models.PricePoint{
			{Time: "0:00", Price: 190.12}, {Time: "1:00", Price: 189.80},
			{Time: "2:00", Price: 189.25}, {Time: "3:00", Price: 188.91},
			{Time: "4:00", Price: 189.34}, {Time: "5:00", Price: 188.70},
			{Time: "6:00", Price: 188.02}, {Time: "7:00", Price: 188.43},
		},
		Description: "Solana rank #5. Market Cap: 89.20B.",
		High24h:     191.05, Low24h: 187.40, Rank: 5,
	},
	{
		ID: "binancecoin", Symbol: "BNB", Name: "BNB",
		Price: 641.15, Change24h: 0.32, Volume: "1.90B", MarketCap: "93.40B",
		History: []models.PricePoint{
			{Time: "0:00", Price: 638.20}, {Time: "1:00", Price: 639.05},
			{Time: "2:00", Price: 637.88}, {Time: "3:00", Price: 639.74},
			{Time: "4:00", Price: 640.52}, {Time: "5:00", Price: 641.15},
		},
		Description: "BNB rank #4. Market Cap: 93.40B.",
		High24h:     643.80, Low24h: 636.10, Rank: 4,
	},
	{
		ID: "ripple", Symbol: "XRP", Name: "XRP",
		Price: 2.31, Change24h: -1.92, Volume: "4.10B", MarketCap: "132.70B",
		History: []models.PricePoint{
			{Time: "0:00", Price: 2.37}, {Time: "1:00", Price: 2.36},
			{Time: "2:00", Price: 2.34}, {Time: "3:00", Price: 2.35},
			{Time: "4:00", Price: 2.33}, {Time: "5:00", Price: 2.31},
		},
		Description: "XRP rank #3. Market Cap: 132.70B.",
		High24h:     2.39, Low24h: 2.29, Rank: 3,
	},
}

// FallbackQuotes returns a fresh copy so callers can hand the list to the
// view layer without aliasing the bundled records.
func FallbackQuotes() []models.AssetQuote {
	out := make([]models.AssetQuote, len(fallbackQuotes))
	copy(out, fallbackQuotes)
	for i := range out {
		hist := make([]models.PricePoint, len(out[i].History))
		copy(hist, out[i].History)
		out[i].History = hist
	}
	return out
}
