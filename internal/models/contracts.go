package models

type PricePoint struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

// AssetQuote is the canonical shape every market source is normalized into.
// History holds at most the last 24 sparkline samples, relabeled with
// synthetic hour indices.
type AssetQuote struct {
	ID          string       `json:"id"`
	Symbol      string       `json:"symbol"`
	Name        string       `json:"name"`
	Price       float64      `json:"price"`
	Change24h   float64      `json:"change24h"`
	Volume      string       `json:"volume"`
	MarketCap   string       `json:"marketCap"`
	History     []PricePoint `json:"history"`
	Description string       `json:"description"`
	Image       string       `json:"image,omitempty"`
	High24h     float64      `json:"high24h,omitempty"`
	Low24h      float64      `json:"low24h,omitempty"`
	Rank        int          `json:"rank,omitempty"`
}

type TrendingItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Rank     int     `json:"market_cap_rank"`
	Thumb    string  `json:"thumb"`
	PriceBTC float64 `json:"price_btc"`
}

// FundingRound keeps both the formatted amount string and the raw numeric
// values; RawAmount and RawDate are the sort keys.
type FundingRound struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	RawDate       int64    `json:"rawDate"`
	Name          string   `json:"name"`
	Round         string   `json:"round"`
	Amount        string   `json:"amount"`
	RawAmount     float64  `json:"rawAmount"`
	LeadInvestors []string `json:"leadInvestors"`
	Investors     []string `json:"investors"`
	Valuation     string   `json:"valuation"`
	Category      string   `json:"category"`
	Description   string   `json:"description,omitempty"`
	Link          string   `json:"link,omitempty"`
}

type EntityType string

const (
	EntityExchange EntityType = "Exchange"
	EntityFund     EntityType = "Fund"
	EntityWhale    EntityType = "Whale"
	EntityDefi     EntityType = "Defi Protocol"
)

type IntelEntity struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       EntityType `json:"type"`
	Label      string     `json:"label"`
	BalanceUSD string     `json:"balanceUsd"`
	PnL24h     float64    `json:"pnl24h"`
	Tags       []string   `json:"tags"`
}

type IntelTransaction struct {
	ID          string  `json:"id"`
	Time        string  `json:"time"`
	FromAddress string  `json:"fromAddress"`
	FromLabel   string  `json:"fromLabel,omitempty"`
	ToAddress   string  `json:"toAddress"`
	ToLabel     string  `json:"toLabel,omitempty"`
	TokenSymbol string  `json:"tokenSymbol"`
	TokenAmount float64 `json:"tokenAmount"`
	ValueUSD    float64 `json:"valueUsd"`
	Hash        string  `json:"hash"`
}

type IntelBundle struct {
	Entities     []IntelEntity      `json:"entities"`
	Transactions []IntelTransaction `json:"transactions"`
}

// MarketBundle is the atomic snapshot the aggregator publishes: either all
// four sources have resolved, or there is no snapshot at all.
type MarketBundle struct {
	TsISO      string         `json:"tsISO"`
	Quotes     []AssetQuote   `json:"quotes"`
	Trending   []TrendingItem `json:"trending"`
	Funding    []FundingRound `json:"funding"`
	Intel      IntelBundle    `json:"intel"`
	SelectedID string         `json:"selectedId"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage records are replaced wholesale on every mutation; Pending is
// set while a stream or scan for this message is outstanding.
type ChatMessage struct {
	ID          string               `json:"id"`
	Role        Role                 `json:"role"`
	Text        string               `json:"text"`
	Pending     bool                 `json:"pending,omitempty"`
	TrendResult *TrendAnalysisResult `json:"trendResult,omitempty"`
}

// TrendAnalysisResult is the schema-constrained deep-scan payload. A value
// failing validation is discarded, never rendered with defaults.
type TrendAnalysisResult struct {
	SentimentScore    float64   `json:"sentimentScore" validate:"min=0,max=100"`
	Trend             string    `json:"trend" validate:"required,oneof=Bullish Bearish Neutral"`
	Confidence        float64   `json:"confidence" validate:"min=0,max=100"`
	SupportLevels     []float64 `json:"supportLevels" validate:"required"`
	ResistanceLevels  []float64 `json:"resistanceLevels" validate:"required"`
	KeyNarrative      string    `json:"keyNarrative" validate:"required"`
	ActionableInsight string    `json:"actionableInsight" validate:"required"`
}

type HealthResponse struct {
	Ok      bool            `json:"ok"`
	TsISO   string          `json:"tsISO"`
	Service string          `json:"service"`
	Version string          `json:"version,omitempty"`
	Env     map[string]bool `json:"env"`
}
