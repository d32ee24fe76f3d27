package services

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/derex0721/cryptorex/internal/models"
)

var intelTokens = []string{"ETH", "USDC", "USDT", "WBTC", "PEPE", "SHIB", "MKR"}

var intelEntities = []models.IntelEntity{
	{ID: "1", Name: "Vitalik.eth", Type: models.EntityWhale, Label: "Vitalik Buterin", BalanceUSD: "$4.2M", PnL24h: 1.2, Tags: []string{"ENS", "Founder"}},
	{ID: "2", Name: "Alameda Remediation", Type: models.EntityFund, Label: "FTX Liquidators", BalanceUSD: "$240M", PnL24h: -0.5, Tags: []string{"Liquidator", "Exchange"}},
	{ID: "3", Name: "Binance Hot Wallet 6", Type: models.EntityExchange, Label: "Binance", BalanceUSD: "$2.1B", PnL24h: 0.1, Tags: []string{"CEX", "Hot Wallet"}},
	{ID: "4", Name: "Justin Sun", Type: models.EntityWhale, Label: "Justin Sun", BalanceUSD: "$345M", PnL24h: 3.4, Tags: []string{"TRON", "Founder"}},
	{ID: "5", Name: "Wintermute Trading", Type: models.EntityFund, Label: "Wintermute", BalanceUSD: "$89M", PnL24h: 0.8, Tags: []string{"MM", "VC"}},
	{ID: "6", Name: "Uniswap V3: USDC-ETH", Type: models.EntityDefi, Label: "Uniswap", BalanceUSD: "$120M", PnL24h: 0.0, Tags: []string{"DEX", "Pool"}},
}

// IntelFeed is a synthetic source: fixed entity records plus randomized
// transactions, exercising the same rendering contract as the real feeds.
type IntelFeed struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewIntelFeed builds a feed around rnd; a nil rnd gets a time-seeded one.
// Tests pass a fixed-seed source for reproducible output.
func NewIntelFeed(rnd *rand.Rand) *IntelFeed {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &IntelFeed{rnd: rnd}
}

// Fetch returns the six fixed entities and exactly 20 generated transactions
// sorted by USD value descending.
func (f *IntelFeed) Fetch() models.IntelBundle {
	f.mu.Lock()
	defer f.mu.Unlock()

	entities := make([]models.IntelEntity, len(intelEntities))
	copy(entities, intelEntities)

	txs := make([]models.IntelTransaction, 0, 20)
	for i := 0; i < 20; i++ {
		inflow := f.rnd.Float64() > 0.5
		amount := f.rnd.Float64() * 1_000_000
		token := intelTokens[f.rnd.Intn(len(intelTokens))]
		price := 1.0
		switch token {
		case "ETH":
			price = 3000
		case "WBTC":
			price = 60000
		}

		tx := models.IntelTransaction{
			ID:          fmt.Sprintf("tx-%d", i),
			Time:        fmt.Sprintf("%d mins ago", f.rnd.Intn(60)),
			TokenSymbol: token,
			TokenAmount: float64(f.rnd.Intn(1000)),
			ValueUSD:    math.Floor(amount * price / 1000),
			Hash:        "0x" + f.hexDigits(10) + "...",
		}
		if inflow {
			tx.FromAddress = "0x" + f.hexDigits(4) + "..."
			tx.FromLabel = "Unknown Wallet"
			tx.ToAddress = entities[f.rnd.Intn(len(entities))].Label
		} else {
			tx.FromAddress = entities[f.rnd.Intn(len(entities))].Label
			tx.ToAddress = "0x" + f.hexDigits(4) + "..."
			tx.ToLabel = "Binance Deposit"
		}
		txs = append(txs, tx)
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].ValueUSD > txs[j].ValueUSD })

	return models.IntelBundle{Entities: entities, Transactions: txs}
}

func (f *IntelFeed) hexDigits(n int) string {
	const digits = "0123456789abcdef"
	b := make([]byte, n)
	for i := range b {
		b[i] = digits[f.rnd.Intn(len(digits))]
	}
	return string(b)
}
