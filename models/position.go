package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position is an open holding in the portfolio ledger.
type Position struct {
	ID            uuid.UUID       `json:"id"`
	Ticker        string          `json:"ticker"`
	Name          string          `json:"name"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int64           `json:"quantity"`
	Sector        Sector          `json:"sector"`
	Active        bool            `json:"active"`
}

// ClosedPosition is a position that has been sold, together with its
// realized outcome. The note field may be rewritten any number of times
// after the sale.
type ClosedPosition struct {
	Position
	SellDate         time.Time       `json:"sell_date"`
	SellPrice        decimal.Decimal `json:"sell_price"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
	HoldingDays      int             `json:"holding_days"`
	Note             string          `json:"note,omitempty"`
}

// CostBasis returns purchase price times quantity.
func (p *Position) CostBasis() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(p.Quantity))
}

// MarketValue returns the position's value at the given per-share price.
func (p *Position) MarketValue(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(p.Quantity))
}

// Close derives the realized outcome of selling the position. Realized
// profit is (sellPrice - purchasePrice) * quantity; the percentage uses the
// purchase price as baseline; holding days is the whole number of days
// between purchase and sale, rounded down.
func (p *Position) Close(sellDate time.Time, sellPrice decimal.Decimal) ClosedPosition {
	diff := sellPrice.Sub(p.PurchasePrice)

	closed := ClosedPosition{
		Position:         *p,
		SellDate:         sellDate,
		SellPrice:        sellPrice,
		TotalProfit:      diff.Mul(decimal.NewFromInt(p.Quantity)),
		ProfitPercentage: diff.Div(p.PurchasePrice).Mul(decimal.NewFromInt(100)),
		HoldingDays:      holdingDays(p.PurchaseDate, sellDate),
	}
	closed.Active = false
	return closed
}

func holdingDays(purchase, sell time.Time) int {
	return int(math.Floor(sell.Sub(purchase).Hours() / 24))
}
