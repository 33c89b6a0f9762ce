package models

import "github.com/shopspring/decimal"

// PortfolioSummary aggregates the ledger into dashboard figures. TotalProfit
// is cumulative: unrealized profit on open positions plus realized profit on
// every closed position ever recorded.
type PortfolioSummary struct {
	TotalInvested         decimal.Decimal `json:"total_invested"`
	CurrentValue          decimal.Decimal `json:"current_value"`
	TotalProfit           decimal.Decimal `json:"total_profit"`
	TotalProfitPercentage decimal.Decimal `json:"total_profit_percentage"`
	OpenPositions         int             `json:"open_positions"`
	ClosedPositions       int             `json:"closed_positions"`
}

// SectorWeight is one slice of the sector distribution. Notional value uses
// the purchase price, not the live price.
type SectorWeight struct {
	Sector     Sector          `json:"sector"`
	Positions  int             `json:"positions"`
	Notional   decimal.Decimal `json:"notional"`
	Percentage decimal.Decimal `json:"percentage"`
}
