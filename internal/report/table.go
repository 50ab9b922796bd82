// Package report defines the output tables and their CSV serialization.
package report

// Company report column names
// ⭐ SSOT: 재무 리포트 컬럼 순서는 여기서만 정의
const (
	ColDate            = "date"
	ColPrice           = "price_usd"
	ColPER             = "per"
	ColRevenue         = "revenue_usd"
	ColOperatingIncome = "operating_income_usd"
	ColOperatingMargin = "operating_margin_pct"
	ColNetIncome       = "net_income_usd"
	ColRevenueYoY      = "revenue_yoy_pct"
	ColNetIncomeYoY    = "net_income_yoy_pct"
	ColEPSEstimate     = "eps_estimate"
	ColEPSActual       = "eps_actual"
	ColConsensus       = "consensus"
	ColSurprise        = "surprise_pct"
	ColBuyback         = "buyback_usd"
	ColDividend        = "dividend_usd"
)

// Macro report column names
const (
	ColBitcoin  = "btc_usd"
	ColFedFunds = "fed_funds_rate_pct"
	ColGDP      = "gdp_usd_bn"
)

// CompanyColumns is the column order of the per-company report CSV.
// ColDate comes from the table index and is not listed here.
var CompanyColumns = []string{
	ColPrice,
	ColPER,
	ColRevenue,
	ColOperatingIncome,
	ColOperatingMargin,
	ColNetIncome,
	ColRevenueYoY,
	ColNetIncomeYoY,
	ColEPSEstimate,
	ColEPSActual,
	ColConsensus,
	ColSurprise,
	ColBuyback,
	ColDividend,
}

// MacroColumns is the column order of the macro report CSV.
var MacroColumns = []string{
	ColBitcoin,
	ColFedFunds,
	ColGDP,
}

// TextColumns reports which company columns carry text values.
func TextColumns() map[string]bool {
	return map[string]bool{ColConsensus: true}
}
