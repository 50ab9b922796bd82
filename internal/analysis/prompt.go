// Package analysis turns daily report rows into model prompts and fans
// the requests out in rate-limited batches.
package analysis

import (
	"fmt"
	"strings"

	"github.com/ydg06081/dong/internal/report"
	"github.com/ydg06081/dong/internal/timeseries"
)

// financePromptTemplate frames one day of company financials for the model
// ⭐ SSOT: 재무 분석 프롬프트는 여기서만 정의
const financePromptTemplate = `Role: You are a seasoned Wall Street equity analyst.

Goal: Analyze the financial data of %s provided below and derive insights that support an investment decision.

Data description:
- price: closing price on the date
- per: price to earnings ratio (price / TTM EPS)
- revenue: quarterly revenue
- operating income: quarterly operating income
- operating margin: operating income / revenue
- net income: quarterly net income
- revenue growth YoY: revenue growth versus the same quarter a year ago
- net income growth YoY: net income growth versus the same quarter a year ago
- eps estimate: analyst consensus
- eps actual: reported EPS
- consensus: beat / miss / match
- surprise: earnings surprise ratio
- buyback: share repurchase amount (negative means buying)
- dividend: dividends paid

Requests:
1. [Valuation] Judge whether the PER level is reasonable, overvalued or undervalued.
2. [Earnings] Analyze revenue / operating income / net income growth and whether consensus was beaten.
3. [Profitability] Analyze the level and trend of the operating margin.
4. [Shareholder return] Analyze buybacks and dividend payments.
5. [Opinion] Combine the above into a short investment opinion.

Mark guesses clearly as guesses and separate facts from opinion.
Avoid exaggerated optimism or pessimism and stay objective.

Financial data:
%s

I am an investment professional myself, so skip any investment disclaimers.`

// macroPromptTemplate frames one day of macro data for the model
const macroPromptTemplate = `Role: You are a seasoned Wall Street macro strategist.

Goal: Analyze the [date, bitcoin price, US policy rate, US GDP] data provided below and derive key insights for an equity investment strategy.

Data description:
- bitcoin price: read as a leading indicator of market liquidity and risk appetite
- US policy rate: read as a headwind for equity valuations (PER) and the cost of capital
- US GDP: read as the recession gauge and the earnings base of corporations

Requests:
1. [Correlation] Analyze how rate changes and the GDP trend affected bitcoin (risk appetite), e.g. whether bitcoin held up during hiking phases.
2. [Regime] Based on the data, decide which of the four regimes the economy is in as of the latest data point:
   - Goldilocks (growth up, rates stable)
   - Stagflation (growth down, inflation/rates up)
   - Recession (growth down, rates down)
   - Overheating (growth up, rates up)
3. [Strategy] Propose an equity portfolio strategy for that regime:
   - Increase or reduce exposure (aggressive vs raising cash)
   - Favored sectors (e.g. rates down + slowing growth: staples/dividend stocks; rates stable + bitcoin rising: tech/growth)

Input_text:
%s`

// newsPromptTemplate frames one article for the model
const newsPromptTemplate = `Role: You are a seasoned Wall Street equity analyst.

Goal: Read the news article below and summarize what it means for equity investors: affected companies or sectors, direction of the impact, and how durable it is likely to be. Separate facts reported in the article from your own interpretation.

Article:
%s`

// NewsPrompt builds the analyst prompt for one news article
func NewsPrompt(articleText string) string {
	return fmt.Sprintf(newsPromptTemplate, articleText)
}

// FinancePrompt builds the analyst prompt for one company day
func FinancePrompt(company, rowText string) string {
	return fmt.Sprintf(financePromptTemplate, company, rowText)
}

// MacroPrompt builds the strategist prompt for one macro day
func MacroPrompt(rowText string) string {
	return fmt.Sprintf(macroPromptTemplate, rowText)
}

// FormatFinanceRow renders one row of a company report as the prompt
// data block. Missing cells print as N/A.
func FormatFinanceRow(t *timeseries.DailyTable, i int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "date: %s\n", t.Dates[i].Format("2006-01-02"))
	fmt.Fprintf(&b, "price: %s\n", money(t, report.ColPrice, i))
	fmt.Fprintf(&b, "per: %s\n", num(t, report.ColPER, i))
	fmt.Fprintf(&b, "revenue: %s\n", money(t, report.ColRevenue, i))
	fmt.Fprintf(&b, "operating income: %s\n", money(t, report.ColOperatingIncome, i))
	fmt.Fprintf(&b, "operating margin: %s\n", pct(t, report.ColOperatingMargin, i))
	fmt.Fprintf(&b, "net income: %s\n", money(t, report.ColNetIncome, i))
	fmt.Fprintf(&b, "revenue growth YoY: %s\n", pct(t, report.ColRevenueYoY, i))
	fmt.Fprintf(&b, "net income growth YoY: %s\n", pct(t, report.ColNetIncomeYoY, i))
	fmt.Fprintf(&b, "eps estimate: %s\n", num(t, report.ColEPSEstimate, i))
	fmt.Fprintf(&b, "eps actual: %s\n", num(t, report.ColEPSActual, i))
	fmt.Fprintf(&b, "consensus: %s\n", text(t, report.ColConsensus, i))
	fmt.Fprintf(&b, "surprise: %s\n", pct(t, report.ColSurprise, i))
	fmt.Fprintf(&b, "buyback: %s\n", money(t, report.ColBuyback, i))
	fmt.Fprintf(&b, "dividend: %s", money(t, report.ColDividend, i))
	return b.String()
}

// FormatMacroRow renders one row of the macro report as the prompt
// data block.
func FormatMacroRow(t *timeseries.DailyTable, i int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "date: %s\n", t.Dates[i].Format("2006-01-02"))
	fmt.Fprintf(&b, "bitcoin price: %s\n", money(t, report.ColBitcoin, i))
	fmt.Fprintf(&b, "US policy rate: %s\n", pct(t, report.ColFedFunds, i))
	fmt.Fprintf(&b, "US GDP: %s", money(t, report.ColGDP, i))
	return b.String()
}

func money(t *timeseries.DailyTable, name string, i int) string {
	v := cell(t, name, i)
	if !v.Valid {
		return "N/A"
	}
	return "$" + formatThousands(v.Float)
}

func pct(t *timeseries.DailyTable, name string, i int) string {
	v := cell(t, name, i)
	if !v.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", v.Float)
}

func num(t *timeseries.DailyTable, name string, i int) string {
	v := cell(t, name, i)
	if !v.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v.Float)
}

func text(t *timeseries.DailyTable, name string, i int) string {
	col := t.Text(name)
	if col == nil || col[i] == "" {
		return "N/A"
	}
	return col[i]
}

func cell(t *timeseries.DailyTable, name string, i int) timeseries.Value {
	col := t.Num(name)
	if col == nil {
		return timeseries.Missing()
	}
	return col[i]
}

// formatThousands renders a dollar amount with comma grouping, two
// decimals when fractional
func formatThousands(f float64) string {
	neg := f < 0
	if neg {
		f = -f
	}

	s := fmt.Sprintf("%.2f", f)
	intPart := s[:len(s)-3]
	frac := s[len(s)-2:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String()
	if frac != "00" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
