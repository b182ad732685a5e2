// Package billing derives estimated and final totals from a snapshot of an
// order's lines. Nothing here mutates its input.
package billing

import (
	"orderflow/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// QtyEpsilon is the smallest quantity difference treated as an edit.
var QtyEpsilon = decimal.New(1, -4)

// MoneyPlaces is the number of fractional digits kept when presenting money.
const MoneyPlaces = 2

// QtyChanged reports whether next differs from prev by at least QtyEpsilon.
func QtyChanged(prev, next decimal.Decimal) bool {
	return prev.Sub(next).Abs().GreaterThanOrEqual(QtyEpsilon)
}

// LineEstimate is what a line contributes to the estimated bill. Replaced and
// cancelled lines keep their snapshot for history but contribute nothing; a
// replacement carries the estimate for the original.
func LineEstimate(l entities.LineItem) decimal.Decimal {
	if !l.IsLive() {
		return decimal.Zero
	}
	if l.EstimatedTotal.IsPositive() {
		return l.EstimatedTotal
	}
	if l.EstimatedQty.IsPositive() {
		return l.Rate.Mul(l.EstimatedQty)
	}
	return decimal.Zero
}

// EstimatedTotal sums the frozen per-line estimates plus freight.
func EstimatedTotal(lines []entities.LineItem, freight decimal.Decimal) decimal.Decimal {
	total := freight
	for _, l := range lines {
		total = total.Add(LineEstimate(l))
	}
	return total
}

// LineFinal is what a line contributes to the final bill: zero for lines that
// are not countable (replaced, cancelled, or shortages with nothing available).
func LineFinal(l entities.LineItem) decimal.Decimal {
	if !l.Countable() {
		return decimal.Zero
	}
	return l.Rate.Mul(l.EffectiveQty())
}

// FinalTotal sums live countable lines at their effective quantity plus freight.
func FinalTotal(lines []entities.LineItem, freight decimal.Decimal) decimal.Decimal {
	total := freight
	for _, l := range lines {
		total = total.Add(LineFinal(l))
	}
	return total
}

// CheckerRunningTotal is the live total shown while a checker works through an
// order: only lines in checked count, at the edited quantity when one exists.
func CheckerRunningTotal(lines []entities.LineItem, edited map[string]decimal.Decimal, checked map[string]bool) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if !checked[l.ID] || !l.IsLive() || l.Flag == entities.FlagNotAvailable {
			continue
		}
		qty := l.EffectiveQty()
		if q, ok := edited[l.ID]; ok {
			qty = q
		}
		total = total.Add(l.Rate.Mul(qty))
	}
	return total
}

// LineBreakdown is one row of a Bill.
type LineBreakdown struct {
	LineID       string
	ProductRef   string
	Flag         entities.FulfillmentFlag
	Rate         decimal.Decimal
	EffectiveQty decimal.Decimal
	Estimated    decimal.Decimal
	Final        decimal.Decimal
	Counted      bool
}

// Bill is the read-side projection of an order's money.
type Bill struct {
	OrderID        string
	Freight        decimal.Decimal
	EstimatedTotal decimal.Decimal
	FinalTotal     decimal.Decimal
	IsBilled       bool
	Lines          []LineBreakdown
}

// Compute builds a Bill from an order snapshot.
func Compute(o entities.Order, lines []entities.LineItem) Bill {
	b := Bill{
		OrderID:        o.ID,
		Freight:        o.FreightCharge,
		EstimatedTotal: EstimatedTotal(lines, o.FreightCharge),
		FinalTotal:     FinalTotal(lines, o.FreightCharge),
		IsBilled:       o.IsBilled,
		Lines:          make([]LineBreakdown, 0, len(lines)),
	}
	for _, l := range lines {
		b.Lines = append(b.Lines, LineBreakdown{
			LineID:       l.ID,
			ProductRef:   l.ProductRef,
			Flag:         l.Flag,
			Rate:         l.Rate,
			EffectiveQty: l.EffectiveQty(),
			Estimated:    LineEstimate(l),
			Final:        LineFinal(l),
			Counted:      l.Countable(),
		})
	}
	return b
}

// Round presents an amount with MoneyPlaces digits. Sums are never rounded
// before this point.
func Round(v decimal.Decimal) decimal.Decimal {
	return v.Round(MoneyPlaces)
}
