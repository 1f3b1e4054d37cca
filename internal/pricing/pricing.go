// Package pricing derives line-item prices from sketch dimensions and
// keeps quotation totals consistent with their items.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/malonic/quotehub-backend/internal/sketch"
)

// DeriveUnitPrice computes the area-based price for one unit:
// round2(widthMeters x heightMeters x rate).
func DeriveUnitPrice(cfg *sketch.Configuration, rate decimal.Decimal) decimal.Decimal {
	if cfg == nil {
		return decimal.Zero
	}
	area := decimal.NewFromFloat(cfg.AreaSquareMeters())
	return area.Mul(rate).Round(2)
}

// LineTotal is always quantity x unit price. It is recomputed from its
// inputs on every call, never stored independently.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// AggregateTotal sums line totals and rounds once at the aggregate
// level. Per-item values are already at 2 decimals, so rounding here
// cannot drift under repeated recomputation.
func AggregateTotal(lineTotals []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, t := range lineTotals {
		total = total.Add(t)
	}
	return total.Round(2)
}
