package marketdata

import (
	"github.com/shopspring/decimal"

	"github.com/joripage/limit-orderbook/pkg/orderbook"
)

// FormatPrice turns a price in minor units into a decimal with scale
// fractional digits: 10150 at scale 2 is 101.50.
func FormatPrice(p orderbook.Price, scale int32) decimal.Decimal {
	return decimal.New(int64(p), -scale)
}
