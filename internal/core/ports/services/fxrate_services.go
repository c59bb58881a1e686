package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// FxRateProvider resolves a conversion rate between two ISO 4217 currencies.
//
// Providers never fail the caller: when the upstream source is unreachable or
// returns garbage, implementations fall back to a rate of 1 so that transfers
// degrade to a same-currency move instead of erroring out.
type FxRateProvider interface {
	Rate(ctx context.Context, from, to string) decimal.Decimal
}
