package settlement

import (
	"math/big"
)

// Scaling between local fiat amounts and the chain's native unit. The
// published ratio is 100 fiat units to 0.001 native units: with amounts
// carried as cents and the native unit fragmenting into 1e18 wei, one cent
// maps to 1e11 wei. Goal amounts use the whole-unit convention instead, one
// fiat unit to one native unit. Both ratios are fixed publication constants;
// they must be applied identically on submission and on any later
// reconciliation of recorded values.
var (
	weiPerCent     = big.NewInt(100_000_000_000)
	weiPerFiatUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	centsPerUnit   = big.NewInt(100)
)

// CentsToValueWei converts a fiat amount in cents to the proportional
// native value attached to a donation or withdrawal transaction.
func CentsToValueWei(cents int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(cents), weiPerCent)
}

// GoalCentsToSmallestUnit converts a campaign goal in cents to the chain's
// smallest unit under the one-fiat-unit-to-one-native-unit convention used
// for goals.
func GoalCentsToSmallestUnit(cents int64) *big.Int {
	scaled := new(big.Int).Mul(big.NewInt(cents), weiPerFiatUnit)
	return scaled.Div(scaled, centsPerUnit)
}
