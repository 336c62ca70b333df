package calc

import (
	"errors"
	"math"
)

// centMove is the price movement the profit target is expressed against:
// one cent. To earn profitTarget dollars per one-cent gain you need
// profitTarget / 0.01 shares.
const centMove = 0.01

// maxInput is the upper bound for stock price, profit target, and target
// price. Values above it (or non-finite values) are rejected so that the
// investment product stays well inside float64 range.
const maxInput = 1e12

// ErrInvalidInput is returned by Compute and Project when an input slips
// past the validator: non-positive, non-finite, or beyond maxInput.
var ErrInvalidInput = errors.New("invalid calculation input")

// PresetProfits are the suggested profit-per-cent targets; any positive
// custom value is also accepted.
var PresetProfits = [3]float64{1, 10, 100}

// Result is the output of a single investment calculation.
type Result struct {
	SharesNeeded float64
	Investment   float64
}

// Projection is a hypothetical outcome at a target price. It is derived from
// a Result and never persisted.
type Projection struct {
	Delta          float64
	ProjectedValue float64
	ProfitLoss     float64
}

// Compute returns the shares and capital required so that a one-cent price
// increase yields profitTarget dollars. Pure and deterministic; for all valid
// inputs Investment == stockPrice * profitTarget * 100.
func Compute(stockPrice, profitTarget float64) (Result, error) {
	if !inRange(stockPrice) || !inRange(profitTarget) {
		return Result{}, ErrInvalidInput
	}

	shares := profitTarget / centMove

	return Result{
		SharesNeeded: shares,
		Investment:   shares * stockPrice,
	}, nil
}

// Project computes the what-if outcome of res at targetPrice, reusing the
// share count from the original calculation. Defined only for positive
// finite prices.
func Project(res Result, stockPrice, targetPrice float64) (Projection, error) {
	if !inRange(stockPrice) || !inRange(targetPrice) {
		return Projection{}, ErrInvalidInput
	}

	delta := targetPrice - stockPrice

	return Projection{
		Delta:          delta,
		ProjectedValue: res.SharesNeeded * targetPrice,
		ProfitLoss:     res.SharesNeeded * delta,
	}, nil
}

func inRange(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 && v <= maxInput
}
