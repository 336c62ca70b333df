package calc

import (
	"strconv"
	"strings"
)

// Input is a validated calculation input.
type Input struct {
	StockPrice   float64
	ProfitTarget float64
}

// ValidationError classifies a rejected input field. Message is the exact
// text shown to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	// ErrInvalidStockPrice rejects an empty, non-numeric, or non-positive price.
	ErrInvalidStockPrice = &ValidationError{
		Field:   "stockPrice",
		Message: "Please enter a valid stock price",
	}

	// ErrInvalidProfitTarget rejects an empty, non-numeric, or non-positive profit.
	ErrInvalidProfitTarget = &ValidationError{
		Field:   "desiredProfit",
		Message: "Please enter a valid profit amount",
	}

	// ErrInvalidTargetPrice rejects a bad what-if target price.
	ErrInvalidTargetPrice = &ValidationError{
		Field:   "targetPrice",
		Message: "Please enter a valid target price",
	}
)

// ParseInput parses and validates the raw text inputs for a calculation.
// The two fields are checked independently so each failure class reports
// its own message.
func ParseInput(rawPrice, rawProfit string) (Input, error) {
	price, ok := parsePositive(rawPrice)
	if !ok {
		return Input{}, ErrInvalidStockPrice
	}

	profit, ok := parsePositive(rawProfit)
	if !ok {
		return Input{}, ErrInvalidProfitTarget
	}

	return Input{StockPrice: price, ProfitTarget: profit}, nil
}

func parsePositive(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !inRange(v) {
		return 0, false
	}

	return v, true
}
