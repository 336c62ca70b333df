package calc

import (
	"errors"
	"math"
	"testing"
)

func TestParseInputValid(t *testing.T) {
	tests := []struct {
		name       string
		rawPrice   string
		rawProfit  string
		wantPrice  float64
		wantProfit float64
	}{
		{name: "integers", rawPrice: "10", rawProfit: "1", wantPrice: 10, wantProfit: 1},
		{name: "decimals", rawPrice: "3.03", rawProfit: "100", wantPrice: 3.03, wantProfit: 100},
		{name: "custom profit", rawPrice: "5", rawProfit: "2.5", wantPrice: 5, wantProfit: 2.5},
		{name: "surrounding whitespace", rawPrice: " 7.5 ", rawProfit: " 10 ", wantPrice: 7.5, wantProfit: 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, err := ParseInput(tc.rawPrice, tc.rawProfit)
			if err != nil {
				t.Fatalf("ParseInput(%q, %q): %v", tc.rawPrice, tc.rawProfit, err)
			}
			if math.Abs(in.StockPrice-tc.wantPrice) > epsilon {
				t.Fatalf("expected price %g, got %g", tc.wantPrice, in.StockPrice)
			}
			if math.Abs(in.ProfitTarget-tc.wantProfit) > epsilon {
				t.Fatalf("expected profit %g, got %g", tc.wantProfit, in.ProfitTarget)
			}
		})
	}
}

func TestParseInputRejectsStockPrice(t *testing.T) {
	tests := []struct {
		name     string
		rawPrice string
	}{
		{name: "empty", rawPrice: ""},
		{name: "blank", rawPrice: "   "},
		{name: "non-numeric", rawPrice: "abc"},
		{name: "zero", rawPrice: "0"},
		{name: "negative", rawPrice: "-5"},
		{name: "infinite", rawPrice: "Inf"},
		{name: "absurdly large", rawPrice: "1e13"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseInput(tc.rawPrice, "10")
			if !errors.Is(err, ErrInvalidStockPrice) {
				t.Fatalf("expected ErrInvalidStockPrice, got %v", err)
			}
		})
	}
}

func TestParseInputRejectsProfitTarget(t *testing.T) {
	tests := []struct {
		name      string
		rawProfit string
	}{
		{name: "empty", rawProfit: ""},
		{name: "non-numeric", rawProfit: "lots"},
		{name: "zero", rawProfit: "0"},
		{name: "negative", rawProfit: "-1"},
		{name: "nan", rawProfit: "NaN"},
		{name: "absurdly large", rawProfit: "1e15"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseInput("10", tc.rawProfit)
			if !errors.Is(err, ErrInvalidProfitTarget) {
				t.Fatalf("expected ErrInvalidProfitTarget, got %v", err)
			}
		})
	}
}

func TestValidationErrorsAreDistinct(t *testing.T) {
	if ErrInvalidStockPrice.Message == ErrInvalidProfitTarget.Message {
		t.Fatal("expected distinct messages for price and profit errors")
	}

	if got := ErrInvalidStockPrice.Error(); got != "Please enter a valid stock price" {
		t.Fatalf("unexpected price message %q", got)
	}
	if got := ErrInvalidProfitTarget.Error(); got != "Please enter a valid profit amount" {
		t.Fatalf("unexpected profit message %q", got)
	}
}

func TestParseInputChecksFieldsIndependently(t *testing.T) {
	// Both fields invalid: price is reported, not a collapsed generic error.
	_, err := ParseInput("", "")
	if !errors.Is(err, ErrInvalidStockPrice) {
		t.Fatalf("expected ErrInvalidStockPrice, got %v", err)
	}

	// Valid price, invalid profit: profit is reported.
	_, err = ParseInput("10", "")
	if !errors.Is(err, ErrInvalidProfitTarget) {
		t.Fatalf("expected ErrInvalidProfitTarget, got %v", err)
	}
}
