package calc

import "encoding/json"

// CalculateRequest is the JSON body for POST /api/calculate. Fields are
// decoded as json.Number so the validator classifies the raw text itself.
type CalculateRequest struct {
	StockPrice    json.Number `json:"stockPrice"`
	DesiredProfit json.Number `json:"desiredProfit"`
}

// CalculateResponse is the JSON response for POST /api/calculate.
type CalculateResponse struct {
	Investment   float64 `json:"investment"`
	SharesNeeded float64 `json:"sharesNeeded"`
}

// WhatIfRequest is the JSON body for POST /api/whatif.
type WhatIfRequest struct {
	StockPrice    json.Number `json:"stockPrice"`
	DesiredProfit json.Number `json:"desiredProfit"`
	TargetPrice   json.Number `json:"targetPrice"`
}

// WhatIfResponse is the JSON response for POST /api/whatif.
type WhatIfResponse struct {
	SharesNeeded   float64 `json:"sharesNeeded"`
	Delta          float64 `json:"delta"`
	ProjectedValue float64 `json:"projectedValue"`
	ProfitLoss     float64 `json:"profitLoss"`
}
