package models

// ConversionRequest represents the JSON body for currency conversion
// swagger:model ConversionRequest
type ConversionRequest struct {
	// Source currency
	// required: true
	// example: USD
	From string `json:"from" validate:"required,currency"`

	// Target currency
	// required: true
	// example: EUR
	To string `json:"to" validate:"required,currency"`

	// Amount to convert, 0 < amount <= 1e9
	// required: true
	// example: 100
	Amount *float64 `json:"amount" validate:"required,gt=0,lte=1000000000"`
}

// ConversionResult represents a converted amount
// swagger:model ConversionResult
type ConversionResult struct {
	// example: USD
	From string `json:"from"`

	// example: EUR
	To string `json:"to"`

	// example: 100
	Amount float64 `json:"amount"`

	// Converted amount rounded to 4 decimal places
	// example: 92.1234
	Result float64 `json:"result"`

	// Applied rate rounded to 4 decimal places
	// example: 0.9212
	Rate float64 `json:"rate"`

	// Snapshot fetch time
	// example: 2026-10-17T09:00:00Z
	Date string `json:"date"`
}

// PairRate represents the rate of one currency pair
// swagger:model PairRate
type PairRate struct {
	// example: USD
	From string `json:"from"`

	// example: EUR
	To string `json:"to"`

	// example: 0.921234
	Rate float64 `json:"rate"`

	// example: 2026-10-17T09:00:00Z
	Timestamp string `json:"timestamp"`
}

// CurrencyList represents the available currency codes
// swagger:model CurrencyList
type CurrencyList struct {
	// example: ["EUR","UAH","USD"]
	Currencies []string `json:"currencies"`

	// example: 3
	Count int `json:"count"`
}
