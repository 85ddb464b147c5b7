package models

// Source tells where a RatesSnapshot was served from.
type Source string

const (
	SourceCache Source = "cache"
	SourceAPI   Source = "api"
)

// RawRate is a single record of the NBU exchange feed, received verbatim.
// swagger:model RawRate
type RawRate struct {
	// Numeric ISO 4217 code
	// example: 840
	NumericCode int `json:"r030"`

	// Currency name
	// example: Долар США
	Name string `json:"txt"`

	// Units of base currency per one unit of this currency
	// example: 41.2
	Rate float64 `json:"rate"`

	// Alphabetic ISO 4217 code
	// example: USD
	ISOCode string `json:"cc"`

	// Rate date as published by the bank
	// example: 17.10.2026
	Date string `json:"exchangedate"`
}

// Currency is the domain view of a single rate against the base currency.
// swagger:model Currency
type Currency struct {
	// Three-letter ISO code
	// example: USD
	Code string `json:"code"`

	// Currency name
	// example: Долар США
	Name string `json:"name"`

	// Units of base currency per one unit of Code
	// example: 41.2
	Rate float64 `json:"rate"`

	// Rate date as published by the bank
	// example: 17.10.2026
	Date string `json:"date"`
}

// RatesSnapshot is one complete set of rates fetched at a single point in time.
// swagger:model RatesSnapshot
type RatesSnapshot struct {
	Rates []Currency `json:"rates"`

	// RFC 3339 fetch time shared by every entry
	// example: 2026-10-17T09:00:00Z
	LastUpdated string `json:"lastUpdated"`

	// Where the snapshot was served from
	// example: cache
	Source Source `json:"source"`
}

// Find returns the currency with the given code.
func (s *RatesSnapshot) Find(code string) (Currency, bool) {
	for _, c := range s.Rates {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// Codes returns the codes of every currency in the snapshot, in snapshot order.
func (s *RatesSnapshot) Codes() []string {
	codes := make([]string, 0, len(s.Rates))
	for _, c := range s.Rates {
		codes = append(codes, c.Code)
	}
	return codes
}
