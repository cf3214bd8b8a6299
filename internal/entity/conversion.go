package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion is the result of converting an amount between two currencies
// using their latest official rates. Day is empty for base-to-base
// conversions, where no dated rate is involved.
type Conversion struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	Amount          float64 `json:"amount"`
	Rate            float64 `json:"rate"`
	ConvertedAmount float64 `json:"converted_amount"`
	Day             string  `json:"date,omitempty"`
}

// ConversionRecord is the persisted audit row for one conversion request.
type ConversionRecord struct {
	ID              string          `db:"id" json:"id"`
	FromCode        string          `db:"from_code" json:"from_code"`
	ToCode          string          `db:"to_code" json:"to_code"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Rate            decimal.Decimal `db:"rate" json:"rate"`
	ConvertedAmount decimal.Decimal `db:"converted_amount" json:"converted_amount"`
	UserIP          string          `db:"user_ip" json:"user_ip,omitempty"`
	UserAgent       string          `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
