package entity

// LatestRates is the aggregated one-row-per-currency view of the most
// recent official rates with derived buy/sell quotes.
type LatestRates struct {
	Date string           `json:"date,omitempty"`
	Data []LatestRateItem `json:"data"`
}

// LatestRateItem carries nil for every derived field when a currency has
// no usable latest rate; the row itself is always present.
type LatestRateItem struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	OfficialRate *float64 `json:"official_rate"`
	BuyRate      *float64 `json:"buy_rate"`
	SellRate     *float64 `json:"sell_rate"`
	Change24h    *string  `json:"change_24h"`
}

// OfficialRate is the raw recorded rate for a code on an exact date.
type OfficialRate struct {
	Code         string  `json:"code"`
	OfficialRate float64 `json:"official_rate"`
	Day          string  `json:"date"`
	Source       string  `json:"source"`
}

// RateComparison reports the official rate on two dates and the percent
// change between them.
type RateComparison struct {
	Code          string  `json:"code"`
	FromDate      string  `json:"from_date"`
	ToDate        string  `json:"to_date"`
	RateFrom      float64 `json:"rate_from"`
	RateTo        float64 `json:"rate_to"`
	ChangePercent *string `json:"change_percent"`
}
