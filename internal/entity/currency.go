package entity

// Currency is one tradable currency from the BCM dataset, together with
// its full history of daily official rates against MRU.
type Currency struct {
	ID     int64       `json:"id"`
	Code   string      `json:"code"`
	NameFr string      `json:"name_fr"`
	NameAr string      `json:"name_ar"`
	Unity  int         `json:"unity,omitempty"`
	Rates  []RatePoint `json:"rates"`
}

// RatePoint is a single dated observation. Day is a zero-padded
// YYYY-MM-DD string, so lexicographic and chronological order coincide.
// Value stays textual as published; parsing happens at resolution time.
type RatePoint struct {
	ID      int64  `json:"id,omitempty"`
	Day     string `json:"day"`
	Value   string `json:"value"`
	EndDate string `json:"end_date,omitempty"`
}
