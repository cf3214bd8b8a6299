package jsonfile

// Wire types mirroring the Strapi export layout of the BCM dataset:
// data[].attributes with nested money_today_changes.data[].attributes.

type currencyFile struct {
	Data []currencyEntry `json:"data"`
	Meta any             `json:"meta,omitempty"`
}

type currencyEntry struct {
	ID         int64              `json:"id"`
	Attributes currencyAttributes `json:"attributes"`
}

type currencyAttributes struct {
	NameFr           string      `json:"name_fr"`
	NameAr           string      `json:"name_ar"`
	Unity            int         `json:"unity"`
	Code             string      `json:"code"`
	MoneyTodayChange ratesVolume `json:"money_today_changes"`
}

type ratesVolume struct {
	Data []rateEntry `json:"data"`
}

type rateEntry struct {
	ID         int64          `json:"id"`
	Attributes rateAttributes `json:"attributes"`
}

type rateAttributes struct {
	Day     string `json:"day"`
	Value   string `json:"value"`
	EndDate string `json:"end_date"`
}
