package usecase

import "github.com/tlb-lemrabott/mauriexchange/internal/entity"

type CurrencyResponse struct {
	ID     int64               `json:"id"`
	Code   string              `json:"code"`
	Name   string              `json:"name"`
	NameFr string              `json:"name_fr"`
	NameAr string              `json:"name_ar"`
	Unity  int                 `json:"unity,omitempty"`
	Rates  []RatePointResponse `json:"rates"`
}

type RatePointResponse struct {
	Day     string `json:"day"`
	Value   string `json:"value"`
	EndDate string `json:"end_date,omitempty"`
}

type ConversionRequest struct {
	From      string
	To        string
	Amount    float64
	UserIP    string
	UserAgent string
}

func toCurrencyResponse(cur entity.Currency, lang string) CurrencyResponse {
	resp := CurrencyResponse{
		ID:     cur.ID,
		Code:   cur.Code,
		Name:   displayName(cur.NameFr, cur.NameAr, lang),
		NameFr: cur.NameFr,
		NameAr: cur.NameAr,
		Unity:  cur.Unity,
		Rates:  toRatePointResponses(cur.Rates),
	}
	return resp
}

func toRatePointResponses(points []entity.RatePoint) []RatePointResponse {
	result := make([]RatePointResponse, 0, len(points))
	for _, p := range points {
		result = append(result, RatePointResponse{
			Day:     p.Day,
			Value:   p.Value,
			EndDate: p.EndDate,
		})
	}
	return result
}
