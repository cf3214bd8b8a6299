package usecase

import (
	"context"

	"github.com/tlb-lemrabott/mauriexchange/internal/entity"
)

// RateUsecase is the boundary the HTTP handlers talk to.
type RateUsecase interface {
	ListCurrencies(lang string) []CurrencyResponse
	ListCurrenciesPaginated(lang string, page, size int) Page[CurrencyResponse]
	GetCurrencyByID(id int64, lang string) (*CurrencyResponse, error)
	GetCurrencyByCode(code, lang string) (*CurrencyResponse, error)
	SearchCurrencies(name, lang string) ([]CurrencyResponse, error)
	SearchCurrenciesPaginated(name, lang string, page, size int) (Page[CurrencyResponse], error)
	LatestHistory(id int64, limit int) ([]RatePointResponse, error)
	HistoryRange(id int64, start, end string) ([]RatePointResponse, error)
	LatestRates() *entity.LatestRates
	OfficialRate(code, date string) (*entity.OfficialRate, error)
	CompareRates(code, fromDate, toDate string) (*entity.RateComparison, error)
	Convert(ctx context.Context, req ConversionRequest) (*entity.Conversion, error)
	RecentConversions(ctx context.Context, limit int) ([]entity.ConversionRecord, error)
}

// RateEngine is the slice of the rate service the usecase depends on.
type RateEngine interface {
	Currencies() []entity.Currency
	CurrencyByID(id int64) (*entity.Currency, error)
	CurrencyByCode(code string) (*entity.Currency, error)
	SearchByName(name string) []entity.Currency
	LatestHistory(id int64, limit int) ([]entity.RatePoint, error)
	HistoryRange(id int64, start, end string) ([]entity.RatePoint, error)
	OfficialRate(code, day string) (*entity.OfficialRate, error)
	CompareRates(code, fromDay, toDay string) (*entity.RateComparison, error)
	Convert(from, to string, amount float64) (*entity.Conversion, error)
	LatestRates(margin float64) *entity.LatestRates
}

// ConversionRecorder persists the audit trail of performed conversions.
type ConversionRecorder interface {
	StoreConversion(ctx context.Context, record entity.ConversionRecord) error
	RecentConversions(ctx context.Context, limit int) ([]entity.ConversionRecord, error)
}
