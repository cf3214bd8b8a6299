package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tlb-lemrabott/mauriexchange/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrValidation marks request input rejected before it reaches the engine.
var ErrValidation = errors.New("invalid request")

var (
	codeRegexp = regexp.MustCompile(`^[A-Z]{3}$`)
	dateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

type CurrencyUsecase struct {
	engine   RateEngine
	recorder ConversionRecorder
	logger   *logrus.Logger

	margin          float64
	defaultPageSize int
	maxPageSize     int
}

func NewCurrencyUsecase(engine RateEngine, recorder ConversionRecorder, logger *logrus.Logger, margin float64, defaultPageSize, maxPageSize int) *CurrencyUsecase {
	return &CurrencyUsecase{
		engine:          engine,
		recorder:        recorder,
		logger:          logger,
		margin:          margin,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

func (uc *CurrencyUsecase) ListCurrencies(lang string) []CurrencyResponse {
	currencies := uc.engine.Currencies()
	result := make([]CurrencyResponse, 0, len(currencies))
	for _, cur := range currencies {
		result = append(result, toCurrencyResponse(cur, lang))
	}
	return result
}

func (uc *CurrencyUsecase) ListCurrenciesPaginated(lang string, page, size int) Page[CurrencyResponse] {
	page, size = uc.clampPage(page, size)
	return paginate(uc.ListCurrencies(lang), page, size)
}

func (uc *CurrencyUsecase) GetCurrencyByID(id int64, lang string) (*CurrencyResponse, error) {
	cur, err := uc.engine.CurrencyByID(id)
	if err != nil {
		return nil, err
	}
	resp := toCurrencyResponse(*cur, lang)
	return &resp, nil
}

func (uc *CurrencyUsecase) GetCurrencyByCode(code, lang string) (*CurrencyResponse, error) {
	normalized, err := normalizeCode(code)
	if err != nil {
		uc.logger.Warnf("Bad currency code format %q", code)
		return nil, err
	}
	cur, err := uc.engine.CurrencyByCode(normalized)
	if err != nil {
		return nil, err
	}
	resp := toCurrencyResponse(*cur, lang)
	return &resp, nil
}

func (uc *CurrencyUsecase) SearchCurrencies(name, lang string) ([]CurrencyResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: 'name' must not be blank", ErrValidation)
	}
	matches := uc.engine.SearchByName(name)
	result := make([]CurrencyResponse, 0, len(matches))
	for _, cur := range matches {
		result = append(result, toCurrencyResponse(cur, lang))
	}
	return result, nil
}

func (uc *CurrencyUsecase) SearchCurrenciesPaginated(name, lang string, page, size int) (Page[CurrencyResponse], error) {
	matches, err := uc.SearchCurrencies(name, lang)
	if err != nil {
		return Page[CurrencyResponse]{}, err
	}
	page, size = uc.clampPage(page, size)
	return paginate(matches, page, size), nil
}

func (uc *CurrencyUsecase) LatestHistory(id int64, limit int) ([]RatePointResponse, error) {
	if limit < 1 {
		limit = 10
	}
	points, err := uc.engine.LatestHistory(id, limit)
	if err != nil {
		return nil, err
	}
	return toRatePointResponses(points), nil
}

func (uc *CurrencyUsecase) HistoryRange(id int64, start, end string) ([]RatePointResponse, error) {
	if err := validateDate(start); err != nil {
		return nil, err
	}
	if err := validateDate(end); err != nil {
		return nil, err
	}
	if start > end {
		return nil, fmt.Errorf("%w: 'start' must not be after 'end'", ErrValidation)
	}
	points, err := uc.engine.HistoryRange(id, start, end)
	if err != nil {
		return nil, err
	}
	return toRatePointResponses(points), nil
}

func (uc *CurrencyUsecase) LatestRates() *entity.LatestRates {
	return uc.engine.LatestRates(uc.margin)
}

func (uc *CurrencyUsecase) OfficialRate(code, date string) (*entity.OfficialRate, error) {
	normalized, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	return uc.engine.OfficialRate(normalized, date)
}

func (uc *CurrencyUsecase) CompareRates(code, fromDate, toDate string) (*entity.RateComparison, error) {
	normalized, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	if err := validateDate(fromDate); err != nil {
		return nil, err
	}
	if err := validateDate(toDate); err != nil {
		return nil, err
	}
	return uc.engine.CompareRates(normalized, fromDate, toDate)
}

// Convert validates the request, runs the conversion and records the
// audit row. Recording is best-effort: a storage failure is logged and
// never fails the conversion itself.
func (uc *CurrencyUsecase) Convert(ctx context.Context, req ConversionRequest) (*entity.Conversion, error) {
	from, err := normalizeCode(req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: 'from' must be a 3-letter currency code", ErrValidation)
	}
	to, err := normalizeCode(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: 'to' must be a 3-letter currency code", ErrValidation)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: 'amount' must be a non-negative number", ErrValidation)
	}

	result, err := uc.engine.Convert(from, to, req.Amount)
	if err != nil {
		return nil, err
	}

	record := entity.ConversionRecord{
		ID:              uuid.NewString(),
		FromCode:        result.From,
		ToCode:          result.To,
		Amount:          decimal.NewFromFloat(result.Amount),
		Rate:            decimal.NewFromFloat(result.Rate),
		ConvertedAmount: decimal.NewFromFloat(result.ConvertedAmount),
		UserIP:          req.UserIP,
		UserAgent:       req.UserAgent,
		CreatedAt:       time.Now().UTC(),
	}
	if err := uc.recorder.StoreConversion(ctx, record); err != nil {
		uc.logger.WithError(err).Warn("Failed to record conversion, continuing")
	}

	uc.logger.Infof("Converted %.2f %s to %s at rate %.6f", result.Amount, result.From, result.To, result.Rate)
	return result, nil
}

func (uc *CurrencyUsecase) RecentConversions(ctx context.Context, limit int) ([]entity.ConversionRecord, error) {
	if limit < 1 {
		limit = uc.defaultPageSize
	}
	if limit > uc.maxPageSize {
		limit = uc.maxPageSize
	}
	return uc.recorder.RecentConversions(ctx, limit)
}

func (uc *CurrencyUsecase) clampPage(page, size int) (int, int) {
	if size < 1 {
		size = uc.defaultPageSize
	}
	if size > uc.maxPageSize {
		size = uc.maxPageSize
	}
	if page < 0 {
		page = 0
	}
	return page, size
}

func normalizeCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !codeRegexp.MatchString(normalized) {
		return "", fmt.Errorf("%w: invalid currency code format", ErrValidation)
	}
	return normalized, nil
}

func validateDate(date string) error {
	if !dateRegexp.MatchString(date) {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrValidation)
	}
	return nil
}
