package service

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tlb-lemrabott/mauriexchange/internal/entity"
	"github.com/tlb-lemrabott/mauriexchange/internal/store"

	"github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("not found")

// ResolvedRate is a successfully parsed rate point. Day is empty when the
// rate carries no date (the base currency sentinel).
type ResolvedRate struct {
	Value float64
	Day   string
}

// RateService is the resolution and conversion engine over the immutable
// rate store. Every method is a pure read; the service is safe for
// concurrent callers.
type RateService struct {
	store  *store.Store
	base   string
	logger *logrus.Logger
}

func NewRateService(st *store.Store, baseCode string, logger *logrus.Logger) *RateService {
	return &RateService{
		store:  st,
		base:   strings.ToUpper(baseCode),
		logger: logger,
	}
}

// BaseCode returns the configured base currency code.
func (r *RateService) BaseCode() string {
	return r.base
}

func (r *RateService) Currencies() []entity.Currency {
	return r.store.All()
}

func (r *RateService) CurrencyByID(id int64) (*entity.Currency, error) {
	cur, ok := r.store.ByID(id)
	if !ok {
		return nil, fmt.Errorf("currency with id %d: %w", id, ErrNotFound)
	}
	return cur, nil
}

func (r *RateService) CurrencyByCode(code string) (*entity.Currency, error) {
	cur, ok := r.store.ByCode(code)
	if !ok {
		return nil, fmt.Errorf("currency with code %s: %w", strings.ToUpper(code), ErrNotFound)
	}
	return cur, nil
}

// SearchByName matches currencies whose French or Arabic display name
// contains the query, case-insensitively.
func (r *RateService) SearchByName(name string) []entity.Currency {
	query := strings.ToLower(name)
	var result []entity.Currency
	for _, cur := range r.store.All() {
		if strings.Contains(strings.ToLower(cur.NameFr), query) ||
			strings.Contains(strings.ToLower(cur.NameAr), query) {
			result = append(result, cur)
		}
	}
	return result
}

// LatestHistory returns up to limit rate points for a currency, newest first.
func (r *RateService) LatestHistory(id int64, limit int) ([]entity.RatePoint, error) {
	cur, err := r.CurrencyByID(id)
	if err != nil {
		return nil, err
	}
	points := make([]entity.RatePoint, len(cur.Rates))
	copy(points, cur.Rates)
	sort.SliceStable(points, func(i, j int) bool { return points[i].Day > points[j].Day })
	if limit > 0 && limit < len(points) {
		points = points[:limit]
	}
	return points, nil
}

// HistoryRange returns the rate points inside [start, end], ascending by day.
func (r *RateService) HistoryRange(id int64, start, end string) ([]entity.RatePoint, error) {
	cur, err := r.CurrencyByID(id)
	if err != nil {
		return nil, err
	}
	var points []entity.RatePoint
	for _, p := range cur.Rates {
		if p.Day >= start && p.Day <= end {
			points = append(points, p)
		}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Day < points[j].Day })
	return points, nil
}

// FindLatest resolves the rate point with the maximal day in the
// currency's history. False when the code is unknown, the history is
// empty, or the winning point's value does not parse as a number. When
// two points share the maximal day, the one stored later wins.
func (r *RateService) FindLatest(code string) (ResolvedRate, bool) {
	cur, ok := r.store.ByCode(code)
	if !ok {
		return ResolvedRate{}, false
	}
	return r.latestOf(cur.Rates)
}

// FindOnDate resolves the rate recorded for the exact day. There is no
// fallback to an earlier date: a day with no matching point is absent.
func (r *RateService) FindOnDate(code, day string) (ResolvedRate, bool) {
	cur, ok := r.store.ByCode(code)
	if !ok {
		return ResolvedRate{}, false
	}
	var match *entity.RatePoint
	for i := range cur.Rates {
		if cur.Rates[i].Day == day {
			match = &cur.Rates[i]
		}
	}
	if match == nil {
		return ResolvedRate{}, false
	}
	value, err := parseRateValue(match.Value)
	if err != nil {
		r.logger.WithField("code", cur.Code).Warnf("Unparseable rate value %q on %s", match.Value, day)
		return ResolvedRate{}, false
	}
	return ResolvedRate{Value: value, Day: day}, true
}

// latestPoint picks the point with the maximal day, ignoring undated
// points. Ties go to the point stored later.
func latestPoint(points []entity.RatePoint) (*entity.RatePoint, bool) {
	var latest *entity.RatePoint
	for i := range points {
		if points[i].Day == "" {
			continue
		}
		if latest == nil || points[i].Day >= latest.Day {
			latest = &points[i]
		}
	}
	return latest, latest != nil
}

func (r *RateService) latestOf(points []entity.RatePoint) (ResolvedRate, bool) {
	latest, ok := latestPoint(points)
	if !ok {
		return ResolvedRate{}, false
	}
	value, err := parseRateValue(latest.Value)
	if err != nil {
		r.logger.Warnf("Unparseable latest rate value %q on %s", latest.Value, latest.Day)
		return ResolvedRate{}, false
	}
	return ResolvedRate{Value: value, Day: latest.Day}, true
}

// findPrevious resolves the point with the maximal day strictly before
// the reference day.
func (r *RateService) findPrevious(points []entity.RatePoint, before string) (ResolvedRate, bool) {
	var prev *entity.RatePoint
	for i := range points {
		if points[i].Day == "" || points[i].Day >= before {
			continue
		}
		if prev == nil || points[i].Day >= prev.Day {
			prev = &points[i]
		}
	}
	if prev == nil {
		return ResolvedRate{}, false
	}
	value, err := parseRateValue(prev.Value)
	if err != nil {
		return ResolvedRate{}, false
	}
	return ResolvedRate{Value: value, Day: prev.Day}, true
}

// DeriveQuote applies the margin fraction symmetrically around the
// official rate.
func (r *RateService) DeriveQuote(official, margin float64) (buy, sell float64) {
	return official * (1 - margin), official * (1 + margin)
}

// ComputeChange formats the period-over-period change as a signed
// percentage with two decimals, e.g. "+1.04%". False when the previous
// value is zero.
func (r *RateService) ComputeChange(latest, previous float64) (string, bool) {
	if previous == 0 {
		return "", false
	}
	pct := ((latest - previous) / previous) * 100
	return fmt.Sprintf("%+.2f%%", pct), true
}

// OfficialRate returns the recorded rate for a code on an exact date.
func (r *RateService) OfficialRate(code, day string) (*entity.OfficialRate, error) {
	cur, ok := r.store.ByCode(code)
	if !ok {
		return nil, fmt.Errorf("currency with code %s: %w", strings.ToUpper(code), ErrNotFound)
	}
	rate, ok := r.FindOnDate(code, day)
	if !ok {
		return nil, fmt.Errorf("no official rate for %s on %s: %w", cur.Code, day, ErrNotFound)
	}
	return &entity.OfficialRate{
		Code:         cur.Code,
		OfficialRate: rate.Value,
		Day:          day,
		Source:       "CACHE",
	}, nil
}

// CompareRates reports the official rate on two exact dates and the
// percent change between them.
func (r *RateService) CompareRates(code, fromDay, toDay string) (*entity.RateComparison, error) {
	cur, ok := r.store.ByCode(code)
	if !ok {
		return nil, fmt.Errorf("currency with code %s: %w", strings.ToUpper(code), ErrNotFound)
	}
	rateFrom, ok := r.FindOnDate(code, fromDay)
	if !ok {
		return nil, fmt.Errorf("no official rate for %s on %s: %w", cur.Code, fromDay, ErrNotFound)
	}
	rateTo, ok := r.FindOnDate(code, toDay)
	if !ok {
		return nil, fmt.Errorf("no official rate for %s on %s: %w", cur.Code, toDay, ErrNotFound)
	}
	cmp := &entity.RateComparison{
		Code:     cur.Code,
		FromDate: fromDay,
		ToDate:   toDay,
		RateFrom: rateFrom.Value,
		RateTo:   rateTo.Value,
	}
	if change, ok := r.ComputeChange(rateTo.Value, rateFrom.Value); ok {
		cmp.ChangePercent = &change
	}
	return cmp, nil
}

// Convert converts amount between two currencies through the MRU base.
// Rate values are MRU per one unit of the currency, so the effective
// from->to rate is fromValue/toValue. A missing rate on either leg fails
// the whole conversion.
func (r *RateService) Convert(from, to string, amount float64) (*entity.Conversion, error) {
	fromCode := strings.ToUpper(from)
	toCode := strings.ToUpper(to)

	fromRate, ok := r.resolveLeg(fromCode)
	if !ok {
		return nil, fmt.Errorf("no latest official rate for currency %s: %w", fromCode, ErrNotFound)
	}
	toRate, ok := r.resolveLeg(toCode)
	if !ok {
		return nil, fmt.Errorf("no latest official rate for currency %s: %w", toCode, ErrNotFound)
	}

	rate := fromRate.Value / toRate.Value

	result := &entity.Conversion{
		From:            fromCode,
		To:              toCode,
		Amount:          amount,
		Rate:            rate,
		ConvertedAmount: amount * rate,
		Day:             laterDay(fromRate.Day, toRate.Day),
	}

	r.logger.WithFields(logrus.Fields{
		"from": fromCode,
		"to":   toCode,
		"rate": rate,
	}).Debug("Converted amount through base currency")

	return result, nil
}

// resolveLeg resolves one side of a conversion. The base currency is a
// sentinel fixed at 1.0 and is never looked up in history.
func (r *RateService) resolveLeg(code string) (ResolvedRate, bool) {
	if code == r.base {
		return ResolvedRate{Value: 1.0}, true
	}
	return r.FindLatest(code)
}

// LatestRates builds the one-row-per-currency snapshot of latest rates
// with derived buy/sell quotes and 24h change. Currencies with no usable
// rate still produce a row with absent derived fields.
func (r *RateService) LatestRates(margin float64) *entity.LatestRates {
	snapshot := &entity.LatestRates{
		Data: make([]entity.LatestRateItem, 0, r.store.Len()),
	}

	for _, cur := range r.store.All() {
		item := entity.LatestRateItem{
			Code: cur.Code,
			Name: cur.NameFr,
		}

		if point, ok := latestPoint(cur.Rates); ok {
			if point.Day > snapshot.Date {
				snapshot.Date = point.Day
			}
			if value, err := parseRateValue(point.Value); err != nil {
				r.logger.WithField("code", cur.Code).Warnf("Unparseable latest rate value %q on %s", point.Value, point.Day)
			} else {
				buy, sell := r.DeriveQuote(value, margin)
				item.OfficialRate = &value
				item.BuyRate = &buy
				item.SellRate = &sell

				if prev, ok := r.findPrevious(cur.Rates, point.Day); ok {
					if change, ok := r.ComputeChange(value, prev.Value); ok {
						item.Change24h = &change
					}
				}
			}
		}

		snapshot.Data = append(snapshot.Data, item)
	}

	return snapshot
}

func parseRateValue(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func laterDay(a, b string) string {
	if a >= b {
		return a
	}
	return b
}
