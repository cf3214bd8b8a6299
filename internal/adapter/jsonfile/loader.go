package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tlb-lemrabott/mauriexchange/internal/entity"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Loader reads the currency dataset from a JSON file once at startup.
// A missing file or malformed document is fatal; individual entries
// without a code are skipped and reported together.
type Loader struct {
	path   string
	logger *logrus.Logger
}

func NewLoader(path string, logger *logrus.Logger) *Loader {
	return &Loader{
		path:   path,
		logger: logger,
	}
}

func (l *Loader) Load() ([]entity.Currency, error) {
	l.logger.Infof("Loading currency data from %s", l.path)

	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read data source: %w", err)
	}

	var file currencyFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse data source: %w", err)
	}

	currencies, err := convertEntries(file.Data)
	if err != nil {
		l.logger.WithError(err).Warn("Some currency entries were skipped")
	}
	if len(currencies) == 0 {
		return nil, errors.New("no currencies in data source")
	}

	l.logger.Infof("Successfully loaded %d currencies", len(currencies))
	return currencies, nil
}

func convertEntries(entries []currencyEntry) ([]entity.Currency, error) {
	var currencies []entity.Currency
	var errs error

	for _, e := range entries {
		if e.Attributes.Code == "" {
			errs = multierr.Append(errs, fmt.Errorf("currency %d has no code", e.ID))
			continue
		}

		cur := entity.Currency{
			ID:     e.ID,
			Code:   e.Attributes.Code,
			NameFr: e.Attributes.NameFr,
			NameAr: e.Attributes.NameAr,
			Unity:  e.Attributes.Unity,
		}
		for _, re := range e.Attributes.MoneyTodayChange.Data {
			cur.Rates = append(cur.Rates, entity.RatePoint{
				ID:      re.ID,
				Day:     re.Attributes.Day,
				Value:   re.Attributes.Value,
				EndDate: re.Attributes.EndDate,
			})
		}
		currencies = append(currencies, cur)
	}

	return currencies, errs
}
