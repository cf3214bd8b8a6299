package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `{
  "data": [
    {
      "id": 44,
      "attributes": {
        "name_fr": "Couronne norvégienne",
        "name_ar": "كرونة نرويجية",
        "unity": 1,
        "code": "NOK",
        "money_today_changes": {
          "data": [
            {"id": 1, "attributes": {"day": "2016-06-14", "value": "11.50", "end_date": "2016-06-15"}},
            {"id": 2, "attributes": {"day": "2016-06-15", "value": "11.62", "end_date": "2016-06-16"}}
          ]
        }
      }
    },
    {
      "id": 45,
      "attributes": {
        "name_fr": "Dollar américain",
        "name_ar": "دولار أمريكي",
        "unity": 1,
        "code": "USD",
        "money_today_changes": {"data": []}
      }
    }
  ]
}`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "currencies.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	logger, _ := test.NewNullLogger()
	loader := NewLoader(writeDataset(t, sampleDataset), logger)

	currencies, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, currencies, 2)

	nok := currencies[0]
	assert.Equal(t, int64(44), nok.ID)
	assert.Equal(t, "NOK", nok.Code)
	assert.Equal(t, "Couronne norvégienne", nok.NameFr)
	require.Len(t, nok.Rates, 2)
	assert.Equal(t, "2016-06-15", nok.Rates[1].Day)
	assert.Equal(t, "11.62", nok.Rates[1].Value)
	assert.Equal(t, "2016-06-16", nok.Rates[1].EndDate)

	usd := currencies[1]
	assert.Equal(t, "USD", usd.Code)
	assert.Empty(t, usd.Rates)
}

func TestLoad_MissingFile(t *testing.T) {
	logger, _ := test.NewNullLogger()
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.json"), logger)

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read data source")
}

func TestLoad_MalformedJSON(t *testing.T) {
	logger, _ := test.NewNullLogger()
	loader := NewLoader(writeDataset(t, `{"data": [`), logger)

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse data source")
}

func TestLoad_SkipsEntriesWithoutCode(t *testing.T) {
	const withBlank = `{
	  "data": [
	    {"id": 1, "attributes": {"name_fr": "Sans code", "code": ""}},
	    {"id": 2, "attributes": {"name_fr": "Euro", "code": "EUR", "money_today_changes": {"data": []}}}
	  ]
	}`

	logger, hook := test.NewNullLogger()
	loader := NewLoader(writeDataset(t, withBlank), logger)

	currencies, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, currencies, 1)
	assert.Equal(t, "EUR", currencies[0].Code)
	assert.NotEmpty(t, hook.Entries)
}

func TestLoad_EmptyDataset(t *testing.T) {
	logger, _ := test.NewNullLogger()
	loader := NewLoader(writeDataset(t, `{"data": []}`), logger)

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no currencies")
}
