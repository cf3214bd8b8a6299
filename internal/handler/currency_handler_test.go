package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tlb-lemrabott/mauriexchange/internal/entity"
	"github.com/tlb-lemrabott/mauriexchange/internal/service"
	"github.com/tlb-lemrabott/mauriexchange/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRateUsecase struct {
	mock.Mock
}

func (m *mockRateUsecase) ListCurrencies(lang string) []usecase.CurrencyResponse {
	args := m.Called(lang)
	return args.Get(0).([]usecase.CurrencyResponse)
}

func (m *mockRateUsecase) ListCurrenciesPaginated(lang string, page, size int) usecase.Page[usecase.CurrencyResponse] {
	args := m.Called(lang, page, size)
	return args.Get(0).(usecase.Page[usecase.CurrencyResponse])
}

func (m *mockRateUsecase) GetCurrencyByID(id int64, lang string) (*usecase.CurrencyResponse, error) {
	args := m.Called(id, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CurrencyResponse), args.Error(1)
}

func (m *mockRateUsecase) GetCurrencyByCode(code, lang string) (*usecase.CurrencyResponse, error) {
	args := m.Called(code, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CurrencyResponse), args.Error(1)
}

func (m *mockRateUsecase) SearchCurrencies(name, lang string) ([]usecase.CurrencyResponse, error) {
	args := m.Called(name, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.CurrencyResponse), args.Error(1)
}

func (m *mockRateUsecase) SearchCurrenciesPaginated(name, lang string, page, size int) (usecase.Page[usecase.CurrencyResponse], error) {
	args := m.Called(name, lang, page, size)
	return args.Get(0).(usecase.Page[usecase.CurrencyResponse]), args.Error(1)
}

func (m *mockRateUsecase) LatestHistory(id int64, limit int) ([]usecase.RatePointResponse, error) {
	args := m.Called(id, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.RatePointResponse), args.Error(1)
}

func (m *mockRateUsecase) HistoryRange(id int64, start, end string) ([]usecase.RatePointResponse, error) {
	args := m.Called(id, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.RatePointResponse), args.Error(1)
}

func (m *mockRateUsecase) LatestRates() *entity.LatestRates {
	args := m.Called()
	return args.Get(0).(*entity.LatestRates)
}

func (m *mockRateUsecase) OfficialRate(code, date string) (*entity.OfficialRate, error) {
	args := m.Called(code, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OfficialRate), args.Error(1)
}

func (m *mockRateUsecase) CompareRates(code, fromDate, toDate string) (*entity.RateComparison, error) {
	args := m.Called(code, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RateComparison), args.Error(1)
}

func (m *mockRateUsecase) Convert(ctx context.Context, req usecase.ConversionRequest) (*entity.Conversion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Conversion), args.Error(1)
}

func (m *mockRateUsecase) RecentConversions(ctx context.Context, limit int) ([]entity.ConversionRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ConversionRecord), args.Error(1)
}

func setupTestRouter() (*gin.Engine, *mockRateUsecase) {
	gin.SetMode(gin.TestMode)
	mockUC := new(mockRateUsecase)
	logger, _ := test.NewNullLogger()
	h := NewCurrencyHandler(mockUC, logger)

	router := gin.New()
	h.RegisterRoutes(router)
	return router, mockUC
}

func performRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestListCurrencies(t *testing.T) {
	router, mockUC := setupTestRouter()
	mockUC.On("ListCurrencies", "fr").Return([]usecase.CurrencyResponse{
		{ID: 44, Code: "NOK", Name: "Couronne norvégienne"},
	})

	rec := performRequest(router, "/api/v1/currencies?lang=fr")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Successfully retrieved 1 currencies", resp.Message)
	assert.NotNil(t, resp.Data)

	mockUC.AssertExpectations(t)
}

func TestGetCurrencyByID_InvalidID(t *testing.T) {
	router, _ := setupTestRouter()

	rec := performRequest(router, "/api/v1/currencies/abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
}

func TestGetCurrencyByID_NotFound(t *testing.T) {
	router, mockUC := setupTestRouter()
	mockUC.On("GetCurrencyByID", int64(99), "").Return(nil, service.ErrNotFound)

	rec := performRequest(router, "/api/v1/currencies/99")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)

	mockUC.AssertExpectations(t)
}

func TestGetCurrencyByCode(t *testing.T) {
	router, mockUC := setupTestRouter()
	mockUC.On("GetCurrencyByCode", "NOK", "").Return(&usecase.CurrencyResponse{ID: 44, Code: "NOK"}, nil)

	rec := performRequest(router, "/api/v1/currencies/code/NOK")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	mockUC.AssertExpectations(t)
}

func TestSearchCurrencies_ValidationError(t *testing.T) {
	router, mockUC := setupTestRouter()
	mockUC.On("SearchCurrencies", "", "").Return(nil, usecase.ErrValidation)

	rec := performRequest(router, "/api/v1/currencies/search")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLatestHistory_DefaultLimit(t *testing.T) {
	router, mockUC := setupTestRouter()
	mockUC.On("LatestHistory", int64(44), 10).Return([]usecase.RatePointResponse{
		{Day: "2016-06-15", Value: "11.62"},
	}, nil)

	rec := performRequest(router, "/api/v1/currencies/44/rates/latest")

	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestHistoryRange(t *testing.T) {
	router, mockUC := setupTestRouter()
	mockUC.On("HistoryRange", int64(44), "2016-06-14", "2016-06-15").Return([]usecase.RatePointResponse{
		{Day: "2016-06-14", Value: "11.50"},
		{Day: "2016-06-15", Value: "11.62"},
	}, nil)

	rec := performRequest(router, "/api/v1/currencies/44/rates/range?start=2016-06-14&end=2016-06-15")

	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestLatestRates(t *testing.T) {
	router, mockUC := setupTestRouter()
	mockUC.On("LatestRates").Return(&entity.LatestRates{Date: "2016-06-15"})

	rec := performRequest(router, "/api/v1/rates/latest")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	mockUC.AssertExpectations(t)
}

func TestConvert(t *testing.T) {
	router, mockUC := setupTestRouter()
	mockUC.On("Convert", mock.Anything, mock.MatchedBy(func(req usecase.ConversionRequest) bool {
		return req.From == "MRU" && req.To == "NOK" && req.Amount == 100
	})).Return(&entity.Conversion{From: "MRU", To: "NOK", Amount: 100, ConvertedAmount: 8.61}, nil)

	rec := performRequest(router, "/api/v1/convert?from=MRU&to=NOK&amount=100")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Currency converted successfully", resp.Message)

	mockUC.AssertExpectations(t)
}

func TestConvert_MissingParams(t *testing.T) {
	router, _ := setupTestRouter()

	rec := performRequest(router, "/api/v1/convert?from=MRU")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvert_BadAmount(t *testing.T) {
	router, _ := setupTestRouter()

	rec := performRequest(router, "/api/v1/convert?from=MRU&to=NOK&amount=lots")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOfficialRate_UnexpectedError(t *testing.T) {
	router, mockUC := setupTestRouter()
	mockUC.On("OfficialRate", "NOK", "2016-06-15").Return(nil, assert.AnError)

	rec := performRequest(router, "/api/v1/rates/official?code=NOK&date=2016-06-15")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "An unexpected error occurred", resp.Message)
}

func TestRecentConversions(t *testing.T) {
	router, mockUC := setupTestRouter()
	mockUC.On("RecentConversions", mock.Anything, 5).Return([]entity.ConversionRecord{}, nil)

	rec := performRequest(router, "/api/v1/conversions/recent?limit=5")

	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
}
