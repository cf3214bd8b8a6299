package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tlb-lemrabott/mauriexchange/internal/service"
	"github.com/tlb-lemrabott/mauriexchange/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CurrencyHandler struct {
	usecase usecase.RateUsecase
	logger  *logrus.Logger
}

func NewCurrencyHandler(uc usecase.RateUsecase, logger *logrus.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		usecase: uc,
		logger:  logger,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1.
func (h *CurrencyHandler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/api/v1")

	v1.GET("/currencies", h.ListCurrencies)
	v1.GET("/currencies/paginated", h.ListCurrenciesPaginated)
	v1.GET("/currencies/search", h.SearchCurrencies)
	v1.GET("/currencies/search/paginated", h.SearchCurrenciesPaginated)
	v1.GET("/currencies/code/:code", h.GetCurrencyByCode)
	v1.GET("/currencies/:id", h.GetCurrencyByID)
	v1.GET("/currencies/:id/rates/latest", h.LatestHistory)
	v1.GET("/currencies/:id/rates/range", h.HistoryRange)

	v1.GET("/rates/latest", h.LatestRates)
	v1.GET("/rates/official", h.OfficialRate)
	v1.GET("/rates/compare", h.CompareRates)

	v1.GET("/convert", h.Convert)
	v1.GET("/conversions/recent", h.RecentConversions)
}

func (h *CurrencyHandler) ListCurrencies(c *gin.Context) {
	currencies := h.usecase.ListCurrencies(c.Query("lang"))
	respondOK(c, currencies, fmt.Sprintf("Successfully retrieved %d currencies", len(currencies)))
}

func (h *CurrencyHandler) ListCurrenciesPaginated(c *gin.Context) {
	page := intQuery(c, "page", 0)
	size := intQuery(c, "size", 0)
	result := h.usecase.ListCurrenciesPaginated(c.Query("lang"), page, size)
	respondOK(c, result, "Successfully retrieved currencies with pagination")
}

func (h *CurrencyHandler) GetCurrencyByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid currency id")
		return
	}

	currency, err := h.usecase.GetCurrencyByID(id, c.Query("lang"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	respondOK(c, currency, "Successfully retrieved currency")
}

func (h *CurrencyHandler) GetCurrencyByCode(c *gin.Context) {
	currency, err := h.usecase.GetCurrencyByCode(c.Param("code"), c.Query("lang"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	respondOK(c, currency, "Successfully retrieved currency")
}

func (h *CurrencyHandler) SearchCurrencies(c *gin.Context) {
	currencies, err := h.usecase.SearchCurrencies(c.Query("name"), c.Query("lang"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	respondOK(c, currencies, fmt.Sprintf("Found %d currencies matching %q", len(currencies), c.Query("name")))
}

func (h *CurrencyHandler) SearchCurrenciesPaginated(c *gin.Context) {
	page := intQuery(c, "page", 0)
	size := intQuery(c, "size", 0)
	result, err := h.usecase.SearchCurrenciesPaginated(c.Query("name"), c.Query("lang"), page, size)
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	respondOK(c, result, fmt.Sprintf("Found currencies matching %q with pagination", c.Query("name")))
}

func (h *CurrencyHandler) LatestHistory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid currency id")
		return
	}

	points, err := h.usecase.LatestHistory(id, intQuery(c, "limit", 10))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	respondOK(c, points, "Successfully retrieved latest exchange rates")
}

func (h *CurrencyHandler) HistoryRange(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid currency id")
		return
	}

	points, err := h.usecase.HistoryRange(id, c.Query("start"), c.Query("end"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	respondOK(c, points, "Successfully retrieved exchange rates for range")
}

func (h *CurrencyHandler) LatestRates(c *gin.Context) {
	respondOK(c, h.usecase.LatestRates(), "Successfully retrieved latest rates")
}

func (h *CurrencyHandler) OfficialRate(c *gin.Context) {
	rate, err := h.usecase.OfficialRate(c.Query("code"), c.Query("date"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	respondOK(c, rate, "Successfully retrieved official rate")
}

func (h *CurrencyHandler) CompareRates(c *gin.Context) {
	comparison, err := h.usecase.CompareRates(c.Query("code"), c.Query("from"), c.Query("to"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	respondOK(c, comparison, "Successfully compared rates")
}

func (h *CurrencyHandler) Convert(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		respondError(c, http.StatusBadRequest, "'from' and 'to' parameters are required")
		return
	}

	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "'amount' must be a number")
		return
	}

	result, err := h.usecase.Convert(c.Request.Context(), usecase.ConversionRequest{
		From:      from,
		To:        to,
		Amount:    amount,
		UserIP:    c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	respondOK(c, result, "Currency converted successfully")
}

func (h *CurrencyHandler) RecentConversions(c *gin.Context) {
	records, err := h.usecase.RecentConversions(c.Request.Context(), intQuery(c, "limit", 0))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	respondOK(c, records, "Successfully retrieved recent conversions")
}

// respondWithError maps engine and validation errors onto HTTP statuses.
func (h *CurrencyHandler) respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		h.logger.WithError(err).Error("Unexpected error handling request")
		respondError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
