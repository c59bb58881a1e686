package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// FallbackRate is returned whenever the upstream FX source cannot produce a
// usable rate. Falling back to 1 degrades a conversion to a same-currency
// move instead of failing the caller's transfer.
var FallbackRate = decimal.NewFromInt(1)

// frankfurterResponse is the shape of GET /latest?from=X&to=Y.
type frankfurterResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// fxRateService resolves conversion rates against the free frankfurter API.
type fxRateService struct {
	baseURL string
	client  *http.Client
}

// NewFxRateService creates an FxRateProvider backed by the frankfurter API.
func NewFxRateService(baseURL string, timeout time.Duration) portssvc.FxRateProvider {
	return &fxRateService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

var _ portssvc.FxRateProvider = (*fxRateService)(nil)

// Rate returns the conversion rate from one currency to another. Identical
// currencies short-circuit to 1; every failure mode (transport error, non-200,
// malformed body, missing rate) also resolves to 1 without surfacing an error.
func (s *fxRateService) Rate(ctx context.Context, from, to string) decimal.Decimal {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return FallbackRate
	}

	logger := middleware.GetLoggerFromCtx(ctx)

	reqURL := fmt.Sprintf("%s/latest?from=%s&to=%s", s.baseURL, url.QueryEscape(from), url.QueryEscape(to))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		logger.Warn("Failed to build FX rate request, using fallback rate", slog.String("error", err.Error()))
		return FallbackRate
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("FX rate lookup failed, using fallback rate", slog.String("from", from), slog.String("to", to), slog.String("error", err.Error()))
		return FallbackRate
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("FX rate lookup returned non-200, using fallback rate", slog.String("from", from), slog.String("to", to), slog.Int("status", resp.StatusCode))
		return FallbackRate
	}

	var body frankfurterResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Warn("Failed to decode FX rate response, using fallback rate", slog.String("error", err.Error()))
		return FallbackRate
	}

	rate, ok := body.Rates[to]
	if !ok {
		logger.Warn("FX rate response missing target currency, using fallback rate", slog.String("from", from), slog.String("to", to))
		return FallbackRate
	}

	return decimal.NewFromFloat(rate)
}
