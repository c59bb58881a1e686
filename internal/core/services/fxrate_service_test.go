package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fintrackr/fintrackr-backend/internal/core/services"
)

func TestFxRate_ParsesUpstreamRate(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.92}}`))
	}))
	defer srv.Close()

	svc := services.NewFxRateService(srv.URL, time.Second)
	rate := svc.Rate(context.Background(), "usd", "eur")

	assert.True(t, rate.Equal(decimal.NewFromFloat(0.92)), "got %s", rate)
	assert.Equal(t, "/latest?from=USD&to=EUR", gotPath)
}

func TestFxRate_SameCurrencySkipsLookup(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	svc := services.NewFxRateService(srv.URL, time.Second)
	rate := svc.Rate(context.Background(), "USD", " usd ")

	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
	assert.Zero(t, calls)
}

func TestFxRate_FallsBackOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	svc := services.NewFxRateService(srv.URL, time.Second)
	rate := svc.Rate(context.Background(), "USD", "XXX")

	assert.True(t, rate.Equal(services.FallbackRate))
}

func TestFxRate_FallsBackOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	svc := services.NewFxRateService(srv.URL, time.Second)
	rate := svc.Rate(context.Background(), "USD", "EUR")

	assert.True(t, rate.Equal(services.FallbackRate))
}

func TestFxRate_FallsBackOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	svc := services.NewFxRateService(srv.URL, time.Second)
	rate := svc.Rate(context.Background(), "USD", "EUR")

	assert.True(t, rate.Equal(services.FallbackRate))
}

func TestFxRate_FallsBackOnMissingTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"GBP":0.79}}`))
	}))
	defer srv.Close()

	svc := services.NewFxRateService(srv.URL, time.Second)
	rate := svc.Rate(context.Background(), "USD", "EUR")

	assert.True(t, rate.Equal(services.FallbackRate))
}
