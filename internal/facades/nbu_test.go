package facades

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nbuBody = `[
	{"r030":840,"txt":"Долар США","rate":40.0,"cc":"USD","exchangedate":"17.10.2026"},
	{"r030":978,"txt":"Євро","rate":44.5,"cc":"EUR","exchangedate":"17.10.2026"}
]`

func TestFetchRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "json", r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(nbuBody))
	}))
	defer server.Close()

	facade := NewNBURatesHTTPFacade(server.URL+"/exchange?json", time.Second)

	rates, err := facade.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.RawRate{
		{NumericCode: 840, Name: "Долар США", Rate: 40.0, ISOCode: "USD", Date: "17.10.2026"},
		{NumericCode: 978, Name: "Євро", Rate: 44.5, ISOCode: "EUR", Date: "17.10.2026"},
	}, rates)
}

func TestFetchRates_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non 2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not":"an array"`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			facade := NewNBURatesHTTPFacade(server.URL, time.Second)

			rates, err := facade.FetchRates(context.Background())
			assert.ErrorIs(t, err, ErrSourceUnavailable)
			assert.Nil(t, rates)
		})
	}
}

func TestFetchRates_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	facade := NewNBURatesHTTPFacade(url, time.Second)

	_, err := facade.FetchRates(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFetchRates_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(nbuBody))
	}))
	defer server.Close()

	facade := NewNBURatesHTTPFacade(server.URL, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := facade.FetchRates(ctx)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestNewNBURatesHTTPFacade_Defaults(t *testing.T) {
	facade := NewNBURatesHTTPFacade("  ", 0)
	assert.Equal(t, DefaultNBUURL, facade.url)
	assert.Zero(t, facade.client.Timeout)
}
