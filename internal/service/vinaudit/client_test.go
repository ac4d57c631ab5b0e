package vinaudit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"RaptorExplorer/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketValue(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   models.ProviderStatus
		prices models.AggregatePrices
	}{
		{
			name:   "numbers",
			status: http.StatusOK,
			body:   `{"success":true,"prices":{"average":50000,"below":46000,"above":54000}}`,
			want:   models.ProviderOK,
			prices: models.AggregatePrices{Average: 50000, Below: 46000, Above: 54000},
		},
		{
			name:   "strings",
			status: http.StatusOK,
			body:   `{"success":true,"prices":{"average":"50,000.5","below":"46000"}}`,
			want:   models.ProviderOK,
			prices: models.AggregatePrices{Average: 50000.5, Below: 46000},
		},
		{
			name:   "unsuccessful",
			status: http.StatusOK,
			body:   `{"success":false}`,
			want:   models.ProviderEmpty,
		},
		{
			name:   "missing below",
			status: http.StatusOK,
			body:   `{"success":true,"prices":{"average":50000}}`,
			want:   models.ProviderFailed,
		},
		{
			name:   "unparseable average",
			status: http.StatusOK,
			body:   `{"success":true,"prices":{"average":"n/a","below":1}}`,
			want:   models.ProviderFailed,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `oops`,
			want:   models.ProviderFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/getmarketvalue.php", r.URL.Path)
				assert.Equal(t, "secret", r.URL.Query().Get("key"))
				assert.Equal(t, "2019_ford_f150_raptor", r.URL.Query().Get("id"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res := New("secret", WithBaseURL(srv.URL)).MarketValue(context.Background(), "2019_ford_f150_raptor")
			require.Equal(t, tt.want, res.Status, "err: %v", res.Err)
			if tt.want == models.ProviderOK {
				assert.Equal(t, tt.prices, res.Prices)
			}
			if tt.want == models.ProviderFailed {
				assert.Error(t, res.Err)
			}
		})
	}
}

func TestMarketValueTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	res := New("k", WithBaseURL(srv.URL), WithTimeout(20*time.Millisecond)).MarketValue(context.Background(), "x")
	assert.Equal(t, models.ProviderFailed, res.Status)
}

func TestMarketValueWithoutKey(t *testing.T) {
	res := New("").MarketValue(context.Background(), "x")
	assert.Equal(t, models.ProviderMisconfigured, res.Status)
	assert.ErrorIs(t, res.Err, models.ErrConfiguration)
}
