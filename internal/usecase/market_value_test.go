package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"RaptorExplorer/internal/domain/models"
	"RaptorExplorer/internal/domain/repository/mocks"
	"RaptorExplorer/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var raptor = models.VehicleDescriptor{Year: "2019", Make: "Ford", Model: "F-150", Trim: "Raptor"}

func listing(make, price string) models.Listing {
	raw, _ := json.Marshal(map[string]string{"make": make, "price": price})
	return models.Listing{Make: make, Price: price, Raw: raw}
}

func newResolver(t *testing.T, opts ResolverOptions) (*MarketValueResolver, *mocks.MockListingsProvider, *mocks.MockAggregateProvider) {
	ctrl := gomock.NewController(t)
	l := mocks.NewMockListingsProvider(ctrl)
	a := mocks.NewMockAggregateProvider(ctrl)
	return NewMarketValueResolver(l, a, metrics.Nop{}, nil, opts), l, a
}

var defaultOpts = ResolverOptions{ListingsEnabled: true, StrictMake: true}

func TestResolveFromListings(t *testing.T) {
	r, l, _ := newResolver(t, defaultOpts)

	l.EXPECT().Search(gomock.Any(), models.ListingsQuery{Year: "2019", Make: "Ford", Model: "F-150", Trim: "Raptor"}).
		Return(models.ListingsResult{Status: models.ProviderOK, Listings: []models.Listing{
			listing("Ford", "$50,000"),
			listing("Ford", "51,001"),
			listing("Ram", "$10"),
			listing("Ford", "call for price"),
		}})

	q, err := r.Resolve(context.Background(), raptor)
	require.NoError(t, err)
	assert.Equal(t, models.ProviderListings, q.Provider)
	assert.Equal(t, "50501", q.Price)
	require.Len(t, q.RawListings, 4, "raw listings keep every record")
	assert.JSONEq(t, `{"make":"Ram","price":"$10"}`, string(q.RawListings[2]))
}

func TestResolveRetriesWithoutTrim(t *testing.T) {
	r, l, _ := newResolver(t, defaultOpts)

	gomock.InOrder(
		l.EXPECT().Search(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q models.ListingsQuery) models.ListingsResult {
				assert.Equal(t, "Raptor", q.Trim)
				return models.ListingsResult{Status: models.ProviderEmpty}
			}),
		l.EXPECT().Search(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q models.ListingsQuery) models.ListingsResult {
				assert.Empty(t, q.Trim)
				return models.ListingsResult{Status: models.ProviderOK, Listings: []models.Listing{listing("Ford", "40000")}}
			}),
	)

	q, err := r.Resolve(context.Background(), raptor)
	require.NoError(t, err)
	assert.Equal(t, "40000", q.Price)
}

func TestResolveNoRetryWithoutTrim(t *testing.T) {
	r, l, a := newResolver(t, defaultOpts)

	v := raptor
	v.Trim = ""
	l.EXPECT().Search(gomock.Any(), gomock.Any()).Return(models.ListingsResult{Status: models.ProviderEmpty}).Times(1)
	a.EXPECT().MarketValue(gomock.Any(), "2019_ford_f150").
		Return(models.AggregateResult{Status: models.ProviderOK, Prices: models.AggregatePrices{Average: 50000, Below: 45001}})

	q, err := r.Resolve(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, models.ProviderAggregate, q.Provider)
	assert.Equal(t, "47501", q.Price)
	assert.Nil(t, q.RawListings)
}

func TestResolveFallsThroughToAggregate(t *testing.T) {
	tests := []struct {
		name     string
		listings []models.ListingsResult
	}{
		{
			name:     "provider failed",
			listings: []models.ListingsResult{{Status: models.ProviderFailed, Err: errors.New("502")}},
		},
		{
			name: "empty with and without trim",
			listings: []models.ListingsResult{
				{Status: models.ProviderEmpty},
				{Status: models.ProviderEmpty},
			},
		},
		{
			name: "first record has another make",
			listings: []models.ListingsResult{{Status: models.ProviderOK, Listings: []models.Listing{
				listing("ford", "50000"),
				listing("Ford", "50000"),
			}}},
		},
		{
			name: "no parseable prices",
			listings: []models.ListingsResult{{Status: models.ProviderOK, Listings: []models.Listing{
				listing("Ford", "call"),
				listing("Ford", ""),
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, l, a := newResolver(t, defaultOpts)

			calls := make([]any, 0, len(tt.listings))
			for _, res := range tt.listings {
				calls = append(calls, l.EXPECT().Search(gomock.Any(), gomock.Any()).Return(res))
			}
			gomock.InOrder(calls...)
			a.EXPECT().MarketValue(gomock.Any(), "2019_ford_f150_raptor").
				Return(models.AggregateResult{Status: models.ProviderOK, Prices: models.AggregatePrices{Average: 50000, Below: 46000}})

			q, err := r.Resolve(context.Background(), raptor)
			require.NoError(t, err)
			assert.Equal(t, models.ProviderAggregate, q.Provider)
			assert.Equal(t, "48000", q.Price)
		})
	}
}

func TestResolveLenientMake(t *testing.T) {
	r, l, _ := newResolver(t, ResolverOptions{ListingsEnabled: true})

	l.EXPECT().Search(gomock.Any(), gomock.Any()).
		Return(models.ListingsResult{Status: models.ProviderOK, Listings: []models.Listing{
			listing("FORD", "30000"),
			listing("Ford", "40000"),
		}})

	q, err := r.Resolve(context.Background(), raptor)
	require.NoError(t, err)
	assert.Equal(t, "35000", q.Price)
}

func TestResolveListingsDisabled(t *testing.T) {
	r, _, a := newResolver(t, ResolverOptions{StrictMake: true})

	a.EXPECT().MarketValue(gomock.Any(), gomock.Any()).
		Return(models.AggregateResult{Status: models.ProviderOK, Prices: models.AggregatePrices{Average: 3, Below: 2}})

	q, err := r.Resolve(context.Background(), raptor)
	require.NoError(t, err)
	assert.Equal(t, "3", q.Price, "2.5 rounds half away from zero")
}

func TestResolveNotFound(t *testing.T) {
	for _, agg := range []models.AggregateResult{
		{Status: models.ProviderEmpty},
		{Status: models.ProviderFailed, Err: errors.New("timeout")},
	} {
		r, l, a := newResolver(t, defaultOpts)
		l.EXPECT().Search(gomock.Any(), gomock.Any()).Return(models.ListingsResult{Status: models.ProviderFailed}).Times(1)
		a.EXPECT().MarketValue(gomock.Any(), gomock.Any()).Return(agg)

		_, err := r.Resolve(context.Background(), raptor)
		assert.ErrorIs(t, err, models.ErrNotFound)
	}
}

func TestResolveMisconfigured(t *testing.T) {
	t.Run("listings", func(t *testing.T) {
		r, l, _ := newResolver(t, defaultOpts)
		l.EXPECT().Search(gomock.Any(), gomock.Any()).Return(models.ListingsResult{Status: models.ProviderMisconfigured})

		_, err := r.Resolve(context.Background(), raptor)
		assert.ErrorIs(t, err, models.ErrConfiguration)
	})

	t.Run("aggregate", func(t *testing.T) {
		r, l, a := newResolver(t, defaultOpts)
		l.EXPECT().Search(gomock.Any(), gomock.Any()).Return(models.ListingsResult{Status: models.ProviderFailed})
		a.EXPECT().MarketValue(gomock.Any(), gomock.Any()).Return(models.AggregateResult{Status: models.ProviderMisconfigured})

		_, err := r.Resolve(context.Background(), raptor)
		assert.ErrorIs(t, err, models.ErrConfiguration)
	})
}

func TestResolveInvalidRequestSkipsProviders(t *testing.T) {
	r, _, _ := newResolver(t, defaultOpts)

	for _, v := range []models.VehicleDescriptor{
		{Make: "Ford", Model: "F-150"},
		{Year: "2019", Model: "F-150"},
		{Year: "2019", Make: "Ford", Model: "   "},
	} {
		_, err := r.Resolve(context.Background(), v)
		assert.ErrorIs(t, err, models.ErrInvalidRequest)
	}
}

func TestResolveAppliesProviderTimeout(t *testing.T) {
	r, l, a := newResolver(t, ResolverOptions{ListingsEnabled: true, ListingsTimeout: 10 * time.Millisecond})

	l.EXPECT().Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.ListingsQuery) models.ListingsResult {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 50*time.Millisecond)
			return models.ListingsResult{Status: models.ProviderFailed}
		})
	a.EXPECT().MarketValue(gomock.Any(), gomock.Any()).Return(models.AggregateResult{Status: models.ProviderEmpty})

	_, err := r.Resolve(context.Background(), raptor)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
