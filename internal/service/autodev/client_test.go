package autodev

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

func TestSearchSendsQueryAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/listings", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "key-1", q.Get("apikey"))
		assert.Equal(t, "2019", q.Get("year_min"))
		assert.Equal(t, "2019", q.Get("year_max"))
		assert.Equal(t, "Ford", q.Get("make"))
		assert.Equal(t, "F-150", q.Get("model"))
		assert.Equal(t, []string{"Raptor"}, q["trim[]"])
		assert.Equal(t, "price:asc", q.Get("sort_filter"))
		_, _ = w.Write([]byte(`{"records":[
			{"vin":"1FTFW1RG0KFA00001","year":2019,"make":"Ford","model":"F-150","trim":"Raptor","price":"$52,000","mileage":"41,200 Miles","dealerName":"Lone Star Ford","city":"Austin","state":"TX"},
			{"year":"2019","make":"Ford","price":54999.6},
			"not an object"
		]}`))
	}))
	defer srv.Close()

	c := New("key-1", WithBaseURL(srv.URL+"/api"))
	res := c.Search(context.Background(), models.ListingsQuery{Year: "2019", Make: "Ford", Model: "F-150", Trim: "Raptor"})

	require.Equal(t, models.ProviderOK, res.Status)
	require.Len(t, res.Listings, 3)

	first := res.Listings[0]
	assert.Equal(t, "1FTFW1RG0KFA00001", first.VIN)
	assert.Equal(t, "2019", first.Year)
	assert.Equal(t, "$52,000", first.Price)
	assert.Equal(t, "Lone Star Ford", first.DealerName)
	assert.Contains(t, string(first.Raw), `"dealerName":"Lone Star Ford"`)

	assert.Equal(t, "55000", res.Listings[1].Price)
	assert.Equal(t, "", res.Listings[2].Price)
	assert.JSONEq(t, `"not an object"`, string(res.Listings[2].Raw))
}

func TestSearchOmitsEmptyTrim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["trim[]"]
		assert.False(t, ok)
		_, _ = w.Write([]byte(`{"records":[]}`))
	}))
	defer srv.Close()

	res := New("k", WithBaseURL(srv.URL)).Search(context.Background(), models.ListingsQuery{Year: "2020", Make: "Ford", Model: "Bronco"})
	assert.Equal(t, models.ProviderEmpty, res.Status)
}

func TestSearchFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("make") {
		case "Slow":
			time.Sleep(200 * time.Millisecond)
		case "Garbage":
			_, _ = w.Write([]byte(`<html>`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New("k", WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	for _, make := range []string{"Ford", "Slow", "Garbage"} {
		res := c.Search(context.Background(), models.ListingsQuery{Year: "2020", Make: make, Model: "X"})
		assert.Equal(t, models.ProviderFailed, res.Status, make)
		assert.Error(t, res.Err, make)
	}
}

func TestSearchWithoutKeyIsMisconfigured(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	res := New("", WithBaseURL(srv.URL)).Search(context.Background(), models.ListingsQuery{Year: "2020", Make: "Ford", Model: "X"})
	assert.Equal(t, models.ProviderMisconfigured, res.Status)
	assert.ErrorIs(t, res.Err, models.ErrConfiguration)
	assert.False(t, called)
}
