package autodev

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"RaptorExplorer/internal/domain/models"
	xhttp "RaptorExplorer/pkg/http"
	"RaptorExplorer/pkg/logger"
)

const defaultBaseURL = "https://auto.dev/api"

// Client searches dealer listings on auto.dev. It implements
// repository.ListingsProvider.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *logger.Logger
	http       *xhttp.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the transport; the timeout option is then ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		timeout: 5 * time.Second,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	httpOpts := []xhttp.ClientOption{xhttp.WithBaseURL(c.baseURL), xhttp.WithTimeout(c.timeout)}
	if c.httpClient != nil {
		httpOpts = append(httpOpts, xhttp.WithHTTPClient(c.httpClient))
	}
	c.http = xhttp.NewClient(httpOpts...)
	c.log = c.log.With(logger.String("provider", models.ProviderListings))
	return c
}

func (c *Client) Name() string { return models.ProviderListings }

type searchResponse struct {
	Records []json.RawMessage `json:"records"`
}

type record struct {
	VIN        string     `json:"vin"`
	Year       flexString `json:"year"`
	Make       string     `json:"make"`
	Model      string     `json:"model"`
	Trim       string     `json:"trim"`
	Price      flexString `json:"price"`
	Mileage    flexString `json:"mileage"`
	DealerName string     `json:"dealerName"`
	City       string     `json:"city"`
	State      string     `json:"state"`
}

// Search queries listings for one model year, cheapest first.
func (c *Client) Search(ctx context.Context, q models.ListingsQuery) models.ListingsResult {
	if c.apiKey == "" {
		return models.ListingsResult{
			Status: models.ProviderMisconfigured,
			Err:    fmt.Errorf("%w: auto.dev api key is not set", models.ErrConfiguration),
		}
	}

	params := map[string][]string{
		"apikey":      {c.apiKey},
		"year_min":    {q.Year},
		"year_max":    {q.Year},
		"make":        {q.Make},
		"model":       {q.Model},
		"sort_filter": {"price:asc"},
	}
	if q.Trim != "" {
		params["trim[]"] = []string{q.Trim}
	}

	var resp searchResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         "listings",
		QueryParams: params,
	}, &resp)
	if err != nil {
		c.log.Warn("listings search failed",
			logger.String("year", q.Year),
			logger.String("make", q.Make),
			logger.String("model", q.Model),
			logger.String("trim", q.Trim),
			logger.Error(err),
		)
		return models.ListingsResult{Status: models.ProviderFailed, Err: fmt.Errorf("auto.dev listings: %w", err)}
	}

	if len(resp.Records) == 0 {
		return models.ListingsResult{Status: models.ProviderEmpty}
	}

	listings := make([]models.Listing, 0, len(resp.Records))
	for _, raw := range resp.Records {
		listings = append(listings, toListing(raw))
	}
	return models.ListingsResult{Status: models.ProviderOK, Listings: listings}
}

// toListing keeps records it cannot decode with only Raw set, so they stay in
// the raw listings but never contribute a price.
func toListing(raw json.RawMessage) models.Listing {
	l := models.Listing{Raw: raw}
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return l
	}
	l.VIN = r.VIN
	l.Year = string(r.Year)
	l.Make = r.Make
	l.Model = r.Model
	l.Trim = r.Trim
	l.Price = string(r.Price)
	l.Mileage = string(r.Mileage)
	l.DealerName = r.DealerName
	l.City = r.City
	l.State = r.State
	return l
}

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = flexString(strconv.FormatInt(i, 10))
		return nil
	}
	// fractional numbers are whole currency units once rounded
	v, err := n.Float64()
	if err != nil {
		return err
	}
	*f = flexString(strconv.FormatFloat(math.Round(v), 'f', 0, 64))
	return nil
}
