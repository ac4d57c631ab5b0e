package vinaudit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"RaptorExplorer/internal/domain/models"
	xhttp "RaptorExplorer/pkg/http"
	"RaptorExplorer/pkg/logger"
)

const defaultBaseURL = "https://marketvalues.vinaudit.com"

var errMissingPrices = errors.New("response lacks average or below price")

// Client reads aggregate market values from VinAudit. It implements
// repository.AggregateProvider.
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
	return func(c *Client) { c.timeout = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
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
	c.log = c.log.With(logger.String("provider", models.ProviderAggregate))
	return c
}

func (c *Client) Name() string { return models.ProviderAggregate }

type marketValueResponse struct {
	Success bool `json:"success"`
	Prices  struct {
		Average *flexFloat `json:"average"`
		Below   *flexFloat `json:"below"`
		Above   *flexFloat `json:"above"`
	} `json:"prices"`
}

// MarketValue looks up prices for a composite vehicle id such as
// "2019_ford_f150_raptor".
func (c *Client) MarketValue(ctx context.Context, vehicleID string) models.AggregateResult {
	if c.apiKey == "" {
		return models.AggregateResult{
			Status: models.ProviderMisconfigured,
			Err:    fmt.Errorf("%w: vinaudit api key is not set", models.ErrConfiguration),
		}
	}

	var resp marketValueResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    "getmarketvalue.php",
		QueryParams: map[string][]string{
			"key": {c.apiKey},
			"id":  {vehicleID},
		},
	}, &resp)
	if err != nil {
		c.log.Warn("market value lookup failed", logger.String("vehicle_id", vehicleID), logger.Error(err))
		return models.AggregateResult{Status: models.ProviderFailed, Err: fmt.Errorf("vinaudit: %w", err)}
	}

	if !resp.Success {
		c.log.Debug("no market value", logger.String("vehicle_id", vehicleID))
		return models.AggregateResult{Status: models.ProviderEmpty}
	}
	if resp.Prices.Average == nil || resp.Prices.Below == nil {
		c.log.Warn("market value incomplete", logger.String("vehicle_id", vehicleID))
		return models.AggregateResult{Status: models.ProviderFailed, Err: fmt.Errorf("vinaudit: %w", errMissingPrices)}
	}

	prices := models.AggregatePrices{
		Average: float64(*resp.Prices.Average),
		Below:   float64(*resp.Prices.Below),
	}
	if resp.Prices.Above != nil {
		prices.Above = float64(*resp.Prices.Above)
	}
	return models.AggregateResult{Status: models.ProviderOK, Prices: prices}
}

// flexFloat accepts a JSON number or a numeric string. Null and empty
// strings leave the pointer unset.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q: %w", s, err)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
