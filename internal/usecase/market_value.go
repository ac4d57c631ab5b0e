package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"RaptorExplorer/internal/domain/models"
	domrepo "RaptorExplorer/internal/domain/repository"
	"RaptorExplorer/pkg/logger"
	"RaptorExplorer/pkg/metrics"
	"RaptorExplorer/pkg/util"
)

// Resolution outcomes recorded by the resolver.
const (
	resolvedListings  = "listings"
	resolvedAggregate = "aggregate"
	resolvedNotFound  = "not_found"
	resolvedInvalid   = "invalid"
	resolvedConfig    = "misconfigured"
)

type ResolverOptions struct {
	ListingsEnabled  bool
	StrictMake       bool
	ListingsTimeout  time.Duration
	AggregateTimeout time.Duration
}

// MarketValueResolver resolves a market price through the listings provider,
// falling back to the aggregate provider. It holds no per-request state.
type MarketValueResolver struct {
	listings  domrepo.ListingsProvider
	aggregate domrepo.AggregateProvider
	metrics   domrepo.Metrics
	log       *logger.Logger
	opts      ResolverOptions
}

func NewMarketValueResolver(
	listings domrepo.ListingsProvider,
	aggregate domrepo.AggregateProvider,
	m domrepo.Metrics,
	log *logger.Logger,
	opts ResolverOptions,
) *MarketValueResolver {
	if m == nil {
		m = metrics.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if opts.ListingsTimeout <= 0 {
		opts.ListingsTimeout = 5 * time.Second
	}
	if opts.AggregateTimeout <= 0 {
		opts.AggregateTimeout = 5 * time.Second
	}
	return &MarketValueResolver{
		listings:  listings,
		aggregate: aggregate,
		metrics:   m,
		log:       log,
		opts:      opts,
	}
}

// Resolve returns a quote, or an error wrapping ErrInvalidRequest,
// ErrNotFound or ErrConfiguration.
func (r *MarketValueResolver) Resolve(ctx context.Context, v models.VehicleDescriptor) (*models.PriceQuote, error) {
	start := time.Now()
	defer func() { r.metrics.RecordLatency("resolve", time.Since(start).Seconds()) }()

	v = v.Normalize()
	if err := v.Validate(); err != nil {
		r.metrics.RecordResolution(resolvedInvalid)
		return nil, err
	}

	if r.opts.ListingsEnabled && r.listings != nil {
		quote, err := r.fromListings(ctx, v)
		if err != nil {
			r.metrics.RecordResolution(resolvedConfig)
			return nil, err
		}
		if quote != nil {
			r.metrics.RecordResolution(resolvedListings)
			return quote, nil
		}
	}

	if r.aggregate != nil {
		quote, err := r.fromAggregate(ctx, v)
		if err != nil {
			r.metrics.RecordResolution(resolvedConfig)
			return nil, err
		}
		if quote != nil {
			r.metrics.RecordResolution(resolvedAggregate)
			return quote, nil
		}
	}

	r.metrics.RecordResolution(resolvedNotFound)
	return nil, fmt.Errorf("%w: no market value for %s", models.ErrNotFound, VehicleID(v))
}

// fromListings returns (nil, nil) whenever the aggregate provider should be
// tried next. The only error it returns is a configuration error.
func (r *MarketValueResolver) fromListings(ctx context.Context, v models.VehicleDescriptor) (*models.PriceQuote, error) {
	q := models.ListingsQuery{Year: v.Year, Make: v.Make, Model: v.Model, Trim: v.Trim}

	res := r.searchListings(ctx, q)
	if res.Status == models.ProviderEmpty && q.Trim != "" {
		q.Trim = ""
		res = r.searchListings(ctx, q)
	}

	switch res.Status {
	case models.ProviderMisconfigured:
		return nil, fmt.Errorf("%w: listings provider: %v", models.ErrConfiguration, res.Err)
	case models.ProviderOK:
		return r.priceFromListings(v, res.Listings), nil
	default:
		return nil, nil
	}
}

func (r *MarketValueResolver) searchListings(ctx context.Context, q models.ListingsQuery) models.ListingsResult {
	ctx, cancel := context.WithTimeout(ctx, r.opts.ListingsTimeout)
	defer cancel()

	start := time.Now()
	res := r.listings.Search(ctx, q)
	r.metrics.RecordLatency("provider_listings", time.Since(start).Seconds())
	r.metrics.RecordProviderOutcome(models.ProviderListings, res.Status.String())
	return res
}

func (r *MarketValueResolver) priceFromListings(v models.VehicleDescriptor, listings []models.Listing) *models.PriceQuote {
	if len(listings) == 0 {
		return nil
	}
	if r.opts.StrictMake && listings[0].Make != v.Make {
		r.log.Debug("listings rejected, make mismatch",
			logger.String("want", v.Make),
			logger.String("got", listings[0].Make),
		)
		return nil
	}

	var sum float64
	var n int
	for _, l := range listings {
		if r.opts.StrictMake && l.Make != v.Make {
			continue
		}
		p, ok := util.ParseDigits(l.Price)
		if !ok {
			continue
		}
		sum += float64(p)
		n++
	}
	if n == 0 {
		return nil
	}

	raw := make([]json.RawMessage, 0, len(listings))
	for _, l := range listings {
		raw = append(raw, l.Raw)
	}
	return &models.PriceQuote{
		Provider:    models.ProviderListings,
		Price:       util.RoundString(sum / float64(n)),
		RawListings: raw,
	}
}

func (r *MarketValueResolver) fromAggregate(ctx context.Context, v models.VehicleDescriptor) (*models.PriceQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.AggregateTimeout)
	defer cancel()

	start := time.Now()
	res := r.aggregate.MarketValue(ctx, VehicleID(v))
	r.metrics.RecordLatency("provider_aggregate", time.Since(start).Seconds())
	r.metrics.RecordProviderOutcome(models.ProviderAggregate, res.Status.String())

	switch res.Status {
	case models.ProviderMisconfigured:
		return nil, fmt.Errorf("%w: aggregate provider: %v", models.ErrConfiguration, res.Err)
	case models.ProviderOK:
		return &models.PriceQuote{
			Provider: models.ProviderAggregate,
			Price:    util.RoundString((res.Prices.Average + res.Prices.Below) / 2),
		}, nil
	default:
		return nil, nil
	}
}
