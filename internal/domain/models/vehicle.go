package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Provider tags reported in PriceQuote.Provider.
const (
	ProviderListings  = "listings"
	ProviderAggregate = "aggregate"
)

// VehicleDescriptor identifies the vehicle a market value is requested for.
type VehicleDescriptor struct {
	Year  string
	Make  string
	Model string
	Trim  string
}

// Normalize trims surrounding whitespace from every field.
func (v VehicleDescriptor) Normalize() VehicleDescriptor {
	return VehicleDescriptor{
		Year:  strings.TrimSpace(v.Year),
		Make:  strings.TrimSpace(v.Make),
		Model: strings.TrimSpace(v.Model),
		Trim:  strings.TrimSpace(v.Trim),
	}
}

// Validate reports ErrInvalidRequest when year, make or model is missing.
func (v VehicleDescriptor) Validate() error {
	var missing []string
	if v.Year == "" {
		missing = append(missing, "year")
	}
	if v.Make == "" {
		missing = append(missing, "make")
	}
	if v.Model == "" {
		missing = append(missing, "model")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}
	return nil
}

// PriceQuote is the resolved market value for one vehicle.
type PriceQuote struct {
	Provider    string            `json:"provider"`
	Price       string            `json:"price"`
	RawListings []json.RawMessage `json:"listings"`
}

// ListingsQuery is a search against the listings provider. Year bounds are
// both pinned to the model year.
type ListingsQuery struct {
	Year  string
	Make  string
	Model string
	Trim  string
}

// Listing is a single normalized listings-provider record. Raw keeps the
// record exactly as the provider sent it.
type Listing struct {
	VIN        string
	Make       string
	Model      string
	Trim       string
	Year       string
	Price      string
	Mileage    string
	DealerName string
	City       string
	State      string
	Raw        json.RawMessage
}

// ProviderStatus is the outcome of a single provider call.
type ProviderStatus int

const (
	ProviderOK ProviderStatus = iota
	ProviderEmpty
	ProviderFailed
	ProviderMisconfigured
)

func (s ProviderStatus) String() string {
	switch s {
	case ProviderOK:
		return "ok"
	case ProviderEmpty:
		return "empty"
	case ProviderFailed:
		return "failed"
	case ProviderMisconfigured:
		return "misconfigured"
	default:
		return "unknown"
	}
}

// ListingsResult is returned by a listings provider adapter.
type ListingsResult struct {
	Status   ProviderStatus
	Listings []Listing
	Err      error
}

// AggregatePrices are the price points reported by the aggregate provider.
type AggregatePrices struct {
	Below   float64
	Average float64
	Above   float64
}

// AggregateResult is returned by an aggregate provider adapter.
type AggregateResult struct {
	Status ProviderStatus
	Prices AggregatePrices
	Err    error
}

// MarketValueRequest is the inbound query of GET /api/vehicle/market-value.
// Trim may be repeated; the first non-empty value is used.
type MarketValueRequest struct {
	Year  string   `query:"year" validate:"required,numeric,len=4"`
	Make  string   `query:"make" validate:"required,max=64"`
	Model string   `query:"model" validate:"required,max=64"`
	Trim  []string `query:"trim"`
}

// Descriptor converts the request into a VehicleDescriptor.
func (r *MarketValueRequest) Descriptor() VehicleDescriptor {
	v := VehicleDescriptor{Year: r.Year, Make: r.Make, Model: r.Model}
	for _, t := range r.Trim {
		if t = strings.TrimSpace(t); t != "" {
			v.Trim = t
			break
		}
	}
	return v.Normalize()
}
