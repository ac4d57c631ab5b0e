package models

import "errors"

// Sentinel errors crossing use case boundaries. Handlers map them to HTTP statuses.
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrNotFound         = errors.New("not found")
	ErrConfiguration    = errors.New("configuration error")
	ErrProviderRejected = errors.New("provider rejected request")
	ErrUnauthorized     = errors.New("unauthorized")
)

// ProviderRejectedError carries the body an upstream provider answered with
// so it can be relayed to the caller unchanged.
type ProviderRejectedError struct {
	Provider string
	Status   int
	Body     []byte
}

func (e *ProviderRejectedError) Error() string {
	return e.Provider + ": " + ErrProviderRejected.Error()
}

func (e *ProviderRejectedError) Unwrap() error { return ErrProviderRejected }
