package firebaseauth

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"RaptorExplorer/internal/domain/models"
)

// AuthClient is the part of *auth.Client the issuer needs.
type AuthClient interface {
	CustomToken(ctx context.Context, uid string) (string, error)
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// TokenIssuer implements service.TokenIssuer on Firebase Auth.
type TokenIssuer struct {
	client AuthClient
}

// NewTokenIssuer accepts a nil client; every call then fails with
// ErrConfiguration.
func NewTokenIssuer(client AuthClient) *TokenIssuer {
	return &TokenIssuer{client: client}
}

func (t *TokenIssuer) CustomToken(ctx context.Context, uid string) (string, error) {
	if t.client == nil {
		return "", fmt.Errorf("%w: firebase is not configured", models.ErrConfiguration)
	}
	if uid == "" {
		return "", fmt.Errorf("%w: uid is required", models.ErrInvalidRequest)
	}
	tok, err := t.client.CustomToken(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("create custom token: %w", err)
	}
	return tok, nil
}

// VerifyIDToken returns the uid of a valid ID token.
func (t *TokenIssuer) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	if t.client == nil {
		return "", fmt.Errorf("%w: firebase is not configured", models.ErrConfiguration)
	}
	if idToken == "" {
		return "", fmt.Errorf("%w: missing id token", models.ErrUnauthorized)
	}
	tok, err := t.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	return tok.UID, nil
}
