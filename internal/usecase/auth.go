package usecase

import (
	"context"

	"RaptorExplorer/internal/domain/models"
	domsvc "RaptorExplorer/internal/domain/service"
)

// AuthUseCase proxies OAuth token calls to the identity provider and mints
// Firebase tokens for the extension.
type AuthUseCase struct {
	idp    domsvc.IdentityProvider
	tokens domsvc.TokenIssuer
}

func NewAuthUseCase(idp domsvc.IdentityProvider, tokens domsvc.TokenIssuer) *AuthUseCase {
	return &AuthUseCase{idp: idp, tokens: tokens}
}

func (uc *AuthUseCase) ExchangeCode(ctx context.Context, code string) (*models.TokenGrant, error) {
	return uc.idp.ExchangeCode(ctx, code)
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenGrant, error) {
	return uc.idp.RefreshToken(ctx, refreshToken)
}

func (uc *AuthUseCase) CustomToken(ctx context.Context, uid string) (string, error) {
	return uc.tokens.CustomToken(ctx, uid)
}

func (uc *AuthUseCase) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	return uc.tokens.VerifyIDToken(ctx, idToken)
}

var _ domsvc.AuthService = (*AuthUseCase)(nil)
