package usecase

import (
	"context"
	"testing"

	"RaptorExplorer/internal/domain/models"
	svcmocks "RaptorExplorer/internal/domain/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthUseCaseDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	idp := svcmocks.NewMockIdentityProvider(ctrl)
	tokens := svcmocks.NewMockTokenIssuer(ctrl)
	uc := NewAuthUseCase(idp, tokens)
	ctx := context.Background()

	idp.EXPECT().ExchangeCode(ctx, "code").Return(&models.TokenGrant{AccessToken: "at", RefreshToken: "rt"}, nil)
	idp.EXPECT().RefreshToken(ctx, "rt").Return(&models.TokenGrant{AccessToken: "at2"}, nil)
	tokens.EXPECT().CustomToken(ctx, "uid-1").Return("custom", nil)
	tokens.EXPECT().VerifyIDToken(ctx, "id-token").Return("uid-1", nil)

	g, err := uc.ExchangeCode(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, "rt", g.RefreshToken)

	g, err = uc.RefreshToken(ctx, "rt")
	require.NoError(t, err)
	assert.Equal(t, "at2", g.AccessToken)

	tok, err := uc.CustomToken(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "custom", tok)

	uid, err := uc.VerifyIDToken(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
}
