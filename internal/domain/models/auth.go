package models

// TokenGrant is an access token issued by the identity provider. ExpiresAt
// is in unix seconds.
type TokenGrant struct {
	AccessToken  string `json:"accessToken"`
	ExpiresAt    int64  `json:"expiresAt"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// TokenRequest is the body of POST /api/auth/token. A uid asks for a
// Firebase custom token, otherwise code is exchanged with Google.
type TokenRequest struct {
	Code string `json:"code"`
	UID  string `json:"uid"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type CustomTokenResponse struct {
	CustomToken string `json:"customToken"`
}
