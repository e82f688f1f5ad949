package model

// Cookie names for the session pair. Both are HTTP-only; the client never
// reads them directly.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// TokenPair holds the two signed assertions of a session: a short-lived
// access token and a long-lived refresh token, signed with distinct secrets.
// Neither is persisted server-side; validity is signature plus expiry only.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

var (
	// ErrMissingAccessToken is returned when no access credential is presented
	ErrMissingAccessToken = NewUnauthenticated("Access Denied. No token provided")

	// ErrInvalidAccessToken covers malformed, forged, and expired access tokens
	ErrInvalidAccessToken = NewUnauthenticated("Invalid or expired access token")

	// ErrMissingRefreshToken is returned when no refresh credential is presented
	ErrMissingRefreshToken = NewUnauthenticated("No refresh token provided")

	// ErrInvalidRefreshToken covers malformed, forged, and expired refresh tokens
	ErrInvalidRefreshToken = NewForbidden("Invalid refresh token")
)
