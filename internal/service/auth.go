package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/config"
	"linkup/internal/model"
)

// AuthService issues and verifies the stateless session token pair. Nothing
// is persisted server-side: a token is valid iff its signature checks out
// against the right secret and it has not expired. Revocation before expiry
// is not possible beyond clearing the client's cookies.
type AuthService struct {
	config *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{config: cfg}
}

// IssueSession signs a fresh access/refresh pair for the user. The two tokens
// carry identical claims but are signed with distinct secrets, so one can
// never be presented in place of the other.
func (s *AuthService) IssueSession(userID primitive.ObjectID) (*model.TokenPair, error) {
	accessToken, err := s.sign(userID, s.config.AccessTokenSecret, s.config.AccessTokenMaxAge)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.sign(userID, s.config.RefreshTokenSecret, s.config.RefreshTokenMaxAge)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccess checks an access token and returns the user id it asserts.
func (s *AuthService) VerifyAccess(token string) (primitive.ObjectID, error) {
	return s.verify(token, s.config.AccessTokenSecret, model.ErrInvalidAccessToken)
}

// Refresh trades a valid refresh token for a new access token. The refresh
// token itself is not rotated; it stays valid until its own expiry.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	userID, err := s.verify(refreshToken, s.config.RefreshTokenSecret, model.ErrInvalidRefreshToken)
	if err != nil {
		return "", err
	}

	accessToken, err := s.sign(userID, s.config.AccessTokenSecret, s.config.AccessTokenMaxAge)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, nil
}

func (s *AuthService) sign(userID primitive.ObjectID, secret string, maxAgeSeconds int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID.Hex(),
		"exp": now.Add(time.Duration(maxAgeSeconds) * time.Second).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// verify parses and validates a token against the given secret. Any defect
// (bad signature, wrong algorithm, expiry, malformed claims) collapses into
// the single invalidErr so callers never leak which check failed.
func (s *AuthService) verify(tokenString, secret string, invalidErr *model.AppError) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, invalidErr
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, invalidErr
	}

	rawID, ok := claims["id"].(string)
	if !ok {
		return primitive.NilObjectID, invalidErr
	}

	userID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return primitive.NilObjectID, invalidErr
	}
	return userID, nil
}
