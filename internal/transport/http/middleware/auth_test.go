package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/config"
	"linkup/internal/model"
	"linkup/internal/service"
)

func newAuthFixture(t *testing.T) (*service.AuthService, primitive.ObjectID, *model.TokenPair) {
	t.Helper()
	authService := service.NewAuthService(&config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenMaxAge:  3600,
		RefreshTokenMaxAge: 604800,
	})

	userID := primitive.NewObjectID()
	pair, err := authService.IssueSession(userID)
	if err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}
	return authService, userID, pair
}

func authProbe(t *testing.T, wantID primitive.ObjectID, hit *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hit = true
		gotID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("user id missing from context")
		}
		if gotID != wantID {
			t.Errorf("context user id = %s, want %s", gotID.Hex(), wantID.Hex())
		}
	})
}

func TestAuth_BearerHeader(t *testing.T) {
	authService, userID, pair := newAuthFixture(t)

	hit := false
	handler := Auth(authService, true)(authProbe(t, userID, &hit))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !hit {
		t.Fatalf("handler not reached, status %d", rec.Code)
	}
}

func TestAuth_Cookie(t *testing.T) {
	authService, userID, pair := newAuthFixture(t)

	hit := false
	handler := Auth(authService, true)(authProbe(t, userID, &hit))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: model.AccessTokenCookie, Value: pair.AccessToken})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !hit {
		t.Fatalf("handler not reached, status %d", rec.Code)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	authService, _, _ := newAuthFixture(t)

	handler := Auth(authService, true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	authService, _, pair := newAuthFixture(t)

	handler := Auth(authService, true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached with a refresh token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
