package handler

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/httputil"
	"linkup/internal/model"
	"linkup/internal/transport/http/middleware"
)

// requireUserID pulls the authenticated user id set by the auth middleware.
// A missing id means the route was wired without the middleware; that is a
// server defect, not a client error.
func requireUserID(w http.ResponseWriter, r *http.Request, isDevelopment bool) (primitive.ObjectID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteAppError(w, model.ErrMissingAccessToken, isDevelopment)
		return primitive.NilObjectID, false
	}
	return userID, true
}

// parseObjectID converts a client-supplied hex id, reporting a uniform
// invalid-input error on malformed values.
func parseObjectID(raw, label string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, model.NewInvalidInput("Invalid " + label)
	}
	return id, nil
}

// queryInt reads an integer query parameter, falling back on absence or junk.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
