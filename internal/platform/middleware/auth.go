package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// JWTValidator defines the interface for validating JWT bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	FilerID   string
	SessionID string
}

type contextKeyFilerID struct{}

// ContextKeyFilerID is exported for use in handlers.
var ContextKeyFilerID = contextKeyFilerID{}

// GetFilerID retrieves the authenticated filer ID from the context.
func GetFilerID(ctx context.Context) string {
	id, ok := ctx.Value(ContextKeyFilerID).(string)
	if !ok {
		return ""
	}
	return id
}

// RequireAuth enforces a valid bearer token on every request it wraps and
// stashes the filer identity in the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				unauthorized(w, r, logger, "missing or malformed Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				unauthorized(w, r, logger, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyFilerID, claims.FilerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, logger *slog.Logger, reason string) {
	logger.WarnContext(r.Context(), "unauthorized access",
		"request_id", GetRequestID(r.Context()),
		"reason", reason,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
