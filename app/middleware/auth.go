package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"bloglist/app/auth"
)

// TokenVerifier turns a bearer token into verified claims
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type claimsKey struct{}

// Authenticate extracts a bearer token from the Authorization header and,
// when it verifies, stores its claims in the request context. Requests
// without a valid token pass through unauthenticated; RequireUser decides
// whether that is acceptable.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireUser rejects requests that carry no verified identity
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": auth.ErrInvalidToken.Error()})
			return
		}
		next(w, r)
	}
}

// WithClaims stores verified claims in the context
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// UserIDFromContext returns the verified caller id, if any
func UserIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	if !ok || claims.UserID() == "" {
		return "", false
	}
	return claims.UserID(), true
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
