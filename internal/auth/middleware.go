package auth

import (
	"context"
	"net/http"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// Middleware returns an HTTP middleware that verifies the request's
// bearer token and injects the caller's claims into the context. The
// onError callback writes the failure response.
func Middleware(verifier *Verifier, onError func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := FromAuthHeader(r.Header.Get("Authorization"))
			if err != nil {
				onError(w, r, err)
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				onError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims stored by Middleware.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}

// UserID returns the authenticated user's ID, or "" when the request
// was not authenticated.
func UserID(ctx context.Context) string {
	claims, _ := ClaimsFromContext(ctx)
	return claims.UserID
}
