package middleware

import (
	"context"
	"net/http"
	"strings"

	"dancemeet/internal/delivery/http/helpers"
	"dancemeet/internal/domain"
)

type contextKey string

const memberIDKey contextKey = "memberID"

// MemberIDFromContext returns the authenticated member ID stored by Auth,
// or an empty string when the request was not authenticated.
func MemberIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(memberIDKey).(string)
	return id
}

// Auth verifies the Bearer token on incoming requests and stores the
// authenticated member ID in the request context.
func Auth(verifier domain.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing authorization header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid authorization header")
				return
			}

			memberID, err := verifier.Verify(token)
			if err != nil {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), memberIDKey, memberID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
