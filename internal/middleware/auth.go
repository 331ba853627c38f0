package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tresmastres/or-hayeladim/internal/auth"
	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/handler"
)

// ClaimsContextKey is the context key for the authenticated user's claims
const ClaimsContextKey contextKey = "claims"

// RequireAuth verifies the Authorization bearer token and stores the claims
// in the request context. Requests without a valid token get 401.
func RequireAuth(tokens *auth.TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				handler.Error(w, r, logger, domain.Unauthorized("auth", "authentication required"))
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				handler.Error(w, r, logger, domain.Unauthorized("auth", "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims retrieves the authenticated user's claims from the context
func GetClaims(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
