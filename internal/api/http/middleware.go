package http

import (
	"context"
	"net/http"
	"strings"

	"lendloop-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "claims"

type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

// Require rejects requests without a valid access token and stores the
// verified claims in the request context. The user identity every handler
// acts on comes from here, never from request input.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: "missing or malformed authorization header"})
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: "invalid or expired token"})
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: "wrong token type"})
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext returns the authenticated user id, or "" when the
// request went through an unauthenticated route.
func userIDFromContext(ctx context.Context) string {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	if !ok {
		return ""
	}
	return claims.UserID
}
