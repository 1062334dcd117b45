package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Vedant-Rajput22/hostel-complain-info/internal/auth"
	"github.com/Vedant-Rajput22/hostel-complain-info/internal/database/models"
)

type contextKey string

const identityKey contextKey = "identity"

// ExtractToken pulls the bearer token from the Authorization header or,
// failing that, the token cookie. The header wins.
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// AuthRequired verifies the access token and attaches the decoded claims
// as the request identity. Downstream handlers may trust the identity for
// the lifetime of the request only. Failures are uniform 401s.
func AuthRequired(jwtService auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				unauthorized(w)
				return
			}

			annotateIdentity(r.Context(), claims)
			ctx := context.WithValue(r.Context(), identityKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity returns the authenticated claims, or nil outside AuthRequired.
func Identity(ctx context.Context) *auth.AccessClaims {
	claims, _ := ctx.Value(identityKey).(*auth.AccessClaims)
	return claims
}

func UserID(ctx context.Context) uint {
	if claims := Identity(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

func UserRole(ctx context.Context) models.Role {
	if claims := Identity(ctx); claims != nil {
		return claims.Role
	}
	return ""
}

// RequireRole gates a route on a compile-time set of allowed roles.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := Identity(r.Context())
			if claims == nil {
				unauthorized(w)
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			forbidden(w)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Forbidden"})
}
