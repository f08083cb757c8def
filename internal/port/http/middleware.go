package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/metrics"
)

// ContextKey avoids collisions with other packages' context values.
type ContextKey string

const (
	UserIDCtxKey   = ContextKey("user_id")
	UserRoleCtxKey = ContextKey("user_role")
)

const RoleAdmin = "admin"

// Claims is the JWT payload issued by the identity provider.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserID extracts the authenticated user from the request context. Empty when
// the request was anonymous.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDCtxKey).(string)
	return id
}

func UserRole(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleCtxKey).(string)
	return role
}

func parseToken(r *http.Request, secret string, log logger.Logger) (*Claims, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		log.Debugf("token rejected: %v", err)
		return nil, false
	}
	return claims, true
}

func withClaims(r *http.Request, claims *Claims) *http.Request {
	ctx := context.WithValue(r.Context(), UserIDCtxKey, claims.UserID)
	ctx = context.WithValue(ctx, UserRoleCtxKey, claims.Role)
	return r.WithContext(ctx)
}

// JWTAuth rejects requests without a valid bearer token.
func JWTAuth(secret string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := parseToken(r, secret, log)
			if !ok {
				http.Error(w, "authorization required", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, withClaims(r, claims))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present but lets
// anonymous requests through. Used on listing detail so viewer state can be
// derived for signed-in users.
func OptionalAuth(secret string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := parseToken(r, secret, log); ok {
				r = withClaims(r, claims)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin must run after JWTAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserRole(r.Context()) != RoleAdmin {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Instrument observes per-route request latency, labelled by the matched
// chi route pattern.
func Instrument(m *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			m.APILatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}
