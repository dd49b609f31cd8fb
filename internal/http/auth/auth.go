// Package auth authenticates API callers from a signed bearer token issued by
// the family-account service and gates the parent-only endpoints.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role is the caller's position in the family account.
type Role string

const (
	RoleParent Role = "parent"
	RoleChild  Role = "child"
)

// Identity is the authenticated caller, stored on the request context.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

type contextKey struct{}

// FromContext returns the caller authenticated by Middleware.Authenticate.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

type Middleware struct {
	secret []byte
}

func NewMiddleware(secret string) *Middleware {
	return &Middleware{secret: []byte(secret)}
}

type claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate validates the bearer token and attaches the caller's identity
// to the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		var c claims

		parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
			}

			return m.secret, nil
		})
		if err != nil || !parsed.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		userID, err := uuid.Parse(c.Subject)
		if err != nil {
			http.Error(w, "invalid token subject", http.StatusUnauthorized)
			return
		}

		identity := Identity{UserID: userID, Role: c.Role}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, identity)))
	})
}

// RequireParent rejects callers that are not the parent of the family account.
// Withdrawals, purchases, cancellations, matching rules and challenges are
// parent actions.
func (m *Middleware) RequireParent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		if identity.Role != RoleParent {
			http.Error(w, "parent role required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
