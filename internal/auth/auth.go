// Package auth extracts the caller's identity from dashboard requests and
// propagates it to backend services.
//
// The BFF does not mint tokens. It verifies the platform-issued JWT on the
// Authorization header, exposes the claims to handlers via the request
// context, and forwards Authorization / X-User-ID / X-Tenant-ID unchanged on
// proxied calls. In dev mode verification is skipped and the X-User-ID
// header is trusted directly.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Tesseract-Nexus/admin-bff/internal/config"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/httputil"
)

// Claims is the caller identity attached to every authenticated request.
type Claims struct {
	UserID   string
	Email    string
	Role     string
	TenantID string
}

type contextKey struct{}

// FromContext returns the claims stored by the middleware.
func FromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(Claims)
	return c, ok
}

// WithClaims returns a context carrying the given claims. Exposed for tests.
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// Verifier validates dashboard JWTs.
type Verifier struct {
	secret  []byte
	devMode bool
}

// NewVerifier creates a verifier from auth config.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{secret: []byte(cfg.JWTSecret), devMode: cfg.DevMode}
}

type tokenClaims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// Parse validates the token string and extracts claims.
func (v *Verifier) Parse(tokenStr string) (Claims, error) {
	var tc tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &tc, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return Claims{}, fmt.Errorf("invalid token")
	}
	return Claims{
		UserID:   tc.Subject,
		Email:    tc.Email,
		Role:     tc.Role,
		TenantID: tc.TenantID,
	}, nil
}

// Middleware authenticates every request under /api. The tenant scope comes
// from the X-Tenant-ID header (the dashboard sets it per selected tenant),
// falling back to the token's tenant claim.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var claims Claims

		if v.devMode {
			claims = Claims{
				UserID:   r.Header.Get("X-User-ID"),
				TenantID: r.Header.Get("X-Tenant-ID"),
				Role:     "ADMIN",
			}
			if claims.UserID == "" {
				claims.UserID = "dev-user"
			}
		} else {
			tokenStr, ok := bearerToken(r)
			if !ok {
				httputil.Fail(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			var err error
			claims, err = v.Parse(tokenStr)
			if err != nil {
				httputil.Fail(w, http.StatusUnauthorized, "invalid token")
				return
			}
		}

		if tid := r.Header.Get("X-Tenant-ID"); tid != "" {
			claims.TenantID = tid
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// Scope is the auth context carried onto outbound backend requests:
// Authorization pass-through plus the explicit X-User-ID / X-Tenant-ID
// scoping headers.
type Scope struct {
	Authorization string
	UserID        string
	TenantID      string
}

// ScopeFromRequest builds the outbound scope from an inbound dashboard
// request and the claims its middleware attached.
func ScopeFromRequest(r *http.Request) Scope {
	s := Scope{Authorization: r.Header.Get("Authorization")}
	if claims, ok := FromContext(r.Context()); ok {
		s.UserID = claims.UserID
		s.TenantID = claims.TenantID
	}
	return s
}

// Apply sets the scope headers on an outbound request.
func (s Scope) Apply(req *http.Request) {
	if s.Authorization != "" {
		req.Header.Set("Authorization", s.Authorization)
	}
	if s.UserID != "" {
		req.Header.Set("X-User-ID", s.UserID)
	}
	if s.TenantID != "" {
		req.Header.Set("X-Tenant-ID", s.TenantID)
	}
}

// Propagate copies the auth context of an inbound dashboard request onto an
// outbound backend request.
func Propagate(dst *http.Request, src *http.Request) {
	ScopeFromRequest(src).Apply(dst)
}
