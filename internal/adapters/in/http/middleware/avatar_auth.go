// internal/adapters/in/http/middleware/avatar_auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias so router wiring can take
// *middleware.FirebaseAuthClient without importing the firebase package.
type FirebaseAuthClient = fbauth.Client

// context key は string を使わず、衝突回避のため独自型を使用（SA1029 対策）
type ctxKey struct{ name string }

var ctxKeyAvatarID = ctxKey{name: "avatarId"}

// AvatarAuth verifies
//
//   - Authorization: Bearer <ID_TOKEN>
//
// and puts the avatar id (= Firebase UID) into the request context.
// Cart and restock-subscription endpoints sit behind this.
type AvatarAuth struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *AvatarAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.FirebaseAuth == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			log.Printf("[auth] verify id token failed: %v", err)
			http.Error(w, "unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyAvatarID, token.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalHandler verifies the bearer token when one is present and passes
// anonymous requests through untouched. Routes that mix public reads with
// authenticated writes (product reviews) sit behind this; the handler decides
// per method whether an avatar id is required.
func (m *AvatarAuth) OptionalHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if m == nil || m.FirebaseAuth == nil || !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			// a presented-but-invalid token is rejected, not downgraded
			log.Printf("[auth] verify id token failed: %v", err)
			http.Error(w, "unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyAvatarID, token.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AvatarIDFromContext returns the authenticated avatar id, "" when absent.
func AvatarIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyAvatarID).(string)
	return v
}

// WithAvatarID is for tests: injects an avatar id without a real token.
func WithAvatarID(ctx context.Context, avatarID string) context.Context {
	return context.WithValue(ctx, ctxKeyAvatarID, avatarID)
}
