// Package sessionmw provides HTTP middleware that assigns each browser an
// opaque, HMAC-signed session identifier carried in a cookie. Handlers read
// the verified ID from the request context and use it as the session-store
// key; the cookie itself holds no session data.
package sessionmw

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"
)

// CookieName is the session cookie set on every response that minted a new
// session.
const CookieName = "sg_sid"

type ctxKey struct{}

// Sessions returns middleware that resolves or mints the request's session
// ID. Cookies with a missing or forged signature are discarded and replaced
// with a fresh session; signature comparison is constant-time.
func Sessions(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := verifiedID(r, key)
			if !ok {
				id = ulid.Make().String()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    id + "." + sign(key, id),
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

// FromContext returns the verified session ID for the request.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}

// WithSessionID stashes a session ID in the context, used by the middleware
// and by handler tests.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func verifiedID(r *http.Request, key []byte) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}

	id, sig, found := strings.Cut(c.Value, ".")
	if !found || id == "" {
		return "", false
	}

	expected := sign(key, id)
	if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) != 1 {
		return "", false
	}
	return id, true
}

func sign(key []byte, id string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}
