package core

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/wayfarer-app/wayfarer/pkg/router"
)

const bearerPrefix = "Bearer "

type subjectKey struct{}

func contextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

func subjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey{}).(string)
	return subject, ok
}

// SubjectFromRequest returns the authenticated username attached by AuthGate.
// It must only be called from handlers on protected routes; it panics when no
// identity is attached.
func SubjectFromRequest(r *http.Request) string {
	subject, ok := subjectFromContext(r.Context())
	if !ok {
		panic("no authenticated subject in request context: handler must sit behind AuthGate on a protected route")
	}
	return subject
}

// OptionalSubjectFromRequest is for handlers on public routes that still act
// on the identity when a valid token was presented.
func OptionalSubjectFromRequest(r *http.Request) (string, bool) {
	return subjectFromContext(r.Context())
}

// BearerToken extracts the credential from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrTokenMissing
	}
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" {
		return "", ErrTokenMissing
	}
	return token, nil
}

// AuthGate gates every inbound request against the route policy.
//
// Public paths pass through untouched; when a valid bearer token happens to
// be present its subject is still attached, which is how endpoints living
// under a public prefix (such as /api/auth/me) can answer "who am I".
//
// Protected paths require a token that verifies. The subject is attached to
// the request context exactly once, before the downstream handler runs. Any
// failure (missing, malformed, tampered or expired token) short-circuits
// with the same 401 response; the distinction stays internal.
func AuthGate(policy *RoutePolicy, codec *TokenCodec) router.Middleware {
	return func(next http.Handler) router.HandlerFunc {
		unauthorized := router.NewJsonError(http.StatusUnauthorized, "unauthorized")

		return func(w http.ResponseWriter, r *http.Request) error {
			if policy.IsPublic(r.URL.Path) {
				if token, err := BearerToken(r); err == nil {
					if subject, err := codec.Verify(token, time.Now()); err == nil {
						r = r.WithContext(contextWithSubject(r.Context(), subject))
					}
				}
				next.ServeHTTP(w, r)
				return nil
			}

			token, err := BearerToken(r)
			if err != nil {
				return unauthorized
			}
			subject, err := codec.Verify(token, time.Now())
			if err != nil {
				return unauthorized
			}
			next.ServeHTTP(w, r.WithContext(contextWithSubject(r.Context(), subject)))
			return nil
		}
	}
}
