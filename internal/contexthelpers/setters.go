package contexthelpers

import (
	"context"
	"net/http"

	"github.com/myrjola/fitplan/internal/i18n"
)

// WithProfileID scopes ctx to a browser profile. Use it outside HTTP requests, e.g. in tests and background jobs.
func WithProfileID(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, ProfileIDContextKey, profileID)
}

// WithLanguage sets the language used for translations and generated plans.
func WithLanguage(ctx context.Context, language i18n.Language) context.Context {
	return context.WithValue(ctx, LanguageContextKey, language)
}

func SetProfileID(r *http.Request, profileID string) *http.Request {
	return r.WithContext(WithProfileID(r.Context(), profileID))
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, CurrentPathContextKey, currentPath)
	return r.WithContext(ctx)
}

func SetCSPNonce(r *http.Request, cspNonce string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, CspNonceContextKey, cspNonce)
	return r.WithContext(ctx)
}

func SetLanguage(r *http.Request, language i18n.Language) *http.Request {
	return r.WithContext(WithLanguage(r.Context(), language))
}
