package httpx

import (
	"net/http"
	"net/url"

	"bookreview/internal/platform/logger"
)

// SessionResolver looks up the user bound to the request's session, if any.
type SessionResolver interface {
	Resolve(r *http.Request) (username, initials string, ok bool, err error)
}

// AuthMiddleware guards navigation routes. Requests without a live session are
// redirected to loginPath, remembering where they came from.
func AuthMiddleware(resolver SessionResolver, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, initials, ok, err := resolver.Resolve(r)
			if err != nil {
				logger.Error().Err(err).Str("request_id", RequestIDFrom(r)).Msg("session lookup failed")
				JSONError(w, r, http.StatusServiceUnavailable, "SESSION_UNAVAILABLE", "Session store unavailable", nil)
				return
			}
			if !ok {
				target := loginPath + "?from=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			ctx := ContextWithUser(r.Context(), username, initials)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
