package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubResolver struct {
	username, initials string
	ok                 bool
	err                error
}

func (s stubResolver) Resolve(*http.Request) (string, string, bool, error) {
	return s.username, s.initials, s.ok, s.err
}

func TestAuthMiddleware(t *testing.T) {
	echoUser := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, initials := UserFrom(r)
		_, _ = w.Write([]byte(username + "|" + initials))
	})

	t.Run("authenticated", func(t *testing.T) {
		handler := AuthMiddleware(stubResolver{username: "ada lovelace", initials: "AL", ok: true}, "/login")(echoUser)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ada lovelace|AL", w.Body.String())
	})

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		handler := AuthMiddleware(stubResolver{}, "/login")(echoUser)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/book/abc?tab=reviews", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login?from=%2Fbook%2Fabc%3Ftab%3Dreviews", w.Header().Get("Location"))
	})

	t.Run("store failure", func(t *testing.T) {
		handler := AuthMiddleware(stubResolver{err: errors.New("redis down")}, "/login")(echoUser)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
