package main

import (
	"context"
	"net/http"
	"time"

	"bookreview/internal/catalog"
	"bookreview/internal/httpx"
	"bookreview/internal/review"
	"bookreview/internal/session"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	loginPath      = "/login"
	dashboardPath  = "/dashboard"
	maxRequestBody = 1 << 20
)

type routerDeps struct {
	sessions    *session.Manager
	catalog     *catalog.Service
	reviews     *review.Service
	rateLimiter *httpx.RateLimitMiddleware

	corsOrigins  []string
	enableHSTS   bool
	cookieSecure bool
}

func newRouter(d routerDeps) http.Handler {
	sessionHandler := session.NewHTTPHandler(d.sessions, d.cookieSecure)
	catalogHandler := catalog.NewHTTPHandler(d.catalog)
	reviewHandler := review.NewHTTPHandler(d.reviews, d.catalog)

	guard := httpx.AuthMiddleware(d.sessions, loginPath)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.sessions.Ping(ctx); err != nil {
			http.Error(w, "session store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", promhttp.Handler())

	router.HandleFunc("GET "+loginPath, sessionHandler.LoginPage)
	router.HandleFunc("POST "+loginPath, sessionHandler.Login)
	router.HandleFunc("POST /logout", sessionHandler.Logout)

	router.Handle("GET "+dashboardPath, guard(http.HandlerFunc(catalogHandler.Dashboard)))
	router.Handle("GET /book/{id}", guard(http.HandlerFunc(reviewHandler.Detail)))
	router.Handle("POST /book/{id}/reviews", guard(http.HandlerFunc(reviewHandler.Submit)))

	// Anything else, including "/", lands on the dashboard.
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, dashboardPath, http.StatusFound)
	})

	middlewares := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware,
		httpx.AccessLogMiddleware,
		httpx.SecurityHeadersMiddleware(d.enableHSTS),
		httpx.CORSMiddleware(d.corsOrigins),
	}
	if d.rateLimiter != nil {
		middlewares = append(middlewares, d.rateLimiter.Middleware)
	}
	middlewares = append(middlewares, httpx.RequestSizeLimitMiddleware(maxRequestBody))

	return httpx.Chain(router, middlewares...)
}
