package main

import (
	"crypto/subtle"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/noah-isme/farmer-shop/internal/catalog"
	"github.com/noah-isme/farmer-shop/internal/common"
	"github.com/noah-isme/farmer-shop/internal/config"
	"github.com/noah-isme/farmer-shop/internal/health"
	"github.com/noah-isme/farmer-shop/internal/obs"
	"github.com/noah-isme/farmer-shop/internal/ratelimit"
	"github.com/noah-isme/farmer-shop/internal/security"
	"github.com/noah-isme/farmer-shop/internal/session"
)

type routerDeps struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Catalog *catalog.Handler
	Session *session.Handler
	Health  health.Handler
	Metrics *obs.HTTPMetrics
	Tracing bool
	Limiter ratelimit.Limiter
	Idem    common.Idem
}

func newRouter(d routerDeps) http.Handler {
	cfg := d.Config

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if d.Tracing {
		r.Use(obs.TracingMiddleware)
	}
	if d.Metrics != nil {
		r.Use(obs.HTTPObs{Metrics: d.Metrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: d.Logger, Skip: []string{"/health/live", "/health/ready", "/metrics"}}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", common.IdempotencyHeader},
		ExposedHeaders: []string{"X-Request-ID", "X-Invoice-Id"},
		MaxAge:         300,
	}))
	r.Use(security.Headers{Enable: true, EnableHSTS: cfg.AppEnv == "production", ContentSecurityPolicy: security.DefaultContentSecurityPolicy}.Middleware)

	if d.Metrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}
	if cfg.Obs.EnablePprof {
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), cfg.Obs.PprofUser, cfg.Obs.PprofPass))
	}

	r.Get("/health/live", d.Health.Live)
	r.Get("/health/ready", d.Health.Ready)

	r.Group(func(g chi.Router) {
		g.Use(ratelimit.Handler{
			Limiter: d.Limiter,
			Config:  ratelimit.Config{Key: ratelimit.ByClientIP, Window: time.Minute, Max: cfg.RateLimitPerMinute},
			OnError: func(err error) { d.Logger.Warn().Err(err).Msg("rate limiter unavailable") },
		}.Middleware)
		g.Use(security.BodyLimit{Max: cfg.BodyLimitBytes}.Middleware)

		g.Get("/products", d.Catalog.Products)

		g.Route("/api/v1", func(v chi.Router) {
			v.Get("/catalog", d.Session.Catalog)
			v.Get("/cart", d.Session.Cart)
			v.Post("/cart/items", d.Session.AddItem)
			v.With(d.Idem.Middleware).Post("/checkout", d.Session.Checkout)
		})
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}
	return r
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		mux.Handle("/"+name, pprof.Handler(name))
	}
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
