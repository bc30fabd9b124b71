// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	platformmw "truedial/internal/platform/middleware"
	"truedial/internal/platform/metrics"
	"truedial/internal/platform/redis"
	dErrors "truedial/pkg/domain-errors"
)

// Deps collects everything the router needs. All services are consumed
// through the narrow interfaces declared next to each handler.
type Deps struct {
	Users        UserService
	Tokens       TokenIssuer
	Search       SearchService
	Contacts     ContactService
	Reports      ReportService
	Spam         SpamService
	Interactions InteractionService
	Dashboard    DashboardService
	Auth         platformmw.JWTValidator
	Metrics      *metrics.Metrics
	Redis        *redis.Client
	// SearchRateLimit is requests per minute per account; zero disables it.
	SearchRateLimit int
	Logger          *slog.Logger
}

// NewRouter wires all public endpoints. Everything under /api except signup
// and login requires a bearer token.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if d.Metrics != nil {
		r.Use(instrument(d.Metrics))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	userHandler := &UserHandler{users: d.Users, tokens: d.Tokens, metrics: d.Metrics}
	r.Post("/api/signup", userHandler.handleSignup)
	r.Post("/api/login", userHandler.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(platformmw.RequireAuth(d.Auth, d.Logger))

		searchHandler := &SearchHandler{search: d.Search, metrics: d.Metrics}
		r.Group(func(r chi.Router) {
			if d.Redis != nil && d.SearchRateLimit > 0 {
				r.Use(rateLimit(d.Redis, d.SearchRateLimit, d.Logger))
			}
			r.Get("/api/search", searchHandler.handleSearch)
			r.Get("/api/search/detail/{id}", searchHandler.handleDetails)
		})

		contactHandler := &ContactHandler{contacts: d.Contacts}
		r.Post("/api/contact", contactHandler.handleCreate)

		spamHandler := &SpamHandler{reports: d.Reports, spam: d.Spam, metrics: d.Metrics}
		r.Post("/api/spam", spamHandler.handleReport)
		r.Get("/api/spam/stats", spamHandler.handleStats)

		interactionHandler := &InteractionHandler{interactions: d.Interactions}
		r.Post("/api/interaction", interactionHandler.handleCreate)
		r.Get("/api/interactions", interactionHandler.handleRecent)
		r.Get("/api/interactions/top", interactionHandler.handleTop)

		dashboardHandler := &DashboardHandler{dashboard: d.Dashboard}
		r.Get("/api/dashboard", dashboardHandler.handleDashboard)
	})

	return r
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler returns the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	respond(w, statusFromCode(code), map[string]string{
		"error":             string(code),
		"error_description": err.Error(),
	})
}

func statusFromCode(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidInput, dErrors.CodeInvalidPhone, dErrors.CodeEmptyQuery,
		dErrors.CodeInvalidDateRange, dErrors.CodeInvalidFilter, dErrors.CodeInvalidCount:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// queryInt parses an integer query parameter, returning the fallback when
// absent and an error when present but malformed.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s parameter, must be an integer", name)
	}
	return n, nil
}

func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(ww.Status()/100) + "xx"
			m.ObserveRequest(route, status, time.Since(start).Seconds())
		})
	}
}
