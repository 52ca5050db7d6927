package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lockstead/recovery/internal/recovery/service"
	"github.com/lockstead/recovery/internal/recovery/store"
	"github.com/lockstead/recovery/pkg/httpx"
	"github.com/lockstead/recovery/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	RecoveryService *service.RecoveryService
	QuestionService *service.QuestionService

	// RevealDiagnostics controls whether verification responses include the
	// correct/required counts and failed question list. Off in production:
	// diagnostics tell a guesser which answers to keep.
	RevealDiagnostics bool
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerRecovery()
	r.registerQuestions()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerRecovery() {
	verifyHandler := &VerifyHandler{
		RecoveryService:   r.RecoveryService,
		RevealDiagnostics: r.RevealDiagnostics,
	}

	// POST /recovery/verify - strict rate limit by IP (guessing prevention)
	r.Mux.Handle("POST /v1/recovery/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /recovery/questions - public read of the question prompts
	listHandler := &QuestionListHandler{QuestionService: r.QuestionService}
	r.Mux.Handle("GET /v1/recovery/questions",
		httpx.Chain(listHandler,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerQuestions() {
	h := &QuestionsHandler{QuestionService: r.QuestionService}

	// PUT /questions - replace the whole question set, moderate rate limit
	r.Mux.Handle("PUT /v1/questions",
		httpx.Chain(http.HandlerFunc(h.HandleReplace),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /questions/upgrade - rewrite stored hashes with the modern scheme
	r.Mux.Handle("POST /v1/questions/upgrade",
		httpx.Chain(http.HandlerFunc(h.HandleUpgrade),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - high limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
