package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yemsy26/comercio-fenix-v1/internal/api/http/middleware"
	"github.com/yemsy26/comercio-fenix-v1/internal/auth"
	platformhealth "github.com/yemsy26/comercio-fenix-v1/pkg/health/http"
	platformobservability "github.com/yemsy26/comercio-fenix-v1/pkg/observability"
)

// NewRouter создаёт и настраивает HTTP роутер Stock Service
// readiness - функция для health endpoint (503 при false).
// Auth middleware навешивается через With на конкретные endpoints, а не на группу:
// при неподдерживаемом методе chi должен вернуть 405 до проверки токена
// (порядок проверок исходного endpoint: method -> token -> role -> body).
func NewRouter(handler *Handler, verifier auth.TokenVerifier, readiness func() bool, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	if logger == nil {
		logger = zap.NewNop()
	}

	// Observability: trace context + span на каждый запрос, logger с trace_id в контексте
	router.Use(platformobservability.HTTPMiddleware("stock", logger))
	router.Use(middleware.WithRequestID)

	authn := middleware.Authenticate(verifier, logger, auth.RoleAdmin, auth.RoleSeller)

	router.With(authn).Post("/products/reduce-stock", handler.ReduceStock)
	router.With(authn).Get("/products/{id}/stock", func(w http.ResponseWriter, r *http.Request) {
		handler.GetProductStock(w, r, chi.URLParam(r, "id"))
	})

	// Health без middleware (не требует токена)
	router.Get("/health", platformhealth.Handler(readiness))

	return router
}
