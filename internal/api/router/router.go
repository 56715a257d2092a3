package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gopantry/docs"
	"gopantry/internal/api/item"
	"gopantry/internal/api/user"
	"gopantry/internal/domain"
	"gopantry/internal/pkg/cache"
	"gopantry/internal/pkg/logger"
	"gopantry/internal/pkg/middleware"
)

// Readiness informa se o estoque inicial já foi carregado.
type Readiness interface {
	Ready() bool
}

// Deps reúne tudo o que o roteador monta. Cache e Metrics são opcionais.
type Deps struct {
	ItemHandler *item.Handler
	UserHandler *user.Handler
	TokenSvc    middleware.TokenService
	Readiness   Readiness
	Logger      logger.Logger

	Cache           cache.Client
	RateLimit       int
	RateLimitWindow time.Duration

	Metrics http.Handler
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)

	// --- Health Check / Operação ---
	r.Get("/ping", PingHandler)
	r.Get("/ready", ReadyHandler(d.Readiness))
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		if d.Cache != nil {
			r.Use(middleware.RateLimiter(d.Cache, d.RateLimit, d.RateLimitWindow, d.Logger))
		}

		r.Post("/register", d.UserHandler.RegisterUserHandler)
		r.Post("/login", d.UserHandler.LoginUserHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NewAuthMiddleware(d.TokenSvc))

			// Leitura: qualquer papel autenticado.
			r.Get("/units", d.ItemHandler.ListUnitsHandler)
			r.Get("/items", d.ItemHandler.ListItemsHandler)
			r.Get("/items/export", d.ItemHandler.ExportItemsHandler)
			r.Get("/items/{id}", d.ItemHandler.GetItemHandler)

			// Escrita: convidados não alteram o estoque.
			r.Group(func(r chi.Router) {
				r.Use(middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleMember))

				r.Post("/items", d.ItemHandler.CreateItemHandler)
				r.Post("/items/{id}/consume", d.ItemHandler.ConsumeItemHandler)
				r.Put("/items/{id}/restock-draft", d.ItemHandler.SetRestockDraftHandler)
				r.Post("/items/{id}/restock", d.ItemHandler.RestockItemHandler)
				r.Put("/items/{id}/quantity", d.ItemHandler.SetQuantityHandler)
				r.Delete("/items/{id}", d.ItemHandler.DeleteItemHandler)
			})

			r.With(middleware.PermissionMiddleware(domain.RoleAdmin)).
				Post("/items/{id}/sync", d.ItemHandler.SyncItemHandler)
		})
	})

	return r
}

// PingHandler é o health check de liveness.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// ReadyHandler responde 200 só depois da carga inicial do estoque.
func ReadyHandler(readiness Readiness) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if readiness == nil || !readiness.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "loading"})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	}
}
