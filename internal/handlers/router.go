package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/pos-checkout/internal/middleware"
	"github.com/Lixing-Zhang/pos-checkout/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig carries the HTTP-level settings for NewRouter
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// Services groups the application services the router dispatches to
type Services struct {
	Registers *service.RegisterService
	Checkout  *service.CheckoutService
	Login     *service.LoginService
}

// NewRouter builds the chi router with the full middleware chain and all API routes
func NewRouter(cfg RouterConfig, svc Services, log *slog.Logger) http.Handler {
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	healthHandler := NewHealthHandler(log)
	registerHandler := NewRegisterHandler(svc.Registers, svc.Checkout, log)
	checkoutHandler := NewCheckoutHandler(svc.Checkout, log)
	loginHandler := NewLoginHandler(svc.Login, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", loginHandler.Login)

		r.Get("/registers", registerHandler.ListRegisters)
		r.Post("/registers/{registerId}/sessions", registerHandler.OpenSession)

		r.Route("/checkout/{"+middleware.SessionIDParam+"}", func(r chi.Router) {
			r.Use(middleware.CheckoutSession(svc.Checkout))

			r.Get("/", checkoutHandler.GetSession)
			r.Delete("/", checkoutHandler.CloseSession)
			r.Get("/summary", checkoutHandler.Summary)
			r.Post("/items/{index}/adjust", checkoutHandler.AdjustQuantity)
		})
	})

	return r
}
