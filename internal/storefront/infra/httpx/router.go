package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcamposr/storefront-gateway/internal/storefront/core/session"
	"github.com/jcamposr/storefront-gateway/internal/storefront/infra/httpx/middlewares"
)

// NewRouter mounts the storefront surface on a chi router.
func NewRouter(handler *Handler, sessions *session.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.AttachSession(sessions))

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", handler.ListCategories)
		r.Get("/products", handler.ListProducts)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", handler.GetCart)
			r.Post("/items", handler.AddItem)
			r.Put("/items/{productID}", handler.UpdateItemQuantity)
			r.Delete("/items/{productID}", handler.RemoveItem)
		})

		r.Post("/checkout", handler.Checkout)
		r.Get("/notifications", handler.DrainNotifications)
	})

	return r
}
