package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tracketo/storefront/internal/cart"
	"github.com/tracketo/storefront/internal/catalog"
	"github.com/tracketo/storefront/internal/checkout"
	handler "github.com/tracketo/storefront/internal/handler/http"
	"github.com/tracketo/storefront/internal/order"
	"github.com/tracketo/storefront/internal/session"
)

// Deps are the wired state containers the router serves. They are
// constructed once at startup and passed in explicitly.
type Deps struct {
	Catalog  catalog.Service
	Orders   order.Service
	Cart     *cart.Cart
	Session  *session.Session
	Checkout *checkout.Service
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	handler.NewCatalogHandler(deps.Catalog, deps.Session).RegisterRoutes(r)
	handler.NewSessionHandler(deps.Session).RegisterRoutes(r)
	handler.NewCartHandler(deps.Cart, deps.Catalog).RegisterRoutes(r)
	handler.NewOrderHandler(deps.Orders, deps.Session).RegisterRoutes(r)
	handler.NewCheckoutHandler(deps.Checkout).RegisterRoutes(r)

	return r
}
