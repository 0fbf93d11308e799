package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/cart"
	"github.com/tracketo/storefront/internal/catalog"
)

type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart view with its derived totals.
type CartResponse struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice float64     `json:"totalPrice"`
}

// CartHandler mutates the browsing session's cart. Products are resolved
// through the catalog so the cart always snapshots current catalog data.
type CartHandler struct {
	cart    *cart.Cart
	catalog catalog.Service
}

func NewCartHandler(c *cart.Cart, svc catalog.Service) *CartHandler {
	return &CartHandler{cart: c, catalog: svc}
}

func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/cart", h.handleGetCart)
	router.Delete("/cart", h.handleClearCart)
	router.Post("/cart/items", h.handleAddItem)
	router.Put("/cart/items/{productID}", h.handleUpdateItem)
	router.Delete("/cart/items/{productID}", h.handleRemoveItem)
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	h.respondWithCart(w)
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var payload AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	product, err := h.catalog.Get(r.Context(), payload.ProductID)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			log.Error().Err(err).Str("product_id", payload.ProductID).Msg("Failed to resolve product for cart")
		}
		respondWithError(w, mapErrorToStatusCode(err), "Product not found")
		return
	}

	if err := h.cart.Add(r.Context(), *product, payload.Quantity); err != nil {
		if errors.Is(err, cart.ErrOutOfStock) {
			respondWithError(w, mapErrorToStatusCode(err), "Product is out of stock")
			return
		}
		if errors.Is(err, cart.ErrInvalidQuantity) {
			respondWithError(w, mapErrorToStatusCode(err), "Quantity must be at least 1")
			return
		}
		log.Error().Err(err).Str("product_id", payload.ProductID).Msg("Failed to add cart item")
		respondWithError(w, http.StatusInternalServerError, "Failed to add cart item")
		return
	}

	h.respondWithCart(w)
}

func (h *CartHandler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var payload UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), productID, payload.Quantity); err != nil {
		log.Error().Err(err).Str("product_id", productID).Msg("Failed to update cart item")
		respondWithError(w, http.StatusInternalServerError, "Failed to update cart item")
		return
	}

	h.respondWithCart(w)
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if err := h.cart.Remove(r.Context(), productID); err != nil {
		log.Error().Err(err).Str("product_id", productID).Msg("Failed to remove cart item")
		respondWithError(w, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}

	h.respondWithCart(w)
}

func (h *CartHandler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		log.Error().Err(err).Msg("Failed to clear cart")
		respondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	h.respondWithCart(w)
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter) {
	respondWithJSON(w, http.StatusOK, CartResponse{
		Items:      h.cart.Items(),
		TotalItems: h.cart.TotalItems(),
		TotalPrice: h.cart.TotalPrice(),
	})
}
