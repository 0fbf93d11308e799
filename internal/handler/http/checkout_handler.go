package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/checkout"
	"github.com/tracketo/storefront/internal/order"
)

type CheckoutRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// CheckoutHandler turns the current cart into an order. Validation failures
// never reach the data layer; a failed checkout leaves the cart intact.
type CheckoutHandler struct {
	svc      *checkout.Service
	validate *validator.Validate
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, validate: validator.New()}
}

func (h *CheckoutHandler) RegisterRoutes(router chi.Router) {
	router.Post("/checkout", h.handleCheckout)
}

func (h *CheckoutHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var payload CheckoutRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		respondWithValidationError(w, err)
		return
	}

	ord, err := h.svc.PlaceOrder(r.Context(), order.CustomerDetails{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
	})
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			respondWithError(w, mapErrorToStatusCode(err), "Cart is empty")
			return
		}
		log.Error().Err(err).Msg("Failed to place order")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to place order")
		return
	}

	respondWithJSON(w, http.StatusCreated, ord)
}
