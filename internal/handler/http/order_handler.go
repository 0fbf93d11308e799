package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/order"
	"github.com/tracketo/storefront/internal/session"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderHandler serves the role-scoped order views of the account, merchant
// and admin consoles.
type OrderHandler struct {
	svc     order.Service
	session *session.Session
}

func NewOrderHandler(svc order.Service, s *session.Session) *OrderHandler {
	return &OrderHandler{svc: svc, session: s}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Get("/orders", h.handleListOrders)
	router.Get("/orders/{id}", h.handleGetOrder)
	router.Patch("/orders/{id}/status", h.handleUpdateStatus)
}

// handleListOrders scopes the collection by the caller's session role:
// admins see all orders, vendors theirs, users their own, guests none.
func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	role := session.RoleGuest
	actorID := ""
	if user := h.session.Current(); user != nil {
		role = user.Role
		actorID = user.ID
	}

	orders, err := h.svc.ListForActor(r.Context(), role, actorID)
	if err != nil {
		log.Error().Err(err).Stringer("role", role).Msg("Failed to list orders")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ord, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, order.ErrNotFound) {
			log.Error().Err(err).Str("order_id", id).Msg("Failed to get order")
		}
		respondWithError(w, mapErrorToStatusCode(err), "Order not found")
		return
	}

	respondWithJSON(w, http.StatusOK, ord)
}

// handleUpdateStatus is admin-only; status transitions are unrestricted
// beyond the status being a known value.
func (h *OrderHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := h.session.Current()
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "Login required")
		return
	}

	switch user.Role {
	case session.RoleAdmin:
	case session.RoleUser, session.RoleVendor, session.RoleGuest:
		respondWithError(w, http.StatusForbidden, "Only admins can update order status")
		return
	default:
		respondWithError(w, http.StatusForbidden, "Only admins can update order status")
		return
	}

	id := chi.URLParam(r, "id")

	var payload UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, order.Status(payload.Status)); err != nil {
		if !errors.Is(err, order.ErrNotFound) && !errors.Is(err, order.ErrInvalidStatus) {
			log.Error().Err(err).Str("order_id", id).Msg("Failed to update order status")
		}
		respondWithError(w, mapErrorToStatusCode(err), "Failed to update order status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
