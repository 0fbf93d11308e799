package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/catalog"
	"github.com/tracketo/storefront/internal/session"
)

type AddProductRequest struct {
	Name           string            `json:"name" validate:"required"`
	Price          float64           `json:"price" validate:"required,gt=0"`
	DiscountPrice  *float64          `json:"discountPrice,omitempty" validate:"omitempty,gt=0,ltfield=Price"`
	Description    string            `json:"description" validate:"required"`
	Category       string            `json:"category" validate:"required"`
	Images         []string          `json:"images" validate:"required,min=1,dive,required"`
	Stock          int               `json:"stock" validate:"gte=0"`
	Specifications map[string]string `json:"specifications"`
}

// CatalogHandler serves the product catalog and the vendor product console.
type CatalogHandler struct {
	svc      catalog.Service
	session  *session.Session
	validate *validator.Validate
}

func NewCatalogHandler(svc catalog.Service, s *session.Session) *CatalogHandler {
	return &CatalogHandler{svc: svc, session: s, validate: validator.New()}
}

func (h *CatalogHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Post("/products", h.handleAddProduct)
	router.Get("/products/{id}", h.handleGetProduct)
	router.Delete("/products/{id}", h.handleDeleteProduct)
	router.Get("/vendors/{id}/products", h.handleListVendorProducts)
	router.Get("/categories", h.handleListCategories)
}

func (h *CatalogHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			log.Error().Err(err).Str("product_id", id).Msg("Failed to get product")
		}
		respondWithError(w, mapErrorToStatusCode(err), "Product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) handleListVendorProducts(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "id")

	products, err := h.svc.ListByVendor(r.Context(), vendorID)
	if err != nil {
		log.Error().Err(err).Str("vendor_id", vendorID).Msg("Failed to list vendor products")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list vendor products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

// handleAddProduct creates a catalog entry for the logged-in vendor. The
// vendor identity always comes from the session, never from the payload.
func (h *CatalogHandler) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	user := h.session.Current()
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "Login required")
		return
	}

	switch user.Role {
	case session.RoleVendor, session.RoleAdmin:
	case session.RoleUser, session.RoleGuest:
		respondWithError(w, http.StatusForbidden, "Only vendors can add products")
		return
	default:
		respondWithError(w, http.StatusForbidden, "Only vendors can add products")
		return
	}

	var payload AddProductRequest
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

	product, err := h.svc.Add(r.Context(), catalog.AddProductInput{
		Name:           payload.Name,
		Price:          payload.Price,
		DiscountPrice:  payload.DiscountPrice,
		Description:    payload.Description,
		Category:       payload.Category,
		Images:         payload.Images,
		VendorID:       user.ID,
		VendorName:     user.Name,
		VendorVerified: user.Verified,
		Stock:          payload.Stock,
		Specifications: payload.Specifications,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to add product")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to add product")
		return
	}

	respondWithJSON(w, http.StatusCreated, product)
}

// handleDeleteProduct removes a product. Vendors may delete only their own
// listings; admins may delete any.
func (h *CatalogHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	user := h.session.Current()
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "Login required")
		return
	}

	id := chi.URLParam(r, "id")

	switch user.Role {
	case session.RoleAdmin:
	case session.RoleVendor:
		product, err := h.svc.Get(r.Context(), id)
		if err != nil {
			respondWithError(w, mapErrorToStatusCode(err), "Product not found")
			return
		}
		if product.VendorID != user.ID {
			respondWithError(w, http.StatusForbidden, "Cannot delete another vendor's product")
			return
		}
	case session.RoleUser, session.RoleGuest:
		respondWithError(w, http.StatusForbidden, "Only vendors can delete products")
		return
	default:
		respondWithError(w, http.StatusForbidden, "Only vendors can delete products")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			log.Error().Err(err).Str("product_id", id).Msg("Failed to delete product")
		}
		respondWithError(w, mapErrorToStatusCode(err), "Failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, catalog.Categories())
}
