package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/cart"
	"github.com/tracketo/storefront/internal/catalog"
	"github.com/tracketo/storefront/internal/checkout"
	"github.com/tracketo/storefront/internal/order"
)

type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error   string                  `json:"error"`
	Details []ValidationErrorDetail `json:"details"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondWithValidationError renders validator failures field by field.
func respondWithValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		log.Error().Err(err).Msg("Unexpected error type during validation")
		respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		return
	}

	respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Error:   "Validation failed",
		Details: formatValidationErrors(validationErrors),
	})
}

func formatValidationErrors(errs validator.ValidationErrors) []ValidationErrorDetail {
	details := make([]ValidationErrorDetail, 0, len(errs))
	for _, fe := range errs {
		details = append(details, ValidationErrorDetail{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on the %q rule", fe.Tag()),
		})
	}
	return details
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrOutOfStock),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, order.ErrNoItems),
		errors.Is(err, order.ErrInvalidStatus):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
