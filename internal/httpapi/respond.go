package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/autocrm/leads-api/dynstore"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeValidationError renders validator violations as a field-error list,
// DRF-style: {"field": ["failed 'rule' validation"]}.
func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, e := range verrs {
			fields[e.Field()] = append(fields[e.Field()], fmt.Sprintf("failed %q validation", e.Tag()))
		}
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}
	writeErrorMessage(w, http.StatusBadRequest, err.Error())
}

// writeStoreError maps the store error taxonomy onto HTTP statuses and the
// caller-facing messages the original API used.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dynstore.ErrInvalidCursor):
		writeErrorMessage(w, http.StatusBadRequest, "El token de paginación no es válido.")
	case errors.Is(err, dynstore.ErrCapacityExceeded):
		writeErrorMessage(w, http.StatusServiceUnavailable,
			"Se ha excedido la capacidad provisionada. Por favor, inténtalo de nuevo más tarde.")
	case errors.Is(err, dynstore.ErrResourceNotFound):
		writeErrorMessage(w, http.StatusNotFound, "La tabla no fue encontrada.")
	case errors.Is(err, dynstore.ErrConditionFailed):
		writeErrorMessage(w, http.StatusBadRequest, "La condición especificada no se cumplió.")
	case errors.Is(err, dynstore.ErrValidationFailed):
		writeErrorMessage(w, http.StatusBadRequest, "Hubo un problema con los datos de entrada.")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("store operation failed")
		writeErrorMessage(w, http.StatusInternalServerError, err.Error())
	}
}

// nullableToken renders an exhausted cursor as JSON null, matching the
// original next_page_token contract.
func nullableToken(token string) any {
	if token == "" {
		return nil
	}
	return token
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "El cuerpo de la petición no es JSON válido.")
		return false
	}
	return true
}
