package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/webshop/order-api/internal/catalog"
	"github.com/webshop/order-api/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError translates domain errors to HTTP statuses: missing entities to
// 404, conflicts and invalid input to 400, everything else to 500 with the
// detail kept out of the response.
func writeError(w http.ResponseWriter, err error) {
	var (
		notFound     orders.ProductNotFoundError
		insufficient orders.InsufficientStockError
		invalid      ValidationError
	)
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, orders.ErrOrderNotFound),
		errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, catalog.ErrDuplicateName),
		errors.As(err, &insufficient),
		errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
