package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	domcart "github.com/ferrishop/commerce-core/internal/domain/cart"
	domcat "github.com/ferrishop/commerce-core/internal/domain/catalog"
	domorder "github.com/ferrishop/commerce-core/internal/domain/order"
	dompay "github.com/ferrishop/commerce-core/internal/domain/payment"
	domuser "github.com/ferrishop/commerce-core/internal/domain/user"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeDomainError maps typed failures onto status codes: absent entities are
// 404, rejected inputs, illegal transitions, conflicts and stock shortages
// are 400, everything else is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domcat.ErrNotFound),
		errors.Is(err, domcat.ErrProductsMissing),
		errors.Is(err, domorder.ErrNotFound),
		errors.Is(err, dompay.ErrNotFound),
		errors.Is(err, domuser.ErrNotFound),
		errors.Is(err, domcart.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domcat.ErrInvalidName),
		errors.Is(err, domcat.ErrInvalidPrice),
		errors.Is(err, domcat.ErrInvalidQuantity),
		errors.Is(err, domcat.ErrInvalidStockLevel),
		errors.Is(err, domcat.ErrInsufficientStock),
		errors.Is(err, domorder.ErrUserRequired),
		errors.Is(err, domorder.ErrNoProducts),
		errors.Is(err, domorder.ErrUnknownStatus),
		errors.Is(err, domorder.ErrInvalidStatus),
		errors.Is(err, dompay.ErrAlreadyExists),
		errors.Is(err, dompay.ErrInvalidState),
		errors.Is(err, dompay.ErrUnknownMethod),
		errors.Is(err, domuser.ErrAlreadyExists),
		errors.Is(err, domuser.ErrInvalidUsername),
		errors.Is(err, domuser.ErrInvalidEmail),
		errors.Is(err, domuser.ErrWeakPassword),
		errors.Is(err, domuser.ErrInvalidRole),
		errors.Is(err, domuser.ErrUnknownRole):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
