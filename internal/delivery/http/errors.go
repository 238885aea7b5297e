package http

import (
	"errors"
	"net/http"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/kv"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{entity.ErrDuplicateUsername, http.StatusConflict, "duplicate_username"},
	{entity.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{entity.ErrNoSession, http.StatusUnauthorized, "no_session"},
	{entity.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds"},
	{entity.ErrProductNotFound, http.StatusNotFound, "product_not_found"},
	{entity.ErrStoreNotFound, http.StatusNotFound, "store_not_found"},
	{entity.ErrAccountNotFound, http.StatusNotFound, "account_not_found"},
	{entity.ErrCheckoutNotActive, http.StatusNotFound, "checkout_not_active"},
	{entity.ErrCheckoutPending, http.StatusConflict, "checkout_pending"},
	{entity.ErrStoreExists, http.StatusConflict, "store_exists"},
	{entity.ErrNoStore, http.StatusForbidden, "no_store"},
	{entity.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
	{entity.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{entity.ErrInvalidPrice, http.StatusBadRequest, "invalid_price"},
	{entity.ErrInvalidStore, http.StatusBadRequest, "invalid_store"},
	{entity.ErrInvalidProduct, http.StatusBadRequest, "invalid_product"},
	{entity.ErrInvalidRating, http.StatusBadRequest, "invalid_rating"},
	{entity.ErrInvalidPayment, http.StatusBadRequest, "invalid_payment"},
	{entity.ErrInvalidSignup, http.StatusBadRequest, "invalid_signup"},
	{entity.ErrNetwork, http.StatusBadGateway, "network_error"},
	{kv.ErrVersionConflict, http.StatusConflict, "version_conflict"},
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			writeJSON(w, e.status, errorResponse{Error: e.err.Error(), Code: e.code})
			return
		}
	}
	h.log.Errorw("Request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "internal"})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Code: "invalid_request"})
}
