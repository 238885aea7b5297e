package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rafa37412/CeFoods/internal/entity"
)

type checkoutRequest struct {
	PaymentMethod entity.PaymentMethod `json:"payment_method"`
}

type rateRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handler) checkoutResult(w http.ResponseWriter, r *http.Request, co entity.Checkout, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCheckoutView(co))
}

func (h *Handler) handleStartCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	co, err := h.app.Checkout.Start(r.Context(), req.PaymentMethod)
	if errors.Is(err, entity.ErrInsufficientFunds) {
		// The rejected checkout carries the reason shown to the buyer.
		writeJSON(w, http.StatusUnprocessableEntity, struct {
			errorResponse
			Checkout checkoutView `json:"checkout"`
		}{errorResponse{Error: err.Error(), Code: "insufficient_funds"}, newCheckoutView(co)})
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newCheckoutView(co))
}

func (h *Handler) handleGetCheckout(w http.ResponseWriter, r *http.Request) {
	co, err := h.app.Checkout.Active()
	h.checkoutResult(w, r, co, err)
}

func (h *Handler) handleRate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	co, err := h.app.Checkout.Rate(r.Context(), chi.URLParam(r, "id"), req.Rating, req.Comment)
	h.checkoutResult(w, r, co, err)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	co, err := h.app.Checkout.Next(r.Context())
	h.checkoutResult(w, r, co, err)
}

func (h *Handler) handlePrev(w http.ResponseWriter, r *http.Request) {
	co, err := h.app.Checkout.Prev(r.Context())
	h.checkoutResult(w, r, co, err)
}

func (h *Handler) handleSkip(w http.ResponseWriter, r *http.Request) {
	co, err := h.app.Checkout.Skip(r.Context())
	h.checkoutResult(w, r, co, err)
}
