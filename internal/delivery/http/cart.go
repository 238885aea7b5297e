package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rafa37412/CeFoods/internal/entity"
)

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) cartResult(w http.ResponseWriter, r *http.Request, cart entity.Cart, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(cart))
}

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.app.Cart.Cart(r.Context())
	h.cartResult(w, r, cart, err)
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decode(r, &req); err != nil || req.ProductID == "" {
		badRequest(w, "product_id is required")
		return
	}
	cart, err := h.app.Cart.AddProduct(r.Context(), req.ProductID)
	h.cartResult(w, r, cart, err)
}

func (h *Handler) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	cart, err := h.app.Cart.SetQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	h.cartResult(w, r, cart, err)
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.app.Cart.RemoveItem(r.Context(), chi.URLParam(r, "id"))
	h.cartResult(w, r, cart, err)
}

func (h *Handler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Cart.Clear(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(entity.NewCart(nil)))
}
