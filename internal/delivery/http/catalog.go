package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rafa37412/CeFoods/internal/entity"
)

func (h *Handler) handleGetProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []entity.Product
		err      error
	)
	switch q := r.URL.Query(); {
	case q.Get("category") != "":
		products, err = h.app.Storefront.ProductsByCategory(r.Context(), q.Get("category"))
	case q.Get("store") != "":
		products, err = h.app.Storefront.ProductsByStore(r.Context(), q.Get("store"))
	default:
		products, err = h.app.Storefront.Products(r.Context())
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductViews(products))
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Storefront.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductView(p))
}

func (h *Handler) handleGetCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Storefront.Categories())
}

func (h *Handler) handleGetStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.app.Storefront.Stores(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStoreViews(stores))
}

func (h *Handler) handleGetStore(w http.ResponseWriter, r *http.Request) {
	s, err := h.app.Storefront.Store(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStoreView(s))
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	res, err := h.app.Storefront.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchView{
		Products: newProductViews(res.Products),
		Stores:   newStoreViews(res.Stores),
	})
}

func (h *Handler) handleRemoteProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.app.Storefront.RemoteProducts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductViews(products))
}

func (h *Handler) handleOpenStore(w http.ResponseWriter, r *http.Request) {
	var req entity.StoreDraft
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	s, err := h.app.Storefront.OpenStore(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newStoreView(s))
}

func (h *Handler) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var req entity.ProductDraft
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	p, err := h.app.Storefront.AddProduct(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newProductView(p))
}
