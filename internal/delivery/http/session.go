package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Rafa37412/CeFoods/internal/entity"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	account, err := h.app.Session.Current(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(account))
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req entity.Registration
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	account, err := h.app.Session.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionView(&account))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	account, err := h.app.Session.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(&account))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Logout(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(nil))
}

// sessionResult renders the outcome of an operation that is a no-op when
// nobody is logged in.
func (h *Handler) sessionResult(w http.ResponseWriter, r *http.Request, account *entity.Account, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if account == nil {
		h.writeError(w, r, entity.ErrNoSession)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(account))
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req entity.ProfilePatch
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	account, err := h.app.Session.UpdateUser(r.Context(), req)
	h.sessionResult(w, r, account, err)
}

func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	account, err := h.app.Session.Deposit(r.Context(), req.Amount)
	h.sessionResult(w, r, account, err)
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	account, err := h.app.Session.Withdraw(r.Context(), req.Amount)
	h.sessionResult(w, r, account, err)
}
