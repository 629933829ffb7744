package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	accountapp "github.com/naholgroupsclkln/nexora-backend/internal/application/account"
	"github.com/naholgroupsclkln/nexora-backend/internal/domain"
)

// AccountHandler handles signup and signin endpoints.
type AccountHandler struct {
	svc accountapp.Service
}

func NewAccountHandler(svc accountapp.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		// The account survives a failed email; still a 201, with a heads-up.
		if a != nil && errors.Is(err, domain.ErrDeliveryFailed) {
			writeJSON(w, http.StatusCreated, AccountEnvelope{
				Account: a,
				Message: "account registered; verification email could not be sent, request a new code",
			})
			return
		}
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AccountEnvelope{
		Account: a,
		Message: "account registered, verification code sent",
	})
}

func (h *AccountHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req domain.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := h.svc.Signin(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AccountEnvelope{Account: a, Message: "signed in"})
}
