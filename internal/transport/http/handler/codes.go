package handler

import (
	"encoding/json"
	"net/http"

	otpapp "github.com/naholgroupsclkln/nexora-backend/internal/application/otp"
)

// CodeHandler handles verification-code endpoints.
type CodeHandler struct {
	svc otpapp.Service
}

func NewCodeHandler(svc otpapp.Service) *CodeHandler {
	return &CodeHandler{svc: svc}
}

// Send reissues a verification code, replacing any outstanding one.
func (h *CodeHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if err := h.svc.Reissue(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verification code sent"})
}

func (h *CodeHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "email and code are required")
		return
	}
	if err := h.svc.Verify(r.Context(), req.Email, req.Code); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "email verified successfully"})
}
