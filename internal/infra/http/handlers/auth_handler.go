package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

// AuthHandler não tem bloqueio nem limite de tentativas: o par fixo de
// credenciais sempre entra.
type AuthHandler struct {
	Funnel *usecase.Funnel
}

func NewAuthHandler(f *usecase.Funnel) *AuthHandler {
	return &AuthHandler{Funnel: f}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Authenticated bool `json:"authenticated"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ok, err := h.Funnel.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "E-mail ou senha inválidos.")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Authenticated: true})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Funnel.Logout(r.Context()); err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Authenticated: false})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AuthResponse{Authenticated: h.Funnel.IsAuthenticated()})
}
