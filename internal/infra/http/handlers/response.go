package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUsecaseError traduz DomainError/TechnicalError para o status HTTP.
func writeUsecaseError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeErrorResponse(w, domainStatus(de.Code), de.Code, de.Message)
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		log.Printf("❌ [HTTP] %s: %v", te.Code, te.Err)
		status := http.StatusInternalServerError
		if te.Code == usecase.CodeMailFailed {
			status = http.StatusBadGateway
		}
		writeErrorResponse(w, status, te.Code, te.Message)
		return
	}

	log.Printf("❌ [HTTP] erro inesperado: %v", err)
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "erro interno")
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeNotConfirmed, usecase.CodeMailDisabled:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// respond escreve v ou o erro do caso de uso.
func respond[T any](w http.ResponseWriter, status int, v T, err error) {
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, status, v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return false
	}
	return true
}

// queryConfirmer confirma exclusões quando a requisição traz ?confirm=true.
func queryConfirmer(r *http.Request) usecase.Confirmer {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if ok {
		return usecase.AlwaysConfirm
	}
	return usecase.NeverConfirm
}
