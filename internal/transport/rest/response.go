package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"debtster-collections/internal/domain"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

func Response(w http.ResponseWriter, httpStatus int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[HTTP] write response error: %v", err)
	}
}

func Success(w http.ResponseWriter, message string, data any) {
	Response(w, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

func SuccessAccepted(w http.ResponseWriter, message string, data any) {
	Response(w, http.StatusAccepted, APIResponse{Success: true, Message: message, Data: data})
}

func Error(w http.ResponseWriter, httpStatus int, message string) {
	Response(w, httpStatus, APIResponse{Success: false, Error: message})
}

func ErrorBadRequest(w http.ResponseWriter, field, message string) {
	Response(w, http.StatusBadRequest, APIResponse{Success: false, Error: message, Field: field})
}

func ErrorNotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

func ErrorInternal(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindConflict, domain.KindReference:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeError maps a service error onto the envelope. Internal causes are
// logged and only exposed when debug is on.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = &domain.Error{Kind: domain.KindInternal, Message: "internal server error", Err: err}
	}

	status := statusFor(de.Kind)
	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s: %s error: %v", r.Method, r.URL.Path, op, err)
		msg := de.Message
		if h.debug {
			msg = err.Error()
		}
		ErrorInternal(w, msg)
		return
	}

	Response(w, status, APIResponse{Success: false, Error: de.Message, Field: de.Field})
}
