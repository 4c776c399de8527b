package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"debtster-collections/internal/domain"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// ValidationError reports a malformed request before it reaches a service.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func writeValidation(w http.ResponseWriter, err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		ErrorBadRequest(w, ve.Field, ve.Message)
		return true
	}
	return false
}

// decodeJSON reads one JSON object from the body into dst. An empty body is
// allowed when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		if allowEmpty {
			return nil
		}
		return &ValidationError{Message: "request body is required"}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &ValidationError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.String()),
		}
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &ValidationError{Message: "request body too large"}
	}
	if strings.Contains(err.Error(), "YYYY-MM-DD") {
		return &ValidationError{Message: "dates must be YYYY-MM-DD"}
	}
	return &ValidationError{Message: "invalid JSON"}
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: "id", Message: "id must be a positive integer"}
	}
	return id, nil
}

// parseInstrumentFilter reads the optional instrument_id query parameter.
func parseInstrumentFilter(r *http.Request) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("instrument_id"))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, &ValidationError{Field: "instrument_id", Message: "instrument_id must be a positive integer"}
	}
	return &id, nil
}

func parseSearchTarget(raw string) domain.SearchTarget {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return domain.SearchDebtors
	}
	return domain.SearchTarget(raw)
}
