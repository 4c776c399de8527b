package rest

import (
	"net/http"

	"debtster-collections/internal/domain"
)

func (h *Handler) listDebtors(w http.ResponseWriter, r *http.Request) {
	debtors, err := h.debtors.List(r.Context())
	if err != nil {
		h.writeError(w, r, "listDebtors", err)
		return
	}
	Success(w, "", debtors)
}

func (h *Handler) getDebtor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if writeValidation(w, err) {
		return
	}

	debtor, err := h.debtors.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "getDebtor", err)
		return
	}
	Success(w, "", debtor)
}

func (h *Handler) createDebtor(w http.ResponseWriter, r *http.Request) {
	var in domain.DebtorInput
	if writeValidation(w, decodeJSON(w, r, &in, false)) {
		return
	}

	id, err := h.debtors.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "createDebtor", err)
		return
	}
	Success(w, "debtor created", map[string]any{"id": id})
}

func (h *Handler) updateDebtor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if writeValidation(w, err) {
		return
	}
	var in domain.DebtorInput
	if writeValidation(w, decodeJSON(w, r, &in, false)) {
		return
	}

	n, err := h.debtors.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, "updateDebtor", err)
		return
	}
	if n == 0 {
		ErrorNotFound(w, "debtor not found")
		return
	}
	Success(w, "debtor updated", map[string]any{"changed": n})
}

func (h *Handler) deleteDebtor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if writeValidation(w, err) {
		return
	}

	n, err := h.debtors.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "deleteDebtor", err)
		return
	}
	if n == 0 {
		ErrorNotFound(w, "debtor not found")
		return
	}
	Success(w, "debtor deleted", map[string]any{"changed": n})
}
