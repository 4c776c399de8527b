package rest

import (
	"net/http"

	"debtster-collections/internal/domain"
)

func (h *Handler) listInstruments(w http.ResponseWriter, r *http.Request) {
	instruments, err := h.instruments.List(r.Context())
	if err != nil {
		h.writeError(w, r, "listInstruments", err)
		return
	}
	Success(w, "", instruments)
}

func (h *Handler) getInstrument(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if writeValidation(w, err) {
		return
	}

	inst, err := h.instruments.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "getInstrument", err)
		return
	}
	Success(w, "", inst)
}

func (h *Handler) createInstrument(w http.ResponseWriter, r *http.Request) {
	var in domain.InstrumentInput
	if writeValidation(w, decodeJSON(w, r, &in, false)) {
		return
	}

	id, err := h.instruments.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "createInstrument", err)
		return
	}
	Success(w, "instrument created", map[string]any{"id": id})
}

func (h *Handler) updateInstrument(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if writeValidation(w, err) {
		return
	}
	var in domain.InstrumentInput
	if writeValidation(w, decodeJSON(w, r, &in, false)) {
		return
	}

	n, err := h.instruments.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, "updateInstrument", err)
		return
	}
	if n == 0 {
		ErrorNotFound(w, "instrument not found")
		return
	}
	Success(w, "instrument updated", map[string]any{"changed": n})
}

func (h *Handler) deleteInstrument(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if writeValidation(w, err) {
		return
	}

	n, err := h.instruments.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "deleteInstrument", err)
		return
	}
	if n == 0 {
		ErrorNotFound(w, "instrument not found")
		return
	}
	Success(w, "instrument deleted", map[string]any{"changed": n})
}

func (h *Handler) recalculateInterest(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if writeValidation(w, err) {
		return
	}

	inst, changed, err := h.instruments.RecalculateInterest(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "recalculateInterest", err)
		return
	}

	msg := "accrued interest updated"
	if !changed {
		msg = "instrument is not overdue"
	}
	Success(w, msg, inst)
}
