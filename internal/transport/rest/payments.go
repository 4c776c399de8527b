package rest

import (
	"net/http"

	"debtster-collections/internal/domain"
	"debtster-collections/internal/repository"
)

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	instrumentID, err := parseInstrumentFilter(r)
	if writeValidation(w, err) {
		return
	}

	payments, err := h.payments.List(r.Context(), repository.PaymentsFilter{InstrumentID: instrumentID})
	if err != nil {
		h.writeError(w, r, "listPayments", err)
		return
	}
	Success(w, "", payments)
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var in domain.PaymentInput
	if writeValidation(w, decodeJSON(w, r, &in, false)) {
		return
	}

	id, err := h.payments.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "createPayment", err)
		return
	}
	Success(w, "payment recorded", map[string]any{"id": id})
}

func (h *Handler) listProcessStages(w http.ResponseWriter, r *http.Request) {
	instrumentID, err := parseInstrumentFilter(r)
	if writeValidation(w, err) {
		return
	}

	stages, err := h.processStages.List(r.Context(), repository.ProcessStagesFilter{InstrumentID: instrumentID})
	if err != nil {
		h.writeError(w, r, "listProcessStages", err)
		return
	}
	Success(w, "", stages)
}

func (h *Handler) createProcessStage(w http.ResponseWriter, r *http.Request) {
	var in domain.ProcessStageInput
	if writeValidation(w, decodeJSON(w, r, &in, false)) {
		return
	}

	id, err := h.processStages.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "createProcessStage", err)
		return
	}
	Success(w, "process stage recorded", map[string]any{"id": id})
}
