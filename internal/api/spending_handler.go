package api

import (
	"net/http"

	"github.com/phrazzld/spending-api/internal/api/shared"
	"github.com/phrazzld/spending-api/internal/service"
)

// SpendingHandler handles the caller's spending records. Every route requires
// an authenticated caller in the request context.
type SpendingHandler struct {
	spendings service.SpendingService
}

// NewSpendingHandler creates a new SpendingHandler with the given dependencies.
func NewSpendingHandler(spendings service.SpendingService) *SpendingHandler {
	return &SpendingHandler{spendings: spendings}
}

// List handles GET /spending/.
func (h *SpendingHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := handleCaller(w, r)
	if !ok {
		return
	}

	records, err := h.spendings.List(r.Context(), caller)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, spendingsToResponse(records))
}

// Get handles GET /spending/{id}.
func (h *SpendingHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := handleCallerAndPathID(w, r)
	if !ok {
		return
	}

	record, err := h.spendings.Get(r.Context(), caller, id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, spendingToResponse(record))
}

// Create handles POST /spending/new.
func (h *SpendingHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := handleCaller(w, r)
	if !ok {
		return
	}

	var req SpendingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.spendings.Create(r.Context(), caller, req.ToDomain()); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, MsgRecordCreated)
}

// Update handles PUT /spending/{id}.
func (h *SpendingHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := handleCallerAndPathID(w, r)
	if !ok {
		return
	}

	var req SpendingUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	record, err := h.spendings.Update(r.Context(), caller, id, req.ToPatch())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, spendingToResponse(record))
}

// Delete handles DELETE /spending/{id}.
func (h *SpendingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := handleCallerAndPathID(w, r)
	if !ok {
		return
	}

	if err := h.spendings.Delete(r.Context(), caller, id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, MsgRecordDeleted)
}
