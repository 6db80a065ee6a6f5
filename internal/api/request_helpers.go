package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/spending-api/internal/api/shared"
	"github.com/phrazzld/spending-api/internal/domain"
)

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handleCallerAndPathID extracts the authenticated caller and the record ID
// from the path. It writes an error response and returns false if either is
// missing. An unparseable ID names a record that cannot exist, so it is a 404.
func handleCallerAndPathID(w http.ResponseWriter, r *http.Request) (string, uuid.UUID, bool) {
	caller, ok := handleCaller(w, r)
	if !ok {
		return "", uuid.Nil, false
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, MsgRecordNotFound, err)
		return "", uuid.Nil, false
	}

	return caller, id, true
}

// handleCaller returns the authenticated caller or writes a 401.
func handleCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller, ok := shared.GetCaller(r.Context())
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		shared.RespondWithError(w, r, http.StatusUnauthorized, MsgNotAuthenticated)
		return "", false
	}
	return caller, true
}

// HandleAPIError maps err to a status code and safe message and writes the response.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// decodeAndValidate decodes a JSON body into v and validates it, writing a
// 400 response and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
