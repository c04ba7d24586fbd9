package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"scribe-be/pkg/errors"
	"scribe-be/pkg/logger"
)

// Response is the success envelope every endpoint uses.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.NewValidationError("Invalid request body", nil)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeData(w http.ResponseWriter, status int, data interface{}, log *logger.Logger) {
	writeJSON(w, status, Response{Success: true, Data: data}, log)
}

// writeError maps any error onto the JSON error envelope. Unknown errors
// become opaque internal errors so storage details never leak to clients.
func writeError(w http.ResponseWriter, err error, log *logger.Logger) {
	appErr := errors.AsAppError(err, "Internal server error")

	if appErr.Type == errors.ErrorTypeInternal || appErr.Type == errors.ErrorTypeExternal {
		log.WithError(appErr).Error("Request failed")
	} else {
		log.WithError(appErr).Debug("Request rejected")
	}

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	writeJSON(w, appErr.StatusCode, response, log)
}
