package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/blog-cms-backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON writes data as a 200 JSON response.
func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus writes data as a JSON response with an explicit status code.
func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps an error to a JSON error response. Expected errors carry
// their own status code via *errs.ApiErr; anything else is logged with full
// detail server-side and surfaced as a generic 500 so no internal detail
// leaks to the client.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.writeGenericInternalError(w, http.StatusInternalServerError)
		return
	}

	// Storage failures surface as a generic message; the cause chain only
	// goes to the log.
	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Msg(apiErr.GetFullError())
		r.writeGenericInternalError(w, apiErr.StatusCode)
		return
	}

	if apiErr.Cause != nil {
		r.logger.Warn().Msg(apiErr.GetFullError())
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, ErrorResponse{
		Error:   apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	})
}

func (r Responder) writeGenericInternalError(w http.ResponseWriter, status int) {
	r.WriteJSONStatus(w, status, ErrorResponse{
		Error:   "Internal Server Error",
		Status:  "error",
		Message: "An unexpected error occurred",
	})
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}

// passOrWrap keeps store-origin ApiErrs (validation failures) as-is and wraps
// everything else as a database error.
func passOrWrap(err error, operation, entity string) error {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}
	return wrapDatabaseError(operation, entity, err)
}
