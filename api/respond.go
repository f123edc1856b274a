package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rpupo63/portfolio-cms-backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON writes data with the given status. Headers are set before the
// status line goes out.
func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps err to a status and an ErrorResponse. Server errors are
// logged with their full cause chain; the client only sees the public message.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
		return
	}

	response := ErrorResponse{Error: apiErr.PublicMessage()}
	if apiErr.IsServerError() {
		r.logger.Error().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
	} else {
		response.Message = apiErr.Details
		response.Details = apiErr.Issues
	}

	r.WriteJSON(w, apiErr.StatusCode, response)
}

// wrapStoreError gives failures that did not come from the errs package a
// "Failed to <operation> <entity>" message.
func wrapStoreError(operation, entity string, err error) error {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}
	return errs.NewStoreError(operation, entity, err)
}
