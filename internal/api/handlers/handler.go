package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rohits-web03/minitracker/internal/swarm"
	"github.com/rohits-web03/minitracker/internal/utils"
)

// writeError maps core error kinds to HTTP statuses. Store and unexpected
// errors are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, swarm.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, swarm.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, swarm.ErrAlreadyExists):
		status = http.StatusConflict
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
		msg = "Internal server error"
	}
	utils.JSONResponse(w, status, utils.Payload{
		Success: false,
		Message: msg,
	})
}

func badRequest(w http.ResponseWriter, msg string) {
	utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
		Success: false,
		Message: msg,
	})
}

// pathID parses a uuid path parameter, writing a 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		badRequest(w, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalID parses a uuid from a request body. An empty string is the
// nil id and is left to the core to reject.
func parseOptionalID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}
