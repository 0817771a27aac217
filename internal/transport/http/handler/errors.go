package handler

import (
	"errors"
	"net/http"

	"github.com/abdussamadse/todo-server/internal/domain"
)

// devMode controls whether unexpected error messages are exposed to clients.
// Set once at router construction; outside development they are suppressed.
var devMode bool

func SetDevMode(v bool) { devMode = v }

// httpError maps domain sentinel errors to status codes and writes the error
// envelope. Unclassified errors become a 500 with the message hidden unless
// running in development.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrInvalidOrExpired),
		errors.Is(err, domain.ErrSamePassword):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		msg := "an unexpected error occurred"
		if devMode {
			msg = err.Error()
		}
		writeError(w, http.StatusInternalServerError, msg)
	}
}
