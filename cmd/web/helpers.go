package main

import (
	"encoding/json"
	"github.com/kritsada/personaguess/internal/errors"
	"github.com/kritsada/personaguess/internal/game"
	"io"
	"log/slog"
	"net/http"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// writeJSON writes out as the JSON response body.
func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, out any) {
	encoded, err := json.Marshal(out)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "marshal response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

// readJSON decodes the request body into in and rejects unknown fields.
// An empty body leaves in at its zero value. It reports a 400 itself when
// decoding fails, so callers just return.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, in any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(in); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		app.logger.Debug("malformed request body",
			"method", r.Method, "uri", r.URL.RequestURI(), "error", err.Error())
		app.errorJSON(w, r, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}

// errorJSON writes the JSON error envelope used by the whole game API.
func (app *application) errorJSON(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, map[string]string{"error": message})
}

// gameError translates the game package sentinels to API responses.
func (app *application) gameError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		app.errorJSON(w, r, http.StatusNotFound, "session not found")
	case errors.Is(err, game.ErrUnknownPerson):
		app.errorJSON(w, r, http.StatusNotFound, "unknown person")
	case errors.Is(err, game.ErrEmptyPool):
		app.errorJSON(w, r, http.StatusNotFound, "no persons match this game mode")
	case errors.Is(err, game.ErrSessionFinished):
		app.errorJSON(w, r, http.StatusConflict, "game already finished")
	case errors.Is(err, game.ErrRankingNotAvailable):
		app.errorJSON(w, r, http.StatusForbidden, "ranking is only available after the game ends")
	default:
		app.serverError(w, r, err)
	}
}
