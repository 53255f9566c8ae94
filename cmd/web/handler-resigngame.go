package main

import (
	"net/http"
)

type resignGameRequest struct {
	SessionID string `json:"session_id"`
}

// resignGame ends the session and reveals the secret.
func (app *application) resignGame(w http.ResponseWriter, r *http.Request) {
	var in resignGameRequest
	if !app.readJSON(w, r, &in) {
		return
	}

	result, err := app.games.Resign(r.Context(), in.SessionID)
	if err != nil {
		app.gameError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, result)
}
