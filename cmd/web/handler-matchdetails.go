package main

import (
	"net/http"
)

type matchDetailsRequest struct {
	SessionID string `json:"session_id"`
	ID        string `json:"id"`
}

// getMatchDetails breaks the similarity between a guess and the secret down
// into its weighted components. Available at any point of the game.
func (app *application) getMatchDetails(w http.ResponseWriter, r *http.Request) {
	var in matchDetailsRequest
	if !app.readJSON(w, r, &in) {
		return
	}

	details, err := app.games.Details(r.Context(), in.SessionID, in.ID)
	if err != nil {
		app.gameError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, details)
}
