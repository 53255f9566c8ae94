package main

import (
	"net/http"
)

type makeGuessRequest struct {
	SessionID string `json:"session_id"`
	ID        string `json:"id"`
}

// makeGuess scores one guess against the session's secret. Repeating a guess
// returns the same result, and guessing on a finished game is rejected.
func (app *application) makeGuess(w http.ResponseWriter, r *http.Request) {
	var in makeGuessRequest
	if !app.readJSON(w, r, &in) {
		return
	}

	result, err := app.games.Guess(r.Context(), in.SessionID, in.ID)
	if err != nil {
		app.gameError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, result)
}
