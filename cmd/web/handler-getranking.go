package main

import (
	"net/http"
)

type getRankingRequest struct {
	SessionID string `json:"session_id"`
}

// getRanking returns the full ranked pool. Only available once the game is
// over, otherwise the top of the list would give the secret away.
func (app *application) getRanking(w http.ResponseWriter, r *http.Request) {
	var in getRankingRequest
	if !app.readJSON(w, r, &in) {
		return
	}

	entries, err := app.games.Ranking(r.Context(), in.SessionID)
	if err != nil {
		app.gameError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"ranking": entries})
}
