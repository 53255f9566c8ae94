package main

import (
	"net/http"
)

type startGameRequest struct {
	Mode string `json:"mode,omitempty"`
}

type startGameResponse struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	PoolSize  int    `json:"pool_size"`
}

// startGame creates a new session for the requested mode. The secret is
// chosen here and never leaves the server until win or resignation.
func (app *application) startGame(w http.ResponseWriter, r *http.Request) {
	var in startGameRequest
	if !app.readJSON(w, r, &in) {
		return
	}

	started, err := app.games.Start(r.Context(), in.Mode)
	if err != nil {
		app.gameError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), currentGameSessionKey, started.SessionID)

	app.writeJSON(w, r, http.StatusOK, startGameResponse{
		SessionID: started.SessionID,
		Mode:      started.Mode.ID,
		PoolSize:  started.PoolSize,
	})
}
