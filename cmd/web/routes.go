package main

import (
	"github.com/justinas/alice"
	"github.com/kritsada/personaguess/ui"
	"io/fs"
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	staticFiles, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.FileServerFS(staticFiles)
	mux.Handle("GET /static/", http.StripPrefix("/static", cacheForeverHeaders(fileServer)))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	// The HTML surface carries the CSRF-protected session cookie.
	web := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext)
	mux.Handle("GET /{$}", web.ThenFunc(app.home))

	// The JSON game API identifies games by explicit session_id, the cookie
	// only remembers the browser's latest game for the home page.
	api := alice.New(app.sessionManager.LoadAndSave)
	mux.Handle("GET /persons", api.ThenFunc(app.listPersons))
	mux.Handle("GET /game_modes", api.ThenFunc(app.listGameModes))
	mux.Handle("POST /start_game", api.ThenFunc(app.startGame))
	mux.Handle("POST /make_guess", api.ThenFunc(app.makeGuess))
	mux.Handle("POST /resign_game", api.ThenFunc(app.resignGame))
	mux.Handle("POST /get_ranking", api.ThenFunc(app.getRanking))
	mux.Handle("POST /get_match_details", api.ThenFunc(app.getMatchDetails))

	return app.recoverPanic(app.logRequest(app.secureHeaders(mux)))
}
