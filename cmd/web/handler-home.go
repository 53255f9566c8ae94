package main

import (
	"net/http"
)

// currentGameSessionKey remembers the browser's latest game in the cookie
// session so the home page can point back to it.
const currentGameSessionKey = "currentGameSessionID"

type modeCard struct {
	ID          string
	Name        string
	NameTH      string
	Description string
	Icon        string
	Count       int
}

type homeTemplateData struct {
	Modes           []modeCard
	ActiveSessionID string
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	var cards []modeCard
	for _, mode := range app.catalog.All() {
		cards = append(cards, modeCard{
			ID:          mode.ID,
			Name:        mode.Name,
			NameTH:      mode.NameTH,
			Description: mode.Description,
			Icon:        mode.Icon,
			Count:       len(mode.Filter(app.index)),
		})
	}

	data := homeTemplateData{
		Modes:           cards,
		ActiveSessionID: app.sessionManager.GetString(r.Context(), currentGameSessionKey),
	}

	// htmx polls swap only the mode list, full page loads get the whole page.
	h := app.htmx.NewHandler(w, r)
	if h.IsHxRequest() {
		app.render(w, r, http.StatusOK, "home", data, "mode-cards")
		return
	}
	app.render(w, r, http.StatusOK, "home", data, "base")
}
