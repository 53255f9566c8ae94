package main

import (
	"net/http"
)

type gameModeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameTH        string `json:"name_th"`
	Description   string `json:"description"`
	DescriptionTH string `json:"description_th"`
	Icon          string `json:"icon"`
	Count         int    `json:"count"`
}

// listGameModes returns the mode catalog with per-mode pool sizes.
func (app *application) listGameModes(w http.ResponseWriter, r *http.Request) {
	catalog := make([]gameModeResponse, 0, len(app.catalog.All()))
	for _, mode := range app.catalog.All() {
		catalog = append(catalog, gameModeResponse{
			ID:            mode.ID,
			Name:          mode.Name,
			NameTH:        mode.NameTH,
			Description:   mode.Description,
			DescriptionTH: mode.DescriptionTH,
			Icon:          mode.Icon,
			Count:         len(mode.Filter(app.index)),
		})
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"game_modes": catalog})
}
