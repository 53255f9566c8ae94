package main

import (
	"net/http"
)

type personResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// listPersons returns every guessable person. The frontend uses this for
// guess autocompletion.
func (app *application) listPersons(w http.ResponseWriter, r *http.Request) {
	persons := make([]personResponse, 0, app.index.Len())
	for _, person := range app.index.All() {
		persons = append(persons, personResponse{ID: person.ID, Label: person.Label})
	}
	app.writeJSON(w, r, http.StatusOK, map[string]any{"persons": persons})
}
