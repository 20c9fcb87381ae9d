// Package main is the entry point of the application
package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func (app *application) routes() http.Handler {
	app.configureUpgrader()

	r := mux.NewRouter()

	r.HandleFunc("/health", app.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws", app.authenticate(app.handleWebSocket))

	allowedOrigins := []string{"*"}
	if app.Config.AllowedOrigin != "" {
		allowedOrigins = []string{app.Config.AllowedOrigin}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"X-Api-Key", "Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
