// Package main is the entry point of the application
package main

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/blitzarena/chess-server/pkg/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// configureUpgrader installs the origin policy on the shared upgrader.
// Must run once, before the server accepts requests.
func (app *application) configureUpgrader() {
	allowed := app.Config.AllowedOrigin
	upgrader.CheckOrigin = func(r *http.Request) bool {
		if allowed == "" {
			return true
		}
		return r.Header.Get("Origin") == allowed
	}
}

// handleWebSocket handles WebSocket connections
func (app *application) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Upgrade HTTP connection to WebSocket
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.Logger.Error("Failed to upgrade to WebSocket", zap.Error(err))
		return
	}

	// The player identity travels as a query parameter; a connection
	// without one may connect but cannot act on sessions.
	username := r.URL.Query().Get("user")

	// Create and register connection
	conn := server.NewConnection(ws, app.Hub, username, app.Logger)
	app.Hub.Register(conn)

	app.Logger.Info("WebSocket connection established",
		zap.String("remote_addr", r.RemoteAddr),
		zap.String("username", username))

	// Start connection read/write goroutines
	go conn.WritePump()
	go conn.ReadPump()
}
