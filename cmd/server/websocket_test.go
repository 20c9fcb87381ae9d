package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blitzarena/chess-server/pkg/config"
)

func TestCheckOriginPolicy(t *testing.T) {
	app := &application{Config: &config.Config{AllowedOrigin: "https://play.example.com"}}
	app.configureUpgrader()

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "https://play.example.com")
	assert.True(t, upgrader.CheckOrigin(r))

	r.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, upgrader.CheckOrigin(r))
}

func TestCheckOriginOpenWhenUnconfigured(t *testing.T) {
	app := &application{Config: &config.Config{}}
	app.configureUpgrader()

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "https://anywhere.example.com")
	assert.True(t, upgrader.CheckOrigin(r))
}
