// Package config loads process configuration from the environment and holds
// the keyboard binding table.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Client is the client process configuration.
type Client struct {
	ServerURL string `env:"SHIPS_SERVER_URL" envDefault:"ws://localhost:8080/ws"`
	Width     int    `env:"SHIPS_WINDOW_WIDTH" envDefault:"800"`
	Height    int    `env:"SHIPS_WINDOW_HEIGHT" envDefault:"600"`
	LogFile   string `env:"SHIPS_LOG_FILE" envDefault:"ships.log"`
}

// Server is the dev server configuration.
type Server struct {
	Addr     string  `env:"SHIPS_LISTEN_ADDR" envDefault:":8080"`
	Step     float64 `env:"SHIPS_MOVE_STEP" envDefault:"0.05"`
	TickRate int     `env:"SHIPS_TICK_RATE" envDefault:"20"`
	LogFile  string  `env:"SHIPS_SERVER_LOG_FILE" envDefault:"shipsd.log"`
}

// LoadClient parses the client configuration from the environment.
func LoadClient() (Client, error) {
	var c Client
	if err := env.Parse(&c); err != nil {
		return Client{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// LoadServer parses the server configuration from the environment.
func LoadServer() (Server, error) {
	var s Server
	if err := env.Parse(&s); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if s.TickRate <= 0 {
		return Server{}, fmt.Errorf("tick rate must be positive, got %d", s.TickRate)
	}
	return s, nil
}
