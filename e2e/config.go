package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// SERVER_ADDR is the realtime endpoint, e.g. ws://localhost:8080/ws.
	// Leaving it empty skips the whole suite.
	ServerAddr string `envconfig:"SERVER_ADDR"`
	// JWT_SECRET must match the server's signing secret so the suite can
	// mint its own test identities.
	JWTSecret string `envconfig:"JWT_SECRET" default:"e2e-secret"`
	JWTIssuer string `envconfig:"JWT_ISSUER" default:"projectify"`
	// E2E_DEBUG_FRAMES dumps every received frame to the test log
	DebugFrames bool `envconfig:"E2E_DEBUG_FRAMES" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
