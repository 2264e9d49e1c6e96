// Package config loads the example's settings from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the example server needs. Every field can be
// overridden with a GANGWAY_-prefixed environment variable.
type Config struct {
	Host            string `envconfig:"HOST" default:"0.0.0.0"`
	Port            int    `envconfig:"PORT" default:"8888"`
	StaticDir       string `envconfig:"STATIC_DIR" default:"./public"`
	StaticURLPrefix string `envconfig:"STATIC_URL_PREFIX" default:"/static/*"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("GANGWAY", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
