// Package config provides typed configuration loading from environment
// variables with .env file support.
//
// Configuration structs declare their fields with `env` tags understood by
// github.com/caarlos0/env. Load parses the environment into the struct,
// loading a .env file first when one is present (via joho/godotenv), and
// caches the result per struct type so repeated loads are cheap and
// consistent.
//
// # Usage
//
//	import "github.com/onteko/billingkit/pkg/config"
//
//	type AppConfig struct {
//	    Port  int    `env:"PORT" envDefault:"8080"`
//	    Debug bool   `env:"DEBUG" envDefault:"false"`
//	    DSN   string `env:"DATABASE_URL,required"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// MustLoad panics instead of returning an error, which suits application
// entry points where a missing required variable should abort startup.
//
// # Errors
//
// Load returns ErrNilPointer for nil destinations and wraps parser failures
// with ErrParsingConfig so callers can match with errors.Is.
package config
