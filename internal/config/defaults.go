package config

import "time"

// Default values applied as the lowest-priority configuration source.
// The database DSN and the session sign key have no defaults and must be
// supplied explicitly; validation rejects a config that lacks them.
const (
	DefaultHTTPAddress          = "localhost:8080"
	DefaultRequestTimeout       = 30 * time.Second
	DefaultSessionIssuer        = "go-note-keeper"
	DefaultSessionTTL           = 24 * time.Hour
	DefaultBcryptCost           = 10
	DefaultSessionPurgeInterval = time.Hour
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			SessionIssuer: DefaultSessionIssuer,
			SessionTTL:    DefaultSessionTTL,
			BcryptCost:    DefaultBcryptCost,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			SessionPurgeInterval: DefaultSessionPurgeInterval,
		},
	}
}
