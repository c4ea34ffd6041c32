package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly duration parsing. It is the wire format of the optional
// JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Auth struct {
		SessionSignKey string   `json:"session_sign_key"`
		SessionIssuer  string   `json:"session_issuer"`
		SessionTTL     Duration `json:"session_ttl"`
		BcryptCost     int      `json:"bcrypt_cost"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		SessionPurgeInterval Duration `json:"session_purge_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	raw, err := os.ReadFile(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading json config file: %w", err)
	}

	var fileCfg StructuredJSONConfig
	if err = json.Unmarshal(raw, &fileCfg); err != nil {
		return nil, fmt.Errorf("error parsing json configs: %w", err)
	}

	return fileCfg.toConfig(), nil
}

// toConfig lifts the wire representation into the runtime config. The
// JSONFilePath field stays empty: the path the file came from is not
// part of the file itself.
func (j StructuredJSONConfig) toConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version: j.App.Version,
		},
		Auth: Auth{
			SessionSignKey: j.Auth.SessionSignKey,
			SessionIssuer:  j.Auth.SessionIssuer,
			SessionTTL:     j.Auth.SessionTTL.Std(),
			BcryptCost:     j.Auth.BcryptCost,
		},
		Storage: Storage{
			DB: DB{
				DSN: j.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: j.Server.RequestTimeout.Std(),
		},
		Workers: Workers{
			SessionPurgeInterval: j.Workers.SessionPurgeInterval.Std(),
		},
	}
}

// Duration is a time.Duration that unmarshals from either a Go duration
// string ("1h30m") or a plain nanosecond number.
type Duration time.Duration

// Std returns the value as a plain time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("bad duration %q: %w", s, err)
		}
		*d = Duration(parsed)

		return nil
	}

	var ns int64
	if err := json.Unmarshal(b, &ns); err != nil {
		return err
	}
	*d = Duration(ns)

	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Std().String())
}
