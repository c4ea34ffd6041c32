// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate is the last stop before the merged config reaches main: it
// rejects configurations the server cannot run with. The database DSN
// and the session sign key have no defaults, so forgetting them fails
// here instead of at first use.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.SessionSignKey == "" || cfg.Auth.SessionTTL <= 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.SessionPurgeInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
