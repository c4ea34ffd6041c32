// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the environment through caarlos0/env. Names
// come from the env/envPrefix tags on [StructuredConfig]: the section
// prefix plus the field tag, e.g. AUTH_SESSION_SIGN_KEY,
// STORAGE_DB_DATABASE_URI, SERVER_ADDRESS.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
