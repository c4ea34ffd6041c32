// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errServerNotConfigured is returned by NewServer when the config
// carries no HTTP listen address.
var errServerNotConfigured = errors.New("no HTTP listen address configured")
