// Package config assembles the server configuration from environment
// variables, command-line flags, an optional JSON file, and built-in
// defaults. An earlier source always wins; later sources only fill
// fields still unset. [GetStructuredConfig] is the entry point.
package config
