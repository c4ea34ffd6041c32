package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NetAddress is a validated host:port pair. It satisfies flag.Value so
// the listen address can be passed as a single -a argument.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags reads server settings from the command line.
//
//	-a                 HTTP listen address (host:port)
//	-d                 PostgreSQL connection URI
//	-c, -config        path to a JSON config file
//	-session-sign-key  HMAC key for signing session cookies
//	-session-issuer    issuer claim stamped into session tokens
//	-session-ttl       login session lifetime (24h, 30m, ...)
//	-bcrypt-cost       bcrypt work factor for password hashing
//	-request-timeout   per-request read/write timeout (30s, 1m, ...)
//	-purge-interval    expired-session sweep period (1h, ...)
//
// Flags left off the command line keep their zero values, which the
// config merge treats as "no value" so other sources can fill them in.
func ParseFlags() *StructuredConfig {
	cfg := &StructuredConfig{}
	var listenAddr NetAddress

	flag.Var(&listenAddr, "a", "HTTP listen address, host:port")
	flag.StringVar(&cfg.Storage.DB.DSN, "d", "", "PostgreSQL connection URI")
	flag.StringVar(&cfg.JSONFilePath, "c", "", "path to a JSON config file")
	flag.StringVar(&cfg.JSONFilePath, "config", "", "path to a JSON config file (alias for -c)")
	flag.StringVar(&cfg.Auth.SessionSignKey, "session-sign-key", "", "HMAC key for signing session cookies")
	flag.StringVar(&cfg.Auth.SessionIssuer, "session-issuer", "", "issuer claim stamped into session tokens")
	flag.DurationVar(&cfg.Auth.SessionTTL, "session-ttl", 0, "login session lifetime (24h, 30m, ...)")
	flag.IntVar(&cfg.Auth.BcryptCost, "bcrypt-cost", 0, "bcrypt work factor for password hashing")
	flag.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "per-request read/write timeout (30s, 1m, ...)")
	flag.DurationVar(&cfg.Workers.SessionPurgeInterval, "purge-interval", 0, "expired-session sweep period (1h, ...)")

	flag.Parse()

	cfg.Server.HTTPAddress = listenAddr.String()

	return cfg
}

// String renders the address back into host:port form. A zero
// NetAddress renders as "" rather than ":0" so the config merge can
// tell an unset flag from a real address.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses a host:port string. The host part has to be "localhost"
// or a literal IP address and the port a positive integer.
func (a *NetAddress) Set(s string) error {
	host, rawPort, ok := strings.Cut(s, ":")
	if !ok || strings.Contains(rawPort, ":") {
		return errors.New("address must look like `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("bad port %q: %w", rawPort, err)
	}
	if port < 1 {
		return errors.New("port must be a positive number")
	}
	if host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("host %q is neither localhost nor an IP address", host)
	}

	a.Host = host
	a.Port = port

	return nil
}
