package postgres

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	pq "github.com/lib/pq"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/logger"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

const maskedPassword = "****"

// IsURL reports whether connStr uses a postgres:// or postgresql:// scheme.
func IsURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// IsConnString reports whether connStr looks like a PostgreSQL URL or a
// key=value DSN naming a host.
func IsConnString(connStr string) bool {
	if IsURL(connStr) {
		return true
	}
	_, ok := param(connStr, "host")
	return ok
}

// param looks up key case-insensitively in the URL query or DSN pairs.
func param(connStr, key string) (string, bool) {
	if IsURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return "", false
		}
		for k, v := range u.Query() {
			if strings.EqualFold(k, key) && len(v) > 0 {
				return v[0], true
			}
		}
		return "", false
	}

	for _, pair := range strings.Fields(connStr) {
		k, v, ok := strings.Cut(pair, "=")
		if ok && strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

func hasParam(connStr, key string) bool {
	_, ok := param(connStr, key)
	return ok
}

// withSchema adds search_path=habitlit when connStr does not set one, so
// every table lives in the schema Init creates.
func withSchema(connStr string) string {
	if hasParam(connStr, "search_path") {
		return connStr
	}
	if !IsURL(connStr) {
		return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
	}

	u, err := url.Parse(connStr)
	if err != nil {
		logger.Warn("Failed to parse Postgres connection string", "error", err)
		return connStr
	}
	q := u.Query()
	q.Set("search_path", constants.AppName)
	u.RawQuery = q.Encode()
	return u.String()
}

// ValidateConnString checks that connStr parses as a PostgreSQL URL or DSN
// and carries no password. Passwords belong in the keyring, the
// environment, or .pgpass.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if !IsURL(connStr) {
		if hasParam(connStr, "password") {
			return ErrEmbeddedCredentials
		}
		return nil
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
	}
	if _, set := u.User.Password(); set {
		return ErrEmbeddedCredentials
	}
	if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
		return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
	}
	return nil
}

// MaskPassword hides the password of a URL or DSN connection string for
// display. Strings without a password are returned unchanged.
func MaskPassword(connStr string) string {
	if IsURL(connStr) {
		scheme, rest, _ := strings.Cut(connStr, "://")
		// The last @ ends the user info; passwords may contain @
		at := strings.LastIndex(rest, "@")
		if at < 0 {
			return connStr
		}
		user, _, hasPassword := strings.Cut(rest[:at], ":")
		if !hasPassword {
			return connStr
		}
		return scheme + "://" + user + ":" + maskedPassword + rest[at:]
	}

	if !hasParam(connStr, "password") {
		return connStr
	}
	pairs := strings.Fields(connStr)
	for i, pair := range pairs {
		if k, _, ok := strings.Cut(pair, "="); ok && strings.EqualFold(k, "password") {
			pairs[i] = k + "=" + maskedPassword
		}
	}
	return strings.Join(pairs, " ")
}
