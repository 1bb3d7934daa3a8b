package postgres

import (
	"fmt"
	"strings"
)

// BuildDSN builds a PostgreSQL DSN string from the options.
func BuildDSN(opts *Options) string {
	parts := []string{
		fmt.Sprintf("host=%s", opts.Host),
		fmt.Sprintf("port=%d", opts.Port),
		fmt.Sprintf("user=%s", opts.Username),
		fmt.Sprintf("dbname=%s", opts.Database),
	}

	if opts.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", opts.Password))
	}

	sslMode := opts.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	parts = append(parts, fmt.Sprintf("sslmode=%s", sslMode))

	if opts.ConnectTimeout > 0 {
		parts = append(parts, fmt.Sprintf("connect_timeout=%d", int(opts.ConnectTimeout.Seconds())))
	}

	return strings.Join(parts, " ")
}
