package config

import "os"

// SessionCookie is the name of the login session cookie.
const SessionCookie = "codeforge_session"

// Config holds application-level settings for the HTTP server.
type Config struct {
	// ListenAddr is the host:port the HTTP server binds to.
	ListenAddr string

	// DBPath is the SQLite database file, or ":memory:".
	DBPath string

	// CommentLanguage is the human language for generated code comments.
	CommentLanguage string
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		ListenAddr:      ":5000",
		DBPath:          "data/codeforge.db",
		CommentLanguage: "Russian",
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values.
func Load() Config {
	cfg := Default()

	if v := os.Getenv("CODEFORGE_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("CODEFORGE_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CODEFORGE_COMMENT_LANGUAGE"); v != "" {
		cfg.CommentLanguage = v
	}
	return cfg
}
