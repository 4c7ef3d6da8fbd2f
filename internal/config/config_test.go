package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CODEFORGE_LISTEN_ADDR", "")
	t.Setenv("CODEFORGE_DB_PATH", "")
	t.Setenv("CODEFORGE_COMMENT_LANGUAGE", "")

	cfg := Load()
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "data/codeforge.db", cfg.DBPath)
	assert.Equal(t, "Russian", cfg.CommentLanguage)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CODEFORGE_LISTEN_ADDR", "127.0.0.1:8080")
	t.Setenv("CODEFORGE_DB_PATH", ":memory:")
	t.Setenv("CODEFORGE_COMMENT_LANGUAGE", "English")

	cfg := Load()
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "English", cfg.CommentLanguage)
}
