package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, "tasktrack.db", c.SQLitePath)
	assert.Equal(t, 72*time.Hour, c.SessionTTL)
	assert.False(t, c.UsePostgres())
	assert.False(t, c.UseTLS())
}

func TestLoad_EnvOverlay(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/todos")
	t.Setenv("SQLITE_PATH", "/tmp/alt.db")
	t.Setenv("SESSION_KEY", "secret")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("TLS_CERT_FILE", "cert.pem")
	t.Setenv("TLS_KEY_FILE", "key.pem")

	c := Load()
	require.NotNil(t, c)
	assert.Equal(t, ":9999", c.Addr)
	assert.Equal(t, "postgres://u:p@localhost:5432/todos", c.DatabaseDSN)
	assert.Equal(t, "/tmp/alt.db", c.SQLitePath)
	assert.Equal(t, "secret", c.SessionKey)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
	assert.True(t, c.UsePostgres())
	assert.True(t, c.UseTLS())
}

func TestLoad_BadTTLKeepsDefault(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")

	c := Load()
	assert.Equal(t, 72*time.Hour, c.SessionTTL)
}
