package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nainya/gazette/pkg/source"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gazette.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, source.DefaultEndpoint, cfg.Source.Endpoint)
	assert.NoError(t, cfg.Validate())

	client := cfg.Source.ClientConfig()
	assert.Equal(t, time.Duration(0), client.Timeout)
	assert.Equal(t, source.DefaultUserAgent, client.UserAgent)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 3000
source:
  endpoint: http://api.prefeitura.test/documento
  timeout: 5s
  requests_per_second: 2
  strict: true
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)

	client := cfg.Source.ClientConfig()
	assert.Equal(t, "http://api.prefeitura.test/documento", client.Endpoint)
	assert.Equal(t, 5*time.Second, client.Timeout)
	assert.Equal(t, 2.0, client.RequestsPerSecond)
	assert.True(t, client.Strict)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"port":     "server:\n  port: 70000\n",
		"endpoint": "source:\n  endpoint: localhost\n",
		"timeout":  "source:\n  timeout: soon\n",
		"yaml":     "server: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
