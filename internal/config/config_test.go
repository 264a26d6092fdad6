package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xltables-go/internal/logging"
	"github.com/ukaji3/xltables-go/pkg/xltables"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WORKBOOK_URL", "")
	t.Setenv("FETCH_TIMEOUT", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, xltables.DefaultSource, cfg.Workbook.Source)
	assert.Equal(t, 30*time.Second, cfg.Workbook.FetchTimeout)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WORKBOOK_URL", "./capbudg.xls")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "./capbudg.xls", cfg.Workbook.Source)
	assert.Equal(t, 5*time.Second, cfg.Workbook.FetchTimeout)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, logging.LevelDebug, cfg.LogLevel)

	opts := cfg.Options(nil)
	assert.Equal(t, "./capbudg.xls", opts.Source)
	assert.Equal(t, 5*time.Second, opts.Timeout)
}

func TestLoadIgnoresMalformedTimeout(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, xltables.DefaultTimeout, cfg.Workbook.FetchTimeout)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Workbook: WorkbookConfig{Source: "x.xls", FetchTimeout: time.Second},
		Server:   ServerConfig{Port: "8080"},
	}
	assert.NoError(t, valid.Validate())

	noSource := valid
	noSource.Workbook.Source = "  "
	assert.Error(t, noSource.Validate())

	negative := valid
	negative.Workbook.FetchTimeout = -time.Second
	assert.Error(t, negative.Validate())
}
