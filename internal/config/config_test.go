package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FIELDOPS_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 768, cfg.UI.Breakpoint)
	require.Equal(t, 8, cfg.UI.UnitsPerCell)
	require.Equal(t, 5, cfg.UI.PageSize)
	require.Equal(t, "PKR", cfg.UI.CurrencySymbol)
	require.Equal(t, 4*time.Second, cfg.UI.ToastDuration())
	require.Equal(t, "Asia/Karachi", cfg.Org.Timezone)
	require.Equal(t, filepath.Join(home, ".local", "share", "fieldops", "fieldops.db"), cfg.Database.Path)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "fieldops.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[ui]
page_size = 10
units_per_cell = 4

[org]
name = "Test Org"
`), 0o644))
	t.Setenv("FIELDOPS_CONFIG", path)
	t.Setenv("FIELDOPS_UI_BREAKPOINT", "480")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.UI.PageSize)
	require.Equal(t, 4, cfg.UI.UnitsPerCell)
	require.Equal(t, 480, cfg.UI.Breakpoint)
	require.Equal(t, "Test Org", cfg.Org.Name)
}

func TestLoadRejectsInvalidPageSize(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\npage_size = 0\n"), 0o644))
	t.Setenv("FIELDOPS_CONFIG", path)

	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "nested", "config.toml")
	t.Setenv("FIELDOPS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.UI.PageSize = 7
	cfg.Org.Name = "Saved Org"
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7, got.UI.PageSize)
	require.Equal(t, "Saved Org", got.Org.Name)
}
