package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flraf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Config{}, cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Config{}, cfg)
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, "order: 8\nnode_size: 256\ncache_size: 4\nlisten_addr: \"127.0.0.1:9090\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Order)
	require.Equal(t, 256, cfg.NodeSize)
	require.Equal(t, 4, cfg.CacheSize)
	require.Equal(t, "127.0.0.1:9090", cfg.ListenAddr)
}

func TestLoadRejectsNonIntegralKeySlot(t *testing.T) {
	// (300 - 8*4)/7 is not whole.
	path := writeConfig(t, "order: 8\nnode_size: 300\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidatePartialConfig(t *testing.T) {
	// Order alone is fine: node size is defaulted later by the daemon.
	require.NoError(t, Config{Order: 8}.Validate())
	require.Error(t, Config{Order: 1}.Validate())
	require.Error(t, Config{NodeSize: -5}.Validate())
	require.Error(t, Config{CacheSize: -1}.Validate())
}
