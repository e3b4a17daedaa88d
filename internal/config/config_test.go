package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ModeRunes, cfg.Keys.Mode)
	assert.Equal(t, "/", cfg.Keys.Separator)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Dataset.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `keys:
  mode: segments
  separator: "."
log:
  level: debug
dataset:
  files:
    - a.tsv
    - b.yaml
  workers: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ModeSegments, cfg.Keys.Mode)
	assert.Equal(t, ".", cfg.Keys.Separator)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"a.tsv", "b.yaml"}, cfg.Dataset.Files)
	assert.Equal(t, 2, cfg.Dataset.Workers)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("TRIE_KEYS_MODE", ModeBytes)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ModeBytes, cfg.Keys.Mode)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "runes",
			cfg:  Config{Keys: KeysConfig{Mode: ModeRunes}, Dataset: DatasetConfig{Workers: 1}},
		},
		{
			name:    "segments without separator",
			cfg:     Config{Keys: KeysConfig{Mode: ModeSegments}, Dataset: DatasetConfig{Workers: 1}},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			cfg:     Config{Keys: KeysConfig{Mode: "words"}, Dataset: DatasetConfig{Workers: 1}},
			wantErr: true,
		},
		{
			name:    "no workers",
			cfg:     Config{Keys: KeysConfig{Mode: ModeBytes}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
