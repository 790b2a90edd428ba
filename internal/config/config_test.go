package config

import (
	"os"
	"path/filepath"
	"testing"

	"store-locator/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	env := `MAPS_API_KEY=file-key
DB_SOURCE=postgres://localhost/stores
SERVER_ADDRESS=127.0.0.1:9090
OUTPUT_DIR=out
ON_MISS=skip
ALLOW_DUPLICATE_ADDRESSES=true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(env), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.MapsAPIKey)
	assert.Equal(t, "postgres://localhost/stores", cfg.DBSource)
	assert.Equal(t, "127.0.0.1:9090", cfg.ServerAddress)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.True(t, cfg.AllowDuplicateAddresses)

	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.MissSkip, opts.OnMiss)
	assert.True(t, opts.AllowDuplicateAddresses)
}

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddress)
	assert.Equal(t, "html", cfg.OutputDir)
	assert.Equal(t, "placeholder", cfg.OnMiss)
	assert.False(t, cfg.AllowDuplicateAddresses)
}

func TestMissPolicy(t *testing.T) {
	tests := []struct {
		value    string
		expected render.MissPolicy
		wantErr  bool
	}{
		{value: "", expected: render.MissPlaceholder},
		{value: "placeholder", expected: render.MissPlaceholder},
		{value: "skip", expected: render.MissSkip},
		{value: "fail", expected: render.MissFail},
		{value: "explode", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			policy, err := Config{OnMiss: tt.value}.MissPolicy()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, policy)
		})
	}
}
