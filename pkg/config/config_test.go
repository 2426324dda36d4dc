package config_test

import (
	"testing"

	"github.com/arthur-debert/dedupe/pkg/config"
	"github.com/arthur-debert/dedupe/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *config.Config) {}, false},
		{"zero min bytes allowed", func(c *config.Config) { c.Delete.MinBytes = 0 }, false},
		{"negative min bytes", func(c *config.Config) { c.Delete.MinBytes = -1 }, true},
		{"empty manifest name", func(c *config.Config) { c.Manifest.FileName = "" }, true},
		{"unknown strategy", func(c *config.Config) { c.Compare.Strategy = "fuzzy" }, true},
		{"unknown verify strategy", func(c *config.Config) { c.Verify.Strategy = "" }, true},
		{"naive strategy allowed", func(c *config.Config) { c.Compare.Strategy = config.StrategyNaive }, false},
		{"zero chunk", func(c *config.Config) { c.Compare.ChunkBytes = 0 }, true},
		{"zero spot block", func(c *config.Config) { c.Compare.Spot.BlockBytes = 0 }, true},
		{"zero spots allowed", func(c *config.Config) { c.Compare.Spot.Spots = 0 }, false},
		{"negative spots", func(c *config.Config) { c.Compare.Spot.Spots = -2 }, true},
		{"zero jobs", func(c *config.Config) { c.Verify.Jobs = 0 }, true},
		{"zero every", func(c *config.Config) { c.Verify.Every = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.MustDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRender(t *testing.T) {
	cfg := config.MustDefaults()

	t.Run("toml", func(t *testing.T) {
		out, err := cfg.Render("toml")
		require.NoError(t, err)

		var back config.Config
		require.NoError(t, toml.Unmarshal(out, &back))
		assert.Equal(t, cfg.Delete, back.Delete)
		assert.Equal(t, cfg.Compare, back.Compare)
		assert.NotContains(t, string(out), "Sources")
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := cfg.Render("yaml")
		require.NoError(t, err)

		var back config.Config
		require.NoError(t, yaml.Unmarshal(out, &back))
		assert.Equal(t, cfg.Verify, back.Verify)
		assert.Contains(t, string(out), "min_bytes: 1024")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := cfg.Render("xml")
		assert.Error(t, err)
	})
}
