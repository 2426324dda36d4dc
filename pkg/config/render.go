package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Render serializes the configuration as "toml" or "yaml".
func (c *Config) Render(format string) ([]byte, error) {
	switch format {
	case "", "toml":
		return toml.Marshal(c)
	case "yaml", "yml":
		return yaml.Marshal(c)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
