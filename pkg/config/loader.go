package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	dderrors "github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates sections: DEDUPE_DELETE__MIN_BYTES sets delete.min_bytes.
const EnvPrefix = "DEDUPE_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions controls which optional layers are applied.
type LoadOptions struct {
	// ConfigFile is an explicit config file. When set it must exist and the
	// user config file is not consulted.
	ConfigFile string

	// Overrides are flag values keyed by their koanf path, e.g. "delete.min_bytes".
	// Only flags the user actually set belong here.
	Overrides map[string]interface{}
}

// DefaultTOML returns the embedded default configuration.
func DefaultTOML() []byte {
	return defaultConfig
}

// UserConfigPath returns $XDG_CONFIG_HOME/dedupe/config.toml.
func UserConfigPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "dedupe", "config.toml")
}

// Load builds the effective configuration: embedded defaults, then the
// config file, then DEDUPE_* environment variables, then flag overrides.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")
	var sources []string

	// 1. Load system defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, dderrors.Wrap(err, dderrors.ErrConfigLoad, "failed to load defaults")
	}
	sources = append(sources, "defaults")

	// 2. Load config file if it exists
	path := opts.ConfigFile
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, dderrors.Wrapf(err, dderrors.ErrConfigLoad, "config file %s", path)
		}
	} else {
		path = UserConfigPath()
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, dderrors.Wrapf(err, dderrors.ErrConfigLoad, "failed to load config from %s", path)
		}
		sources = append(sources, path)
	}

	// 3. Load env vars
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, dderrors.Wrap(err, dderrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flags set on the command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, dderrors.Wrap(err, dderrors.ErrConfigLoad, "failed to apply flag overrides")
		}
		sources = append(sources, "flags")
	}

	// 5. Unmarshal
	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	cfg.Compare.Strategy = strings.ToLower(strings.TrimSpace(cfg.Compare.Strategy))
	cfg.Verify.Strategy = strings.ToLower(strings.TrimSpace(cfg.Verify.Strategy))

	// 6. Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Defaults returns the embedded default configuration, ignoring files,
// environment and flags.
func Defaults() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, dderrors.Wrap(err, dderrors.ErrConfigLoad, "failed to load defaults")
	}
	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = []string{"defaults"}
	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, dderrors.Wrap(err, dderrors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// MustDefaults returns the embedded defaults. It panics if they do not parse,
// which only happens when the embedded file itself is broken.
func MustDefaults() *Config {
	cfg, err := Defaults()
	if err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return cfg
}
