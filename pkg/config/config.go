package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/vpath/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration
const EnvPrefix = "VPATH_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config holds the recognized vpath options
type Config struct {
	MountPoint        string `koanf:"mount_point" toml:"mount_point"`
	JobDescriptorPath string `koanf:"job_descriptor_path" toml:"job_descriptor_path"`
	ManifestRootsKey  string `koanf:"manifest_roots_key" toml:"manifest_roots_key"`
	HomeDir           string `koanf:"home_dir" toml:"home_dir"`
	DirPermissions    uint32 `koanf:"dir_permissions" toml:"dir_permissions"`
	PrintIndex        bool   `koanf:"print_index" toml:"print_index"`
	StylesFile        string `koanf:"styles_file" toml:"styles_file"`
}

// DirMode returns the mode used for intermediate directories
func (c *Config) DirMode() os.FileMode {
	return os.FileMode(c.DirPermissions) & os.ModePerm
}

// LoadOptions selects the optional layers applied on top of the defaults
type LoadOptions struct {
	// ConfigFile is an explicit config file. When empty,
	// $XDG_CONFIG_HOME/vpath/config.toml is used if it exists.
	ConfigFile string

	// Overrides are applied last, keyed by option name.
	Overrides map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Default returns the configuration built from the embedded defaults only
func Default() (*Config, error) {
	return Load(LoadOptions{ConfigFile: os.DevNull})
}

// Load builds the configuration from all layers
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = defaultConfigFile()
	}
	if configFile != "" && configFile != os.DevNull {
		parser, err := parserFor(configFile)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", configFile)
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				expandPathHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcessConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the invariants the pipeline relies on
func (c *Config) Validate() error {
	switch {
	case c.MountPoint == "":
		return errors.New(errors.ErrConfigInvalid, "mount_point must not be empty")
	case !filepath.IsAbs(c.MountPoint):
		return errors.Newf(errors.ErrConfigInvalid, "mount_point must be absolute, got %q", c.MountPoint)
	case c.JobDescriptorPath == "":
		return errors.New(errors.ErrConfigInvalid, "job_descriptor_path must not be empty")
	case c.ManifestRootsKey == "":
		return errors.New(errors.ErrConfigInvalid, "manifest_roots_key must not be empty")
	case c.DirPermissions == 0 || c.DirPermissions > 0o777:
		return errors.Newf(errors.ErrConfigInvalid, "dir_permissions must be within 1..0777, got %o", c.DirPermissions)
	}
	return nil
}

func postProcessConfig(cfg *Config) error {
	if cfg.HomeDir == "" {
		xdg.Reload()
		cfg.HomeDir = xdg.Home
	}
	if cfg.HomeDir == "" {
		return errors.New(errors.ErrConfigInvalid, "could not determine the home directory")
	}
	return cfg.Validate()
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config file extension %q", ext).
			WithDetail("path", path)
	}
}

func defaultConfigFile() string {
	xdg.Reload()
	path, err := xdg.SearchConfigFile(filepath.Join("vpath", "config.toml"))
	if err != nil {
		return ""
	}
	return path
}

// expandPathHookFunc expands environment variables and a leading ~ in string
// options that hold paths
func expandPathHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.String {
			return data, nil
		}
		s := os.ExpandEnv(data.(string))
		if s == "~" || strings.HasPrefix(s, "~/") {
			xdg.Reload()
			s = filepath.Join(xdg.Home, strings.TrimPrefix(s, "~"))
		}
		return s, nil
	}
}
