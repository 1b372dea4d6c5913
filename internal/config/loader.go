package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"github.com/zero-day-ai/graphchat/internal/types"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides: graph.uri is read from
// GRAPHCHAT_GRAPH_URI.
const EnvPrefix = "GRAPHCHAT"

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ConfigLoader handles loading configuration from files.
type ConfigLoader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper.
type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	if validator == nil {
		validator = NewValidator()
	}
	return &viperConfigLoader{
		validator: validator,
	}
}

// Load reads path over the defaults, applies ${VAR} interpolation and
// GRAPHCHAT_* overrides, and validates the result. The file must exist.
func (l *viperConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.WrapError(types.CONFIG_NOT_FOUND, "config file not found: "+path, err)
		}
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to stat config file", err)
	}
	return l.load(path)
}

// LoadWithDefaults behaves like Load, but a missing file yields the
// defaults with environment overrides applied.
func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return l.load("")
		}
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to stat config file", err)
	}
	return l.load(path)
}

func (l *viperConfigLoader) load(path string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to read config file", err)
		}
	}

	if err := v.MergeConfigMap(interpolateEnvVars(v.AllSettings()).(map[string]any)); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to apply environment variable interpolation", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to unmarshal config", err)
	}

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newViper seeds a viper instance with every default key so AutomaticEnv
// can override keys that no file mentions.
func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to encode defaults", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to load defaults", err)
	}
	return v, nil
}

// interpolateEnvVars recursively interpolates environment variables in the config map.
// Supports ${VAR_NAME} syntax.
func interpolateEnvVars(data any) any {
	switch v := data.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, value := range v {
			result[key] = interpolateEnvVars(value)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, value := range v {
			result[i] = interpolateEnvVars(value)
		}
		return result
	case string:
		return interpolateString(v)
	default:
		return v
	}
}

// interpolateString replaces ${VAR_NAME} with environment variable values.
// Unset variables are left as written.
func interpolateString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if envValue := os.Getenv(varName); envValue != "" {
			return envValue
		}
		return match
	})
}
