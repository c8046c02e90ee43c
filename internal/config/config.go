package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rently-vn/rently/internal/errors"
)

// Configuration keys
const (
	apiBaseURLKey      = "api.base_url"
	apiTimeoutKey      = "api.timeout"
	shippingBaseURLKey = "shipping.base_url"
	shippingTokenKey   = "shipping.token"
	logLevelKey        = "log.level"
	logFormatKey       = "log.format"
	sessionPathKey     = "session.path"
)

// Config holds the full application configuration
type Config struct {
	API      APIConfig      `mapstructure:"api" yaml:"api" validate:"required"`
	Shipping ShippingConfig `mapstructure:"shipping" yaml:"shipping"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Session  SessionConfig  `mapstructure:"session" yaml:"session"`
}

// APIConfig describes how to reach the rental backend
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=1s,max=5m"`
}

// ShippingConfig carries the third-party address-lookup credentials.
// These are configuration inputs only; the lookup integration lives
// outside this client.
type ShippingConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url" validate:"omitempty,url"`
	Token   string `mapstructure:"token" yaml:"token"`
}

// LogConfig controls logging verbosity and output shape
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}

// SessionConfig locates the persisted session file
type SessionConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:9999",
			Timeout: 15 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Session: SessionConfig{
			Path: defaultSessionPath(),
		},
	}
}

// Load reads configuration from the given file (optional), the standard
// locations, and RENTLY_-prefixed environment variables, then validates it.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault(apiBaseURLKey, "http://localhost:9999")
	v.SetDefault(apiTimeoutKey, 15*time.Second)
	v.SetDefault(shippingBaseURLKey, "")
	v.SetDefault(shippingTokenKey, "")
	v.SetDefault(logLevelKey, "warn")
	v.SetDefault(logFormatKey, "text")
	v.SetDefault(sessionPathKey, defaultSessionPath())

	v.SetEnvPrefix("RENTLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return Config{}, errors.NewConfigNotFoundError(path)
			}
			return Config{}, errors.NewConfigInvalidError("cannot read "+path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".rently"))
		}
		// Missing config files are fine; defaults and env cover everything.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return Config{}, errors.NewConfigInvalidError("cannot read config file", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.NewConfigInvalidError("cannot decode config", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return Config{}, errors.NewConfigInvalidError(validationDetails(err), err)
	}

	return cfg, nil
}

// WriteExample writes a commented starter configuration to path.
// Fails if the file already exists.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrCodeFileWrite, "config file already exists: "+path).
			WithSuggestion("Remove it first if you want a fresh one")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, "cannot create config directory", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, "cannot encode default config", err)
	}

	header := []byte("# rently configuration\n# Environment variables with the RENTLY_ prefix override these values,\n# e.g. RENTLY_API_BASE_URL.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, "cannot write "+path, err)
	}

	return nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".rently", "session.json")
	}
	return filepath.Join(home, ".rently", "session.json")
}

func validationDetails(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Namespace())+" ("+fe.Tag()+")")
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}
