// Package config loads client settings from defaults, an optional config
// file and prefixed environment variables, in increasing priority.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/krew-solutions/ascetic-datasync-go/datasync/logging"
)

const DefaultPrefix = "DATASYNC"

type Config struct {
	// Endpoint is the service base URI; tables live under <Endpoint>/tables/.
	Endpoint   string         `mapstructure:"endpoint"`
	APIVersion string         `mapstructure:"api_version"`
	Timeout    time.Duration  `mapstructure:"timeout"`
	Log        logging.Config `mapstructure:"log"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("endpoint", "")
	v.SetDefault("api_version", "3.0.0")
	v.SetDefault("timeout", 100*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configFile when it is not empty. Environment variables are
// <prefix>_ENDPOINT, <prefix>_API_VERSION, <prefix>_TIMEOUT, <prefix>_LOG_LEVEL
// and <prefix>_LOG_FORMAT.
func Load(prefix, configFile string) (Config, error) {
	v := viper.New()
	defaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", configFile)
		}
	}

	if prefix == "" {
		prefix = DefaultPrefix
	}
	v.SetEnvPrefix(strings.TrimSuffix(prefix, "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
