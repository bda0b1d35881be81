package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/imamik/prismctl/internal/logging"
	"github.com/imamik/prismctl/internal/prism"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = "prismctl.yaml"

// EnvPrefix is the prefix for environment overrides (PRISM_CLUSTER_ADDRESS, ...).
const EnvPrefix = "PRISM"

// Config is the root configuration for a prismctl session.
type Config struct {
	Cluster  ClusterConfig `mapstructure:"cluster"`
	Timeouts Timeouts      `mapstructure:"timeouts"`
	Log      LogConfig     `mapstructure:"log"`
	Dump     DumpConfig    `mapstructure:"dump"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
}

// ClusterConfig identifies the Prism endpoint and credentials.
// Address, Username and Password may be left empty; the console asks for them.
type ClusterConfig struct {
	Address  string `mapstructure:"address"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Insecure bool   `mapstructure:"insecure"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DumpConfig controls where raw API payloads are archived for debugging.
// Both destinations are optional and are written together when both are set.
type DumpConfig struct {
	Dir string   `mapstructure:"dir"`
	S3  S3Config `mapstructure:"s3"`
}

// S3Config addresses an S3-compatible bucket for payload dumps.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig controls the Prometheus textfile written at exit.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"cluster":          "cluster.address",
	"port":             "cluster.port",
	"username":         "cluster.username",
	"insecure":         "cluster.insecure",
	"timeout":          "timeouts.request",
	"log-level":        "log.level",
	"log-format":       "log.format",
	"dump-dir":         "dump.dir",
	"metrics-textfile": "metrics.textfile",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cluster.port", 9440)
	v.SetDefault("cluster.insecure", true)
	timeouts := DefaultTimeouts()
	v.SetDefault("timeouts.request", timeouts.Request)
	v.SetDefault("timeouts.submit", timeouts.Submit)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", string(logging.FormatText))
	v.SetDefault("dump.s3.prefix", "prismctl/")

	// Keys without defaults still need registering so env overrides reach Unmarshal.
	for _, key := range []string{
		"cluster.address", "cluster.username", "cluster.password",
		"dump.dir", "dump.s3.bucket", "dump.s3.endpoint", "dump.s3.region",
		"dump.s3.access_key", "dump.s3.secret_key", "metrics.textfile",
	} {
		v.SetDefault(key, "")
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// PRISM_* environment variables and the given flags, in increasing priority.
// An explicit path must exist; the default file is optional.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readFile(v, path); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func readFile(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Cluster.Port <= 0 || c.Cluster.Port > 65535 {
		errs = append(errs, fmt.Errorf("cluster.port must be between 1 and 65535, got %d", c.Cluster.Port))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch logging.Format(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q (valid: text, json)", c.Log.Format))
	}
	if err := c.Timeouts.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Dump.S3.Bucket != "" && c.Dump.S3.Region == "" {
		errs = append(errs, errors.New("dump.s3.region is required when dump.s3.bucket is set"))
	}

	return errors.Join(errs...)
}

// BaseURL returns the Prism v2.0 REST root for the configured cluster.
func (c ClusterConfig) BaseURL() string {
	return fmt.Sprintf("https://%s:%d%s", c.Address, c.Port, prism.RESTRoot)
}
