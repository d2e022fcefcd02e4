package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/andyballingall/whisperspace-records/internal/fs"
)

// ConfigFile is read from the working directory when no explicit path is given.
const ConfigFile = "whisperspace.yml"

// EnvPrefix is prepended to the env tag of every overridable setting.
const EnvPrefix = "WSR_"

const (
	DefaultCalcAPIBase = "http://localhost:8787"
	DefaultCalcTimeout = 10 * time.Second
	DefaultServerAddr  = ":8080"
	DefaultLogFile     = ".wsr.log"
	DefaultFixturesDir = "fixtures"
)

const DefaultConfigContent = `# Whisperspace record tooling configuration.
# Every setting can also be set with an environment variable, shown in brackets.

# Root URL of the calculation API. [WSR_CALC_API_BASE]
calcApiBase: "http://localhost:8787"

# Timeout for a single calculation API request. [WSR_CALC_TIMEOUT]
calcTimeout: 10s

# Listen address for "wsr serve". [WSR_SERVER_ADDR]
serverAddr: ":8080"

# Debug log file. [WSR_LOG_FILE]
logFile: ".wsr.log"

# Directory searched by "wsr check-fixtures" when none is given. [WSR_FIXTURES_DIR]
fixturesDir: "fixtures"
`

type Config struct {
	CalcAPIBase string        `yaml:"calcApiBase" env:"CALC_API_BASE"`
	CalcTimeout time.Duration `yaml:"calcTimeout" env:"CALC_TIMEOUT"`
	ServerAddr  string        `yaml:"serverAddr"  env:"SERVER_ADDR"`
	LogFile     string        `yaml:"logFile"     env:"LOG_FILE"`
	FixturesDir string        `yaml:"fixturesDir" env:"FIXTURES_DIR"`
	Path        string        `yaml:"-"` // file the settings were read from, if any
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		CalcAPIBase: DefaultCalcAPIBase,
		CalcTimeout: DefaultCalcTimeout,
		ServerAddr:  DefaultServerAddr,
		LogFile:     DefaultLogFile,
		FixturesDir: DefaultFixturesDir,
	}
}

// Load builds the configuration from defaults, then the config file, then the
// environment. When path is empty, ConfigFile in dir is used if it exists; an
// explicit path that does not exist is an error.
func Load(dir, path string, envProvider fs.EnvProvider) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, ConfigFile)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err = decode(data, cfg); err != nil {
			return nil, &InvalidYAMLError{Path: path, Wrapped: err}
		}
		cfg.Path = path
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case errors.Is(err, os.ErrNotExist):
		return nil, &MissingConfigError{Path: path}
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if envProvider != nil {
		opts := env.Options{Environment: envProvider.Environ(), Prefix: EnvPrefix}
		if err = env.ParseWithOptions(cfg, opts); err != nil {
			return nil, &InvalidEnvError{Wrapped: err}
		}
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode rejects unknown keys so that typos do not silently fall back to defaults.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	if c.CalcAPIBase == "" {
		return &MissingPropertyError{Property: "calcApiBase"}
	}
	if err := validateHTTPURL("calcApiBase", c.CalcAPIBase); err != nil {
		return err
	}
	if c.CalcTimeout <= 0 {
		return &InvalidDurationError{Property: "calcTimeout", Value: c.CalcTimeout}
	}
	if c.ServerAddr == "" {
		return &MissingPropertyError{Property: "serverAddr"}
	}
	if c.FixturesDir == "" {
		return &MissingPropertyError{Property: "fixturesDir"}
	}
	return nil
}

func validateHTTPURL(prop, val string) error {
	u, pErr := url.Parse(val)
	if pErr != nil {
		return &InvalidURLError{Property: prop, Value: val, Wrapped: pErr}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &InvalidURLError{Property: prop, Value: val, Wrapped: errors.New("scheme must be http or https")}
	}
	if u.Host == "" {
		return &InvalidURLError{Property: prop, Value: val, Wrapped: errors.New("host is required")}
	}
	return nil
}
