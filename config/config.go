// Package config loads client connection settings from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"telematics-hq/mygeotab-go/geotab"
)

const (
	envServer         = "GEOTAB_SERVER"
	envDatabase       = "GEOTAB_DATABASE"
	envUserName       = "GEOTAB_USERNAME"
	envPassword       = "GEOTAB_PASSWORD"
	envSessionID      = "GEOTAB_SESSION_ID"
	envTimeoutSeconds = "GEOTAB_TIMEOUT_SECONDS"

	defaultTimeoutSeconds = 30
)

var ErrReadingConfigFailed = errors.New("reading config file failed")
var ErrParsingConfigFailed = errors.New("parsing config file failed")

// Config holds the settings needed to build a connection and a client.
type Config struct {
	Server         string `yaml:"server"`
	Database       string `yaml:"database"`
	UserName       string `yaml:"username"`
	Password       string `yaml:"password"`
	SessionID      string `yaml:"session_id"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads the config file at path (skipped when path is empty) and then
// applies environment variable overrides (GEOTAB_SERVER, GEOTAB_DATABASE,
// GEOTAB_USERNAME, GEOTAB_PASSWORD, GEOTAB_SESSION_ID,
// GEOTAB_TIMEOUT_SECONDS).
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return Config{}, errors.Join(ErrReadingConfigFailed, readErr)
		}

		if unmarshalErr := yaml.Unmarshal(raw, &cfg); unmarshalErr != nil {
			return Config{}, errors.Join(ErrParsingConfigFailed, unmarshalErr)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	overrideString(envServer, &c.Server)
	overrideString(envDatabase, &c.Database)
	overrideString(envUserName, &c.UserName)
	overrideString(envPassword, &c.Password)
	overrideString(envSessionID, &c.SessionID)

	if value, found := os.LookupEnv(envTimeoutSeconds); found {
		if seconds, parseErr := strconv.Atoi(value); parseErr == nil {
			c.TimeoutSeconds = seconds
		}
	}
}

func overrideString(envName string, target *string) {
	if value, found := os.LookupEnv(envName); found {
		*target = value
	}
}

// Connection builds the geotab.Connection described by the config.
func (c Config) Connection() (geotab.Connection, error) {
	credentials := geotab.Credentials{
		Database:  c.Database,
		UserName:  c.UserName,
		Password:  c.Password,
		SessionID: c.SessionID,
	}

	return geotab.BuildConnection(c.Server, credentials)
}

// Timeout returns the configured HTTP timeout, defaulting to 30 seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}

	return time.Duration(c.TimeoutSeconds) * time.Second
}

// String renders the config with the password redacted.
func (c Config) String() string {
	password := c.Password
	if password != "" {
		password = "***"
	}

	return fmt.Sprintf("server=%s database=%s username=%s password=%s timeout=%s",
		c.Server, c.Database, c.UserName, password, c.Timeout())
}
