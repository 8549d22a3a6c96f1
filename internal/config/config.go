// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PORTAL_API_BASEURL.
const EnvPrefix = "PORTAL"

// EnvConfigJSON holds a whole configuration as JSON merged over the file.
const EnvConfigJSON = "PORTAL_CONFIG_JSON"

// MainConfigFile is read when ReadConfig is given a directory.
const MainConfigFile = "main.toml"

// ReadConfig from config file. path names the file itself or the directory holding main.toml.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		err error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(configFile(path))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	if jsonConfig := os.Getenv(EnvConfigJSON); jsonConfig != "" {
		c, err = decodeAndMergeConfig(c, jsonConfig)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func configFile(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, MainConfigFile)
	}

	if strings.HasSuffix(path, string(filepath.Separator)) || filepath.Ext(path) == "" {
		return filepath.Join(path, MainConfigFile)
	}

	return path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "Portal de Prestadores")
	v.SetDefault("webserver.shutdowntime", 5) //nolint:mnd
	v.SetDefault("webserver.cookiename", "portal_sid")
	v.SetDefault("session.expirytime", 24*time.Hour) //nolint:mnd
	v.SetDefault("session.cachesize", 1024)          //nolint:mnd
	v.SetDefault("session.storage.driver", StorageMemory)
	v.SetDefault("api.timeout", 30*time.Second) //nolint:mnd
	v.SetDefault("devapi.port", 3333)           //nolint:mnd
	v.SetDefault("devapi.tokenttl", 8*time.Hour) //nolint:mnd
	v.SetDefault("devapi.db.gormengine", "sqlite")
	v.SetDefault("log.loglevel", "info")
	v.SetDefault("log.appname", "portal")
	v.SetDefault("log.servicename", "portal")
	v.SetDefault("log.console.enabled", true)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config from "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	t := toml.NewEncoder(&buffer)
	t.SetIndentTables(true)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fill the route defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.API.BaseURL == "" {
		return errors.Wrap(ErrEmptyAPIBaseURL, invalidErrMessage)
	}

	switch strings.ToLower(c.Session.Storage.Driver) {
	case "", StorageMemory:
	case StorageMySQL, StoragePostgres:
		if c.Session.Storage.ConnectionURI == "" {
			return errors.Wrap(ErrMissingConnectionURI, invalidErrMessage)
		}
	default:
		return errors.Wrap(ErrUnknownStorageDriver, c.Session.Storage.Driver)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Session.LoginRoute == "" {
		c.Session.LoginRoute = "/login"
	}

	if c.Session.RecoveryRoute == "" {
		c.Session.RecoveryRoute = "/recuperar-senha"
	}

	if c.Session.DefaultRoute == "" {
		c.Session.DefaultRoute = "/dashboard"
	}

	if c.Session.ExpiredMessage == "" {
		c.Session.ExpiredMessage = "Sessão expirada. Faça login novamente."
	}

	return nil
}
