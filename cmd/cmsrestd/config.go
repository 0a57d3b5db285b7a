// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"io/ioutil"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config holds every setting of the daemon.  It can be read from a
// YAML file whose keys are the mapstructure tags here; command-line
// flags override the file.
type Config struct {
	// HTTP is the [ip]:port to listen on.
	HTTP string `mapstructure:"http"`

	// Backend is the impl[:address] of the repository.
	Backend string `mapstructure:"backend"`

	// Prefix, if not empty, is a path prefix for every route,
	// e.g. "/api/ezp/v2".
	Prefix string `mapstructure:"prefix"`

	// CacheSize is the number of content types to cache in front
	// of the backend; zero disables the cache.
	CacheSize int `mapstructure:"cache_size"`

	// PrettyJSON indents JSON responses.
	PrettyJSON bool `mapstructure:"pretty_json"`

	// XMLIndent indents XML responses by this string.
	XMLIndent string `mapstructure:"xml_indent"`

	// LogLevel is a logrus level name.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `mapstructure:"log_format"`

	// LogRequests logs every HTTP request.
	LogRequests bool `mapstructure:"log_requests"`
}

// DefaultConfig returns the settings used when neither a file nor a
// flag says otherwise.
func DefaultConfig() Config {
	return Config{
		HTTP:      ":5980",
		Backend:   "memory",
		CacheSize: 256,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// loadConfigYaml reads a YAML configuration file over cfg.  Unknown
// keys are an error, and scalars are converted as needed, so
// "cache_size: '10'" works.
func loadConfigYaml(filename string, cfg *Config) error {
	bytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}
	return decodeConfig(bytes, cfg)
}

func decodeConfig(bytes []byte, cfg *Config) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(bytes, &raw); err != nil {
		return err
	}
	config := mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	}
	decoder, err := mapstructure.NewDecoder(&config)
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// newLogger builds the daemon's logger from the configuration.
func newLogger(cfg Config) (*logrus.Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	switch cfg.LogFormat {
	case "", "text":
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errUnknownLogFormat(cfg.LogFormat)
	}
	return logger, nil
}

type errUnknownLogFormat string

func (e errUnknownLogFormat) Error() string {
	return "unknown log format " + string(e)
}
