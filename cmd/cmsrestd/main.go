// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Command cmsrestd serves the content repository REST API over HTTP.
//
// Settings come from an optional YAML file named by --config, with
// command-line flags taking precedence:
//
//	http: ":5980"
//	backend: memory
//	prefix: /api/ezp/v2
//	cache_size: 256
//	pretty_json: true
//	log_requests: true
//
// Prometheus metrics are served at /metrics, outside any prefix.
package main

import (
	"net/http"
	"os"

	"github.com/diffeo/go-cmsrest/backend"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var backendFlag = backend.Backend{Implementation: "memory"}

var flags = []cli.Flag{
	cli.StringFlag{
		Name:  "config",
		Usage: "YAML configuration file",
	},
	cli.StringFlag{
		Name:  "http",
		Value: DefaultConfig().HTTP,
		Usage: "[ip]:port for HTTP REST interface",
	},
	cli.GenericFlag{
		Name:  "backend",
		Value: &backendFlag,
		Usage: "impl[:address] of the storage backend",
	},
	cli.StringFlag{
		Name:  "prefix",
		Usage: "path prefix for every REST route",
	},
	cli.IntFlag{
		Name:  "cache-size",
		Value: DefaultConfig().CacheSize,
		Usage: "content types to cache, 0 to disable",
	},
	cli.BoolFlag{
		Name:  "pretty",
		Usage: "indent JSON responses",
	},
	cli.StringFlag{
		Name:  "xml-indent",
		Usage: "indent XML responses with this string",
	},
	cli.StringFlag{
		Name:  "log-level",
		Value: DefaultConfig().LogLevel,
		Usage: "minimum level of log messages",
	},
	cli.StringFlag{
		Name:  "log-format",
		Value: DefaultConfig().LogFormat,
		Usage: "log message format, text or json",
	},
	cli.BoolFlag{
		Name:  "log-requests",
		Usage: "log all requests",
	},
}

// configure merges the configuration file, if any, with the flags
// that were actually given.
func configure(c *cli.Context) (Config, error) {
	cfg := DefaultConfig()
	if filename := c.String("config"); filename != "" {
		if err := loadConfigYaml(filename, &cfg); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("http") {
		cfg.HTTP = c.String("http")
	}
	if c.IsSet("backend") {
		cfg.Backend = backendFlag.String()
	}
	if c.IsSet("prefix") {
		cfg.Prefix = c.String("prefix")
	}
	if c.IsSet("cache-size") {
		cfg.CacheSize = c.Int("cache-size")
	}
	if c.IsSet("pretty") {
		cfg.PrettyJSON = c.Bool("pretty")
	}
	if c.IsSet("xml-indent") {
		cfg.XMLIndent = c.String("xml-indent")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("log-requests") {
		cfg.LogRequests = c.Bool("log-requests")
	}
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := configure(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	repo, err := newRepository(cfg)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"http":    cfg.HTTP,
		"backend": cfg.Backend,
		"prefix":  cfg.Prefix,
	}).Info("Serving")
	return http.ListenAndServe(cfg.HTTP, newHandler(repo, cfg, logger))
}

func main() {
	app := cli.NewApp()
	app.Name = "cmsrestd"
	app.Usage = "serve the content repository REST API"
	app.Flags = flags
	app.Action = serve
	if err := app.Run(os.Args); err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("cmsrestd failed")
	}
}
