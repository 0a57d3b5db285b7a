// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"
	"time"

	"github.com/diffeo/go-cmsrest/backend"
	"github.com/diffeo/go-cmsrest/cache"
	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restserver"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// newRepository builds the configured repository, wrapped in a cache
// if one is configured.
func newRepository(cfg Config) (repository.Repository, error) {
	var b backend.Backend
	if err := b.Set(cfg.Backend); err != nil {
		return nil, err
	}
	repo, err := b.Repository()
	if err != nil {
		return nil, err
	}
	if cfg.CacheSize > 0 {
		repo = cache.NewWithSize(repo, cfg.CacheSize)
	}
	return repo, nil
}

// newHandler builds the complete HTTP handler: the REST API, possibly
// under a prefix, plus /metrics, behind panic recovery and optional
// request logging.
func newHandler(repo repository.Repository, cfg Config, logger *logrus.Logger) http.Handler {
	r := mux.NewRouter()
	api := r
	if cfg.Prefix != "" {
		api = r.PathPrefix(cfg.Prefix).Subrouter()
	}
	restserver.PopulateRouter(api, repo, restserver.Options{
		Logger:     logger,
		PrettyJSON: cfg.PrettyJSON,
		XMLIndent:  cfg.XMLIndent,
	})
	r.Handle("/metrics", promhttp.Handler())

	recovery := negroni.NewRecovery()
	recovery.Logger = logger
	recovery.PrintStack = false
	n := negroni.New(recovery)
	if cfg.LogRequests {
		n.Use(requestLogger(logger))
	}
	n.UseHandler(r)
	return n
}

// requestLogger logs one line per request once it has been served.
func requestLogger(logger logrus.FieldLogger) negroni.Handler {
	return negroni.HandlerFunc(func(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
		start := time.Now()
		next(rw, req)
		fields := logrus.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"remote":   req.RemoteAddr,
			"duration": time.Since(start),
		}
		if res, ok := rw.(negroni.ResponseWriter); ok {
			fields["status"] = res.Status()
			fields["size"] = res.Size()
		}
		logger.WithFields(fields).Info("Request")
	})
}
