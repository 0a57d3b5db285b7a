// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/prometheus/client_golang/prometheus"
)

var parsesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "diffeo",
		Subsystem: "cmsrest",
		Name:      "parses_total",
		Help:      "Request bodies parsed, by type name and result",
	},
	[]string{
		"type",
		"result",
	},
)

var responsesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "diffeo",
		Subsystem: "cmsrest",
		Name:      "responses_total",
		Help:      "Responses sent, by route, method, and HTTP status",
	},
	[]string{
		"route",
		"method",
		"status",
	},
)

func init() {
	prometheus.MustRegister(parsesTotal, responsesTotal)
}
