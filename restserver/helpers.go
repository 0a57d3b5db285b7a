// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains the glue between the mux router and the route
// generator and href parser interfaces of the output and input
// packages.

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/gorilla/mux"
)

// muxRoutes builds and parses URLs with the routes registered on a
// router.
type muxRoutes struct {
	Router *mux.Router
}

// Generate implements restdata.RouteGenerator.  Parameters the route
// does not use are ignored.
func (u *muxRoutes) Generate(route string, params map[string]interface{}) (string, error) {
	r := u.Router.Get(route)
	if r == nil {
		return "", restdata.ErrNotRegistered{Kind: "route", Identifier: route}
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, 2*len(params))
	for _, name := range names {
		pairs = append(pairs, name, fmt.Sprint(params[name]))
	}
	built, err := r.URL(pairs...)
	if err != nil {
		return "", err
	}
	return built.String(), nil
}

// ParseHref implements input.HrefParser by finding the route that
// would serve href.  Absolute URLs are accepted; only their path is
// considered.
func (u *muxRoutes) ParseHref(href, attribute string) (string, error) {
	parsed, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	req := &http.Request{
		Method: http.MethodGet,
		URL:    &url.URL{Path: parsed.Path},
		Header: http.Header{},
	}
	var match mux.RouteMatch
	if !u.Router.Match(req, &match) || match.Route == nil {
		return "", errors.New("no route matches")
	}
	value, present := match.Vars[attribute]
	if !present {
		return "", fmt.Errorf("route %s has no %s", match.Route.GetName(), attribute)
	}
	return value, nil
}
