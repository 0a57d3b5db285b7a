// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restclient provides a minimal HTTP client that talks to the
// matching server in the "restserver" package.
//
// The server in github.com/diffeo/go-cmsrest/cmd/cmsrestd can run a
// compatible REST server.  Call New() with the base URL of that
// service; for instance,
//
//	c, err := restclient.New("http://localhost:5980/")
//	doc, err := c.GetFrom("content/types/{id}", map[string]interface{}{"id": 1})
//	u, err := c.Route(restdata.RouteLoadContentType, map[string]interface{}{"contentTypeId": 1})
//
// Request and response bodies are input.Fragment trees, the same
// form the server parses requests into.  Follow the "_href" values of
// returned documents rather than building URLs by hand.
package restclient

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/diffeo/go-cmsrest/input"
	"github.com/diffeo/go-cmsrest/output"
	"github.com/diffeo/go-cmsrest/restdata"
)

// Client is a connection to a REST server.
type Client struct {
	resource

	// Format is the document format of requests and of the
	// responses asked for, restdata.FormatJSON or
	// restdata.FormatXML.
	Format string

	// HTTP performs the requests.  If nil, http.DefaultClient is
	// used.
	HTTP *http.Client

	routes *output.TemplateRouter
}

// New creates a new client for the REST server at baseURL.  It
// speaks JSON unless Format is changed.
func New(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("restclient: empty base URL")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	routes, err := output.DefaultTemplateRouter(base.Path)
	if err != nil {
		return nil, err
	}
	c := &Client{Format: restdata.FormatJSON, routes: routes}
	c.URL = base
	return c, nil
}

// Route returns the URL of a named route, such as
// restdata.RouteLoadContentType, under the client's base URL.
func (c *Client) Route(route string, params map[string]interface{}) (*url.URL, error) {
	href, err := c.routes.Generate(route, params)
	if err != nil {
		return nil, err
	}
	return c.URL.Parse(href)
}

// Document is a decoded response.
type Document struct {
	// Status is the HTTP status code of the response.
	Status int

	// Header holds the response headers.
	Header http.Header

	// TypeName is the logical type of the body, from its
	// Content-Type: header or its root element.
	TypeName string

	// Root is the content of the body's root element, or nil if
	// there was no body.
	Root *input.Fragment
}

// Href returns the URL of the resource the document describes.
func (d *Document) Href() string {
	href, _ := d.Root.String("_href")
	return href
}

// Location returns the Location: header of a response to a create
// request.
func (d *Document) Location() string {
	return d.Header.Get("Location")
}
