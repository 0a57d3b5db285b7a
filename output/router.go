// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package output

import (
	"fmt"
	"strings"

	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/jtacoma/uritemplates"
)

// TemplateRouter generates URLs from RFC 6570 URI templates.
type TemplateRouter struct {
	// Prefix is prepended to every generated URL, for instance a
	// base path the API is mounted under.
	Prefix string

	templates map[string]*uritemplates.UriTemplate
	names     map[string][]string
}

// NewTemplateRouter parses a map of route names to URI templates.
func NewTemplateRouter(prefix string, templates map[string]string) (*TemplateRouter, error) {
	r := &TemplateRouter{
		Prefix:    strings.TrimSuffix(prefix, "/"),
		templates: make(map[string]*uritemplates.UriTemplate, len(templates)),
		names:     make(map[string][]string, len(templates)),
	}
	for name, template := range templates {
		parsed, err := uritemplates.Parse(template)
		if err != nil {
			return nil, fmt.Errorf("route %q: %v", name, err)
		}
		r.templates[name] = parsed
		r.names[name] = templateVariables(template)
	}
	return r, nil
}

// DefaultTemplateRouter creates a router for the standard routes.
func DefaultTemplateRouter(prefix string) (*TemplateRouter, error) {
	return NewTemplateRouter(prefix, restdata.RouteTemplates)
}

// Generate expands the named route.  Every variable of the route's
// template must have a value in params.
func (r *TemplateRouter) Generate(route string, params map[string]interface{}) (string, error) {
	template, present := r.templates[route]
	if !present {
		return "", restdata.ErrNotRegistered{Kind: "route", Identifier: route}
	}
	values := make(map[string]interface{}, len(params))
	for _, name := range r.names[route] {
		value, present := params[name]
		if !present {
			return "", fmt.Errorf("route %q needs parameter %q", route, name)
		}
		values[name] = fmt.Sprint(value)
	}
	expanded, err := template.Expand(values)
	if err != nil {
		return "", err
	}
	return r.Prefix + expanded, nil
}

// templateVariables lists the variable names of the simple {name} and
// {name,other} expressions in a template.
func templateVariables(template string) []string {
	var names []string
	for _, part := range strings.Split(template, "{")[1:] {
		expression := strings.SplitN(part, "}", 2)[0]
		expression = strings.TrimLeft(expression, "+#./;?&")
		for _, name := range strings.Split(expression, ",") {
			name = strings.TrimRight(name, "*")
			if i := strings.IndexByte(name, ':'); i >= 0 {
				name = name[:i]
			}
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
