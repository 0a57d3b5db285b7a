// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package output

import (
	"net/http"
	"reflect"

	"github.com/diffeo/go-cmsrest/restdata"
)

// ValueObjectVisitor renders one kind of value through a Generator.
type ValueObjectVisitor interface {
	Visit(v *Visitor, g Generator, data interface{}) error
}

// ValueObjectVisitorFunc adapts a plain function to the
// ValueObjectVisitor interface.
type ValueObjectVisitorFunc func(v *Visitor, g Generator, data interface{}) error

// Visit calls f(v, g, data).
func (f ValueObjectVisitorFunc) Visit(v *Visitor, g Generator, data interface{}) error {
	return f(v, g, data)
}

type interfaceVisitor struct {
	iface   reflect.Type
	visitor ValueObjectVisitor
}

// Registry maps runtime types to the visitors that render them.  It is
// filled in at startup and only read afterwards.
type Registry struct {
	types      map[reflect.Type]ValueObjectVisitor
	interfaces []interfaceVisitor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[reflect.Type]ValueObjectVisitor)}
}

// Register stores visitor for the dynamic type of sample, replacing
// any visitor already registered for it.
func (r *Registry) Register(sample interface{}, visitor ValueObjectVisitor) {
	if r.types == nil {
		r.types = make(map[reflect.Type]ValueObjectVisitor)
	}
	r.types[reflect.TypeOf(sample)] = visitor
}

// RegisterInterface stores visitor for every type implementing an
// interface.  Pass a nil pointer to the interface, for instance
// (*error)(nil).  Interfaces are tried after exact types, in
// registration order.
func (r *Registry) RegisterInterface(ptrToInterface interface{}, visitor ValueObjectVisitor) {
	iface := reflect.TypeOf(ptrToInterface).Elem()
	for i, entry := range r.interfaces {
		if entry.iface == iface {
			r.interfaces[i].visitor = visitor
			return
		}
	}
	r.interfaces = append(r.interfaces, interfaceVisitor{iface: iface, visitor: visitor})
}

// Lookup returns the visitor for the runtime type of data.  A visitor
// registered for T also serves *T and the reverse.  Returns
// restdata.ErrNotRegistered if nothing matches.
func (r *Registry) Lookup(data interface{}) (ValueObjectVisitor, error) {
	t := reflect.TypeOf(data)
	if t == nil {
		return nil, restdata.ErrNotRegistered{Kind: "value object visitor", Identifier: "<nil>"}
	}
	if visitor, present := r.types[t]; present {
		return visitor, nil
	}
	var counterpart reflect.Type
	if t.Kind() == reflect.Ptr {
		counterpart = t.Elem()
	} else {
		counterpart = reflect.PtrTo(t)
	}
	if visitor, present := r.types[counterpart]; present {
		return visitor, nil
	}
	for _, entry := range r.interfaces {
		if t.Implements(entry.iface) {
			return entry.visitor, nil
		}
	}
	return nil, restdata.ErrNotRegistered{Kind: "value object visitor", Identifier: t.String()}
}

// Response is a rendered document with its status and headers.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Visitor renders one response.  Create a new Visitor for every
// response; it is not safe for concurrent use.
type Visitor struct {
	// Routes builds the href attributes of rendered resources.
	Routes restdata.RouteGenerator

	registry  *Registry
	generator Generator
	status    int
	header    http.Header
}

// NewVisitor creates a visitor that renders through generator with
// the visitors in registry.
func NewVisitor(registry *Registry, generator Generator, routes restdata.RouteGenerator) *Visitor {
	return &Visitor{
		Routes:    routes,
		registry:  registry,
		generator: generator,
		header:    make(http.Header),
	}
}

// Generator returns the generator this visitor renders through.
func (v *Visitor) Generator() Generator {
	return v.generator
}

// Visit renders data as a complete document.  The response status is
// 200 OK unless a visitor set another.
func (v *Visitor) Visit(data interface{}) (*Response, error) {
	v.generator.StartDocument()
	if err := v.VisitValueObject(data); err != nil {
		return nil, err
	}
	body, err := v.generator.EndDocument()
	if err != nil {
		return nil, err
	}
	status := v.status
	if status == 0 {
		status = http.StatusOK
	}
	return &Response{Status: status, Header: v.header, Body: body}, nil
}

// VisitValueObject renders data into the current document.  Visitors
// call this for embedded values.
func (v *Visitor) VisitValueObject(data interface{}) error {
	visitor, err := v.registry.Lookup(data)
	if err != nil {
		return err
	}
	return visitor.Visit(v, v.generator, data)
}

// SetHeader sets a response header unless it has already been set.
// The outermost visitor runs first, so its headers win over those of
// embedded values.
func (v *Visitor) SetHeader(name, value string) {
	if v.header.Get(name) == "" {
		v.header.Set(name, value)
	}
}

// SetStatus sets the response status unless it has already been set.
func (v *Visitor) SetStatus(status int) {
	if v.status == 0 {
		v.status = status
	}
}

// Href builds the URL of a named route.
func (v *Visitor) Href(route string, params map[string]interface{}) (string, error) {
	return v.Routes.Generate(route, params)
}
