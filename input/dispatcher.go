// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package input turns decoded request bodies into repository create
// and update structs.
//
// A request body is first decoded into a Fragment (Decode).  The
// Dispatcher then picks the Parser registered for the body's type
// name and runs it.  Parsers hand nested elements back to the
// Dispatcher, so a ContentTypeCreate body is parsed by the
// ContentTypeCreate parser, which in turn dispatches each of its
// FieldDefinition elements.
//
// Dispatchers are filled in at startup and only read while serving, so
// they need no locking.
package input

import (
	"github.com/diffeo/go-cmsrest/restdata"
)

// Parser converts one fragment into a typed value.  Parsers fail with
// restdata.ErrParse on the first invalid element and return no partial
// result.
type Parser interface {
	Parse(data *Fragment, d *Dispatcher) (interface{}, error)
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc func(data *Fragment, d *Dispatcher) (interface{}, error)

// Parse calls f(data, d).
func (f ParserFunc) Parse(data *Fragment, d *Dispatcher) (interface{}, error) {
	return f(data, d)
}

// Dispatcher maps type names to parsers.
type Dispatcher struct {
	parsers map[string]Parser
}

// NewDispatcher creates a dispatcher pre-populated with parsers, keyed
// by type name.
func NewDispatcher(parsers map[string]Parser) *Dispatcher {
	d := &Dispatcher{parsers: make(map[string]Parser, len(parsers))}
	for typeName, parser := range parsers {
		d.Register(typeName, parser)
	}
	return d
}

// Register stores parser under a type name or media type, replacing
// any parser already registered for it.
func (d *Dispatcher) Register(mediaType string, parser Parser) {
	if d.parsers == nil {
		d.parsers = make(map[string]Parser)
	}
	d.parsers[restdata.TypeName(mediaType)] = parser
}

// Has returns whether a parser is registered for a type name or media
// type.
func (d *Dispatcher) Has(mediaType string) bool {
	_, present := d.parsers[restdata.TypeName(mediaType)]
	return present
}

// Parse runs the parser registered for mediaType over data.  mediaType
// may be a bare type name ("ContentTypeCreate") or a full media type
// ("application/vnd.ez.api.ContentTypeCreate+json").  Returns
// restdata.ErrNotRegistered if there is no such parser.
func (d *Dispatcher) Parse(data *Fragment, mediaType string) (interface{}, error) {
	parser, present := d.parsers[restdata.TypeName(mediaType)]
	if !present {
		return nil, restdata.ErrNotRegistered{Kind: "parser", Identifier: mediaType}
	}
	return parser.Parse(data, d)
}
