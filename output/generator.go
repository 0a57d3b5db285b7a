// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package output renders repository values as hypermedia documents.
//
// A Visitor looks up the ValueObjectVisitor registered for the runtime
// type of a value and lets it drive a Generator, which builds the
// document in one wire format.  Visitors emit the same sequence of
// Generator calls regardless of format; XMLGenerator and
// JSONGenerator turn that sequence into equivalent XML and JSON.
//
// Generator calls must nest: every StartX is closed by the matching
// EndX with the same name before its parent closes.  A Generator
// panics with an ErrNesting if that is violated, since this is always
// a bug in a visitor.
package output

import (
	"fmt"
	"time"
)

// Attribute is a named value attached to a value element, such as
// the language code of a translation.
type Attribute struct {
	Name  string
	Value interface{}
}

// Generator builds one response document.  A Generator is used for a
// single response and is not safe for concurrent use.
type Generator interface {
	// StartDocument resets the generator to an empty document.
	StartDocument()

	// EndDocument finishes the document and returns its encoded
	// form.  Every element must have been closed.
	EndDocument() ([]byte, error)

	// IsEmpty returns whether nothing has been added to the
	// document since StartDocument.
	IsEmpty() bool

	// StartObjectElement opens an element describing a resource.
	// mediaTypeName is the logical type of the resource, and
	// defaults to name if empty.
	StartObjectElement(name, mediaTypeName string)
	EndObjectElement(name string)

	// StartHashElement opens a plain structured element with no
	// media type.
	StartHashElement(name string)
	EndHashElement(name string)

	// StartAttribute attaches a scalar attribute to the innermost
	// open object or hash element.
	StartAttribute(name string, value interface{})
	EndAttribute(name string)

	// StartValueElement adds a scalar child element.
	StartValueElement(name string, value interface{}, attrs ...Attribute)
	EndValueElement(name string)

	// StartList opens a list; every element started directly
	// inside it becomes a list item.
	StartList(name string)
	EndList(name string)

	// FieldTypeHash adds a complete field type specific hash as
	// a child element.
	FieldTypeHash(name string, hash interface{})

	// MediaType returns the full media type for a logical type
	// name in this generator's format.
	MediaType(typeName string) string
}

// formatScalar renders a scalar value as element or attribute text.
func formatScalar(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// normalizeScalar converts scalars with no direct JSON form.
func normalizeScalar(value interface{}) interface{} {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return value
	}
}
