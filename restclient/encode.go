// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"strings"

	"github.com/diffeo/go-cmsrest/input"
	"github.com/diffeo/go-cmsrest/output"
)

// writeObject writes a fragment as the root object element of a
// request.  This is the inverse of input.Decode: "_name" keys become
// attributes, lists become repeated elements, and a nested fragment
// with "#text" becomes a value element carrying its other keys as
// attributes.
func writeObject(g output.Generator, typeName string, body *input.Fragment) {
	g.StartObjectElement(typeName, typeName)
	writeMembers(g, body)
	g.EndObjectElement(typeName)
}

func writeMembers(g output.Generator, f *input.Fragment) {
	for _, key := range f.Keys() {
		value, _ := f.Get(key)
		switch {
		case key == "_media-type", key == "#text":
			// the generator writes its own media types; text
			// only appears on value elements
		case strings.HasPrefix(key, "_"):
			g.StartAttribute(key[1:], value)
			g.EndAttribute(key[1:])
		default:
			writeElement(g, key, value)
		}
	}
}

func writeElement(g output.Generator, name string, value interface{}) {
	switch v := value.(type) {
	case []interface{}:
		g.StartList(name)
		for _, item := range v {
			writeElement(g, name, item)
		}
		g.EndList(name)
	case *input.Fragment:
		if text, hasText := v.String("#text"); hasText {
			var attrs []output.Attribute
			for _, key := range v.Keys() {
				if strings.HasPrefix(key, "_") {
					attr, _ := v.Get(key)
					attrs = append(attrs, output.Attribute{Name: key[1:], Value: attr})
				}
			}
			g.StartValueElement(name, text, attrs...)
			g.EndValueElement(name)
			return
		}
		g.StartHashElement(name)
		writeMembers(g, v)
		g.EndHashElement(name)
	default:
		g.StartValueElement(name, v)
		g.EndValueElement(name)
	}
}
