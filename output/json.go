// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package output

import (
	"bytes"
	"sort"

	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/tidwall/pretty"
	"github.com/ugorji/go/codec"
)

// jsonObject is a JSON object that keeps its keys in insertion order.
type jsonObject struct {
	keys   []string
	values map[string]interface{}
}

func newJSONObject() *jsonObject {
	return &jsonObject{values: make(map[string]interface{})}
}

func (o *jsonObject) set(key string, value interface{}) {
	if _, present := o.values[key]; !present {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

type jsonList struct {
	items []interface{}
}

// JSONGenerator builds JSON documents.  Object elements carry their
// media type in a "_media-type" key and attributes become keys with a
// leading underscore.  A value element with attributes becomes an
// object holding the attributes and a "#text" key.
type JSONGenerator struct {
	// Pretty, if set, formats the output for people.
	Pretty bool

	root  *jsonObject
	stack elementStack
}

// NewJSONGenerator creates a generator for JSON documents.
func NewJSONGenerator() *JSONGenerator {
	g := &JSONGenerator{}
	g.StartDocument()
	return g
}

// MediaType returns the JSON media type for typeName.
func (g *JSONGenerator) MediaType(typeName string) string {
	return restdata.MediaType(typeName, restdata.FormatJSON)
}

func (g *JSONGenerator) StartDocument() {
	g.root = newJSONObject()
	g.stack.reset(g.root)
}

func (g *JSONGenerator) IsEmpty() bool {
	return g.root == nil || len(g.root.keys) == 0
}

// attach adds value under name to the innermost container.
func (g *JSONGenerator) attach(kind elementKind, name string, value interface{}) {
	switch parent := g.stack.requireContainer(kind, name).node.(type) {
	case *jsonList:
		parent.items = append(parent.items, value)
	case *jsonObject:
		parent.set(name, value)
	}
}

func (g *JSONGenerator) StartObjectElement(name, mediaTypeName string) {
	if mediaTypeName == "" {
		mediaTypeName = name
	}
	object := newJSONObject()
	object.set("_media-type", g.MediaType(mediaTypeName))
	g.attach(kindObject, name, object)
	g.stack.push(kindObject, name, object)
}

func (g *JSONGenerator) EndObjectElement(name string) {
	g.stack.pop(kindObject, name)
}

func (g *JSONGenerator) StartHashElement(name string) {
	object := newJSONObject()
	g.attach(kindHash, name, object)
	g.stack.push(kindHash, name, object)
}

func (g *JSONGenerator) EndHashElement(name string) {
	g.stack.pop(kindHash, name)
}

func (g *JSONGenerator) StartAttribute(name string, value interface{}) {
	top := g.stack.top()
	if top.kind != kindObject && top.kind != kindHash {
		panic(ErrNesting{Expected: "an object or hash element", Got: "attribute " + name + " in " + top.String()})
	}
	object := top.node.(*jsonObject)
	object.set("_"+name, normalizeScalar(value))
	g.stack.push(kindAttribute, name, object)
}

func (g *JSONGenerator) EndAttribute(name string) {
	g.stack.pop(kindAttribute, name)
}

func (g *JSONGenerator) StartValueElement(name string, value interface{}, attrs ...Attribute) {
	var node interface{} = normalizeScalar(value)
	if len(attrs) > 0 {
		object := newJSONObject()
		for _, attr := range attrs {
			object.set("_"+attr.Name, normalizeScalar(attr.Value))
		}
		object.set("#text", node)
		node = object
	}
	g.attach(kindValue, name, node)
	g.stack.push(kindValue, name, node)
}

func (g *JSONGenerator) EndValueElement(name string) {
	g.stack.pop(kindValue, name)
}

func (g *JSONGenerator) StartList(name string) {
	list := &jsonList{}
	g.attach(kindList, name, list)
	g.stack.push(kindList, name, list)
}

func (g *JSONGenerator) EndList(name string) {
	g.stack.pop(kindList, name)
}

// FieldTypeHash writes the hash as a plain JSON value.
func (g *JSONGenerator) FieldTypeHash(name string, hash interface{}) {
	g.attach(kindHash, name, hash)
}

// EndDocument encodes the document.
func (g *JSONGenerator) EndDocument() ([]byte, error) {
	g.stack.finish()
	var buf bytes.Buffer
	if err := writeJSON(&buf, &codec.JsonHandle{}, g.root); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if g.Pretty {
		out = pretty.Pretty(out)
	}
	return out, nil
}

// writeJSON writes value to buf.  Containers are written directly so
// their key order survives; scalars are encoded with the codec.
func writeJSON(buf *bytes.Buffer, handle *codec.JsonHandle, value interface{}) error {
	switch v := value.(type) {
	case *jsonObject:
		return writeJSONObject(buf, handle, v.keys, func(key string) interface{} { return v.values[key] })
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return writeJSONObject(buf, handle, keys, func(key string) interface{} { return v[key] })
	case *jsonList:
		return writeJSONList(buf, handle, v.items)
	case []interface{}:
		return writeJSONList(buf, handle, v)
	default:
		return writeJSONScalar(buf, handle, v)
	}
}

func writeJSONObject(buf *bytes.Buffer, handle *codec.JsonHandle, keys []string, get func(string) interface{}) error {
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONScalar(buf, handle, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeJSON(buf, handle, get(key)); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONList(buf *bytes.Buffer, handle *codec.JsonHandle, items []interface{}) error {
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(buf, handle, item); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeJSONScalar(buf *bytes.Buffer, handle *codec.JsonHandle, value interface{}) error {
	var out []byte
	if err := codec.NewEncoderBytes(&out, handle).Encode(normalizeScalar(value)); err != nil {
		return err
	}
	buf.Write(out)
	return nil
}
