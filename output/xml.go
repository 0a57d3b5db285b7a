// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package output

import (
	"bytes"
	"encoding/xml"
	"sort"

	"github.com/diffeo/go-cmsrest/restdata"
)

// xmlNode is one element of the document being built.
type xmlNode struct {
	name     string
	attrs    []xml.Attr
	children []*xmlNode
	text     string
}

// XMLGenerator builds XML documents.  Object elements carry their
// media type in a media-type attribute; lists have no element of
// their own, their items are children of the enclosing element.
type XMLGenerator struct {
	// Indent, if set, formats the output with this indent per
	// nesting level.
	Indent string

	root  *xmlNode
	stack elementStack
}

// NewXMLGenerator creates a generator for XML documents.
func NewXMLGenerator() *XMLGenerator {
	g := &XMLGenerator{}
	g.StartDocument()
	return g
}

// MediaType returns the XML media type for typeName.
func (g *XMLGenerator) MediaType(typeName string) string {
	return restdata.MediaType(typeName, restdata.FormatXML)
}

func (g *XMLGenerator) StartDocument() {
	g.root = &xmlNode{}
	g.stack.reset(g.root)
}

func (g *XMLGenerator) IsEmpty() bool {
	return g.root == nil || len(g.root.children) == 0
}

func (g *XMLGenerator) addChild(kind elementKind, name string) *xmlNode {
	parent := g.stack.requireContainer(kind, name).node.(*xmlNode)
	child := &xmlNode{name: name}
	parent.children = append(parent.children, child)
	return child
}

func (g *XMLGenerator) StartObjectElement(name, mediaTypeName string) {
	if mediaTypeName == "" {
		mediaTypeName = name
	}
	node := g.addChild(kindObject, name)
	node.attrs = append(node.attrs, xml.Attr{
		Name:  xml.Name{Local: "media-type"},
		Value: g.MediaType(mediaTypeName),
	})
	g.stack.push(kindObject, name, node)
}

func (g *XMLGenerator) EndObjectElement(name string) {
	g.stack.pop(kindObject, name)
}

func (g *XMLGenerator) StartHashElement(name string) {
	node := g.addChild(kindHash, name)
	g.stack.push(kindHash, name, node)
}

func (g *XMLGenerator) EndHashElement(name string) {
	g.stack.pop(kindHash, name)
}

func (g *XMLGenerator) StartAttribute(name string, value interface{}) {
	top := g.stack.top()
	if top.kind != kindObject && top.kind != kindHash {
		panic(ErrNesting{Expected: "an object or hash element", Got: "attribute " + name + " in " + top.String()})
	}
	node := top.node.(*xmlNode)
	node.attrs = append(node.attrs, xml.Attr{Name: xml.Name{Local: name}, Value: formatScalar(value)})
	g.stack.push(kindAttribute, name, node)
}

func (g *XMLGenerator) EndAttribute(name string) {
	g.stack.pop(kindAttribute, name)
}

func (g *XMLGenerator) StartValueElement(name string, value interface{}, attrs ...Attribute) {
	node := g.addChild(kindValue, name)
	for _, attr := range attrs {
		node.attrs = append(node.attrs, xml.Attr{Name: xml.Name{Local: attr.Name}, Value: formatScalar(attr.Value)})
	}
	node.text = formatScalar(value)
	g.stack.push(kindValue, name, node)
}

func (g *XMLGenerator) EndValueElement(name string) {
	g.stack.pop(kindValue, name)
}

func (g *XMLGenerator) StartList(name string) {
	// Items attach to the enclosing element.
	parent := g.stack.requireContainer(kindList, name)
	g.stack.push(kindList, name, parent.node)
}

func (g *XMLGenerator) EndList(name string) {
	g.stack.pop(kindList, name)
}

// FieldTypeHash writes maps as <value key="k"> children in key order
// and lists as repeated <value> children.
func (g *XMLGenerator) FieldTypeHash(name string, hash interface{}) {
	node := g.addChild(kindHash, name)
	fillXMLHash(node, hash)
}

func fillXMLHash(node *xmlNode, hash interface{}) {
	switch h := hash.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(h))
		for key := range h {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			child := &xmlNode{
				name:  "value",
				attrs: []xml.Attr{{Name: xml.Name{Local: "key"}, Value: key}},
			}
			fillXMLHash(child, h[key])
			node.children = append(node.children, child)
		}
	case []interface{}:
		for _, item := range h {
			child := &xmlNode{name: "value"}
			fillXMLHash(child, item)
			node.children = append(node.children, child)
		}
	default:
		node.text = formatScalar(hash)
	}
}

// EndDocument encodes the document with an XML declaration.
func (g *XMLGenerator) EndDocument() ([]byte, error) {
	g.stack.finish()
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	if g.Indent != "" {
		encoder.Indent("", g.Indent)
	}
	for _, child := range g.root.children {
		if err := encodeXMLNode(encoder, child); err != nil {
			return nil, err
		}
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXMLNode(encoder *xml.Encoder, node *xmlNode) error {
	start := xml.StartElement{Name: xml.Name{Local: node.name}, Attr: node.attrs}
	if err := encoder.EncodeToken(start); err != nil {
		return err
	}
	if node.text != "" {
		if err := encoder.EncodeToken(xml.CharData(node.text)); err != nil {
			return err
		}
	}
	for _, child := range node.children {
		if err := encodeXMLNode(encoder, child); err != nil {
			return err
		}
	}
	return encoder.EncodeToken(start.End())
}
