// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package input

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/tidwall/gjson"
)

// Decode reads a request body in the format named by contentType and
// returns the type name of its root element along with the root
// element's contents.  A type name in the media type itself takes
// precedence over the body's root element name.
//
// Returns restdata.ErrUnsupportedMediaType if contentType is neither
// XML nor JSON, and restdata.ErrBadRequest if the body cannot be
// decoded.
func Decode(contentType string, body io.Reader) (string, *Fragment, error) {
	mediaType, err := restdata.ParseMediaType(contentType)
	if err != nil {
		return "", nil, restdata.ErrUnsupportedMediaType{Type: contentType}
	}
	raw, err := ioutil.ReadAll(body)
	if err != nil {
		return "", nil, restdata.ErrBadRequest{Err: err}
	}

	var (
		rootName string
		root     *Fragment
	)
	switch mediaType.Format {
	case restdata.FormatJSON:
		rootName, root, err = DecodeJSON(raw)
	case restdata.FormatXML:
		rootName, root, err = DecodeXML(raw)
	default:
		return "", nil, restdata.ErrUnsupportedMediaType{Type: contentType}
	}
	if err != nil {
		return "", nil, restdata.ErrBadRequest{Err: err}
	}
	if mediaType.TypeName != "" {
		rootName = mediaType.TypeName
	}
	return rootName, root, nil
}

// DecodeJSON decodes a body of the form {"Type": {...}}.  Numbers and
// booleans become their literal text, so every scalar in the result is
// a string, the same as for XML.  Nulls are dropped.
func DecodeJSON(raw []byte) (string, *Fragment, error) {
	if !gjson.ValidBytes(raw) {
		return "", nil, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return "", nil, errors.New("JSON body must be an object")
	}

	var (
		rootName string
		root     *Fragment
		count    int
	)
	doc.ForEach(func(key, value gjson.Result) bool {
		count++
		rootName = key.String()
		root, _ = jsonValue(value).(*Fragment)
		return true
	})
	if count != 1 {
		return "", nil, fmt.Errorf("JSON body must have exactly one root element, found %d", count)
	}
	if root == nil {
		return "", nil, fmt.Errorf("root element %q must be an object", rootName)
	}
	return rootName, root, nil
}

func jsonValue(value gjson.Result) interface{} {
	switch {
	case value.IsObject():
		f := NewFragment()
		value.ForEach(func(key, child gjson.Result) bool {
			if child.Type != gjson.Null {
				f.Set(key.String(), jsonValue(child))
			}
			return true
		})
		return f
	case value.IsArray():
		items := value.Array()
		list := make([]interface{}, 0, len(items))
		for _, item := range items {
			if item.Type != gjson.Null {
				list = append(list, jsonValue(item))
			}
		}
		return list
	case value.Type == gjson.String:
		return value.String()
	default:
		return value.Raw
	}
}

// DecodeXML decodes a body whose root element names its type.
// Attributes become "_name" keys.  An element with neither attributes
// nor children becomes its text; otherwise any non-blank text is kept
// under "#text".  Repeated child elements become a list.
func DecodeXML(raw []byte) (string, *Fragment, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return "", nil, errors.New("XML body has no root element")
		}
		if err != nil {
			return "", nil, err
		}
		start, isStart := token.(xml.StartElement)
		if !isStart {
			continue
		}
		value, err := xmlElement(decoder, start)
		if err != nil {
			return "", nil, err
		}
		root, isFragment := value.(*Fragment)
		if !isFragment {
			// <Type>text</Type> or <Type/>
			root = NewFragment()
			if text := value.(string); text != "" {
				root.Set("#text", text)
			}
		}
		return start.Name.Local, root, nil
	}
}

func xmlElement(decoder *xml.Decoder, start xml.StartElement) (interface{}, error) {
	f := NewFragment()
	for _, attr := range start.Attr {
		f.Set("_"+attr.Name.Local, attr.Value)
	}
	var text strings.Builder
	for {
		token, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				err = fmt.Errorf("unexpected end of XML inside <%s>", start.Name.Local)
			}
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			child, err := xmlElement(decoder, t)
			if err != nil {
				return nil, err
			}
			f.Append(t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			s := strings.TrimSpace(text.String())
			if f.Len() == 0 {
				return s, nil
			}
			if s != "" {
				f.Set("#text", s)
			}
			return f, nil
		}
	}
}
