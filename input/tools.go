// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package input

import (
	"strconv"
	"strings"
	"time"

	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restdata"
)

// HrefParser extracts route parameters from resource URLs.
type HrefParser interface {
	// ParseHref returns the value of the named parameter in the
	// route matched by href, e.g. ParseHref("/user/users/14",
	// "userId") returns "14".
	ParseHref(href, attribute string) (string, error)
}

// Tools holds the conversions shared by all of the parsers.
type Tools struct {
	Hrefs HrefParser
}

// NewTools creates a Tools that resolves hrefs with hrefs.
func NewTools(hrefs HrefParser) *Tools {
	return &Tools{Hrefs: hrefs}
}

// ParseBooleanValue accepts "true" and "false" in any case.
func (t *Tools) ParseBooleanValue(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, restdata.ParseErrorf("Unknown boolean value '%s'.", value)
}

// ParseInt parses a decimal integer.
func (t *Tools) ParseInt(value string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, restdata.ParseErrorf("Invalid integer value '%s'.", value)
	}
	return i, nil
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateTime parses an ISO 8601 date or date and time.  Values
// without a zone are taken as UTC.
func (t *Tools) ParseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, restdata.ParseErrorf("Invalid date value '%s'.", value)
}

// ParseDefaultSortField converts a sort field name like "PATH".
func (t *Tools) ParseDefaultSortField(value string) (repository.SortField, error) {
	var field repository.SortField
	if err := field.UnmarshalText([]byte(value)); err != nil {
		return 0, restdata.ParseErrorf("Unknown sort field '%s'.", value)
	}
	return field, nil
}

// ParseDefaultSortOrder converts "ASC" or "DESC".
func (t *Tools) ParseDefaultSortOrder(value string) (repository.SortOrder, error) {
	var order repository.SortOrder
	if err := order.UnmarshalText([]byte(value)); err != nil {
		return 0, restdata.ParseErrorf("Unknown sort order '%s'.", value)
	}
	return order, nil
}

// ParseTranslatableList converts a list of translations,
//
//	{"value": [{"_languageCode": "eng-US", "#text": "Name"}, ...]}
//
// into a map from language code to text.
func (t *Tools) ParseTranslatableList(data *Fragment) (map[string]string, error) {
	value, present := data.Get("value")
	if !present {
		return nil, restdata.ParseErrorf("Missing 'value' element in translatable list.")
	}
	result := make(map[string]string)
	for _, item := range t.NormalizeList(value) {
		translation, isFragment := item.(*Fragment)
		if !isFragment {
			return nil, restdata.ParseErrorf("Invalid 'value' element in translatable list.")
		}
		languageCode, hasLanguage := translation.String("_languageCode")
		if !hasLanguage {
			return nil, restdata.ParseErrorf("Missing '_languageCode' attribute in translatable list.")
		}
		text, _ := translation.String("#text")
		result[languageCode] = text
	}
	return result, nil
}

// ParseHrefID extracts the integer route parameter attribute from
// href.
func (t *Tools) ParseHrefID(href, attribute string) (int, error) {
	if t.Hrefs == nil {
		return 0, restdata.ParseErrorf("Cannot resolve '%s'.", href)
	}
	value, err := t.Hrefs.ParseHref(href, attribute)
	if err != nil {
		return 0, restdata.ParseErrorf("Invalid href '%s': %s", href, err.Error())
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, restdata.ParseErrorf("Invalid %s '%s' in href '%s'.", attribute, value, href)
	}
	return id, nil
}

// NormalizeList smooths over the single-element ambiguity in decoded
// bodies.  A list is returned as is, any other non-nil value becomes a
// one-element list.
func (t *Tools) NormalizeList(value interface{}) []interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case []interface{}:
		return v
	default:
		return []interface{}{v}
	}
}

// IsEmbeddedObject returns whether data carries the contents of an
// object, rather than only a reference to it.
func (t *Tools) IsEmbeddedObject(data *Fragment) bool {
	for _, key := range data.Keys() {
		if key != "_href" && key != "_media-type" {
			return true
		}
	}
	return false
}

// ParseObjectElement parses an element that may either embed an object
// or refer to one.  Embedded objects are dispatched by their
// "_media-type" attribute; references yield their href.
func (t *Tools) ParseObjectElement(data *Fragment, d *Dispatcher) (interface{}, error) {
	if !t.IsEmbeddedObject(data) {
		href, hasHref := data.String("_href")
		if !hasHref {
			return nil, restdata.ParseErrorf("Missing '_href' attribute for object element.")
		}
		return href, nil
	}
	mediaType, hasMediaType := data.String("_media-type")
	if !hasMediaType {
		return nil, restdata.ParseErrorf("Missing '_media-type' attribute for embedded object element.")
	}
	return d.Parse(data, mediaType)
}

// ParseHash converts a decoded element into the plain hash form that
// field type processors take.  Text-only elements stay strings.
//
// XML bodies carry hashes as runs of <value> children: keyed ones,
//
//	<fieldSettings><value key="defaultType">DEFAULT_EMPTY</value></fieldSettings>
//
// make a map, and keyless ones make a list.  Such elements come back
// as the same map or list a JSON body gives directly.
func (t *Tools) ParseHash(value interface{}) interface{} {
	return toHash(xmlHash(value))
}

// xmlHash undoes the <value key="k"> encoding of a hash element.
// Anything not in that form is returned unchanged.
func xmlHash(value interface{}) interface{} {
	f, isFragment := value.(*Fragment)
	if !isFragment || f.Len() != 1 || !f.Has("value") {
		return value
	}
	children, _ := f.Get("value")
	items, isList := children.([]interface{})
	if !isList {
		items = []interface{}{children}
	}

	keyed := 0
	for _, item := range items {
		if child, isFragment := item.(*Fragment); isFragment && child.Has("_key") {
			keyed++
		}
	}
	switch keyed {
	case len(items):
		m := make(map[string]interface{}, len(items))
		for _, item := range items {
			child := item.(*Fragment)
			key, _ := child.String("_key")
			m[key] = xmlHashItem(child)
		}
		return m
	case 0:
		list := make([]interface{}, len(items))
		for i, item := range items {
			list[i] = xmlHashItem(item)
		}
		return list
	default:
		return value
	}
}

// xmlHashItem returns the value of one <value> element with its key
// attribute dropped.
func xmlHashItem(item interface{}) interface{} {
	child, isFragment := item.(*Fragment)
	if !isFragment {
		return item
	}
	rest := NewFragment()
	for _, key := range child.Keys() {
		if key != "_key" {
			v, _ := child.Get(key)
			rest.Set(key, v)
		}
	}
	switch {
	case rest.Len() == 0:
		return ""
	case rest.Len() == 1 && rest.Has("#text"):
		text, _ := rest.Get("#text")
		return text
	default:
		return xmlHash(rest)
	}
}
