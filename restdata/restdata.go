// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restdata defines common data structures shared between the
// input, output, restserver, and restclient packages: media types,
// the error taxonomy, and the REST-specific wrapper values that the
// output visitors render.
//
// # Media Types
//
// Every resource has a logical type name, such as "ContentTypeCreate"
// or "Relation".  On the wire this becomes a vendor media type,
//
//	application/vnd.ez.api.ContentTypeCreate+json
//	application/vnd.ez.api.Relation+xml
//
// where the suffix selects the document format.  Request bodies are
// routed to a parser by the type name in their Content-Type: header;
// responses name their own type in the Content-Type: header and in a
// media-type attribute on every object element.
//
// # Hypermedia
//
// Every object element in a response carries an href attribute
// pointing at the canonical URL of the resource it describes.
// Clients should follow these links rather than building URLs
// themselves; the URL structure is not part of the API contract.
// Request bodies that refer to other resources do so the same way,
// with an element carrying an _href attribute (JSON) or href
// attribute (XML), for instance
//
//	"User": {"_href": "/user/users/14"}
//
// # Errors
//
// Failures are returned as an ErrorMessage document with a failing
// HTTP status.  Structurally invalid request bodies produce 400 Bad
// Request with a message naming the offending element.  If Go server
// code panics, this is captured and returned as an ErrorResponse
// JSON object with error code "panic".
package restdata

import (
	"fmt"
	"mime"
	"strings"
)

// VendorPrefix is the common prefix of every media type this API
// produces or understands.
const VendorPrefix = "application/vnd.ez.api."

// Document formats, as they appear in media type suffixes.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// MediaType builds the full media type for a logical type name in a
// given format, e.g. MediaType("Relation", FormatXML) ==
// "application/vnd.ez.api.Relation+xml".
func MediaType(typeName, format string) string {
	return VendorPrefix + typeName + "+" + format
}

// ParsedMediaType is the decomposition of a Content-Type: or Accept:
// media range.
type ParsedMediaType struct {
	// TypeName is the logical type name, or empty for generic
	// media types like application/json.
	TypeName string

	// Format is FormatJSON, FormatXML, or empty if unknown.
	Format string

	// Params holds the media type parameters, such as "version".
	Params map[string]string
}

// ParseMediaType decomposes a media type string.  Vendor types yield
// their type name and format; the generic JSON and XML media types
// yield only a format.  Any other well-formed media type yields an
// empty type name and format.
func ParseMediaType(mediaType string) (ParsedMediaType, error) {
	result := ParsedMediaType{}
	base, params, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return result, err
	}
	result.Params = params
	switch base {
	case "application/json", "text/json":
		result.Format = FormatJSON
		return result, nil
	case "application/xml", "text/xml":
		result.Format = FormatXML
		return result, nil
	}
	if !strings.HasPrefix(base, strings.ToLower(VendorPrefix)) {
		return result, nil
	}
	// mime.ParseMediaType lowercases, but type names are
	// case-sensitive, so recover them from the original string.
	rest := strings.TrimSpace(strings.SplitN(mediaType, ";", 2)[0])[len(VendorPrefix):]
	if plus := strings.LastIndex(rest, "+"); plus >= 0 {
		result.TypeName = rest[:plus]
		switch suffix := strings.ToLower(rest[plus+1:]); suffix {
		case FormatJSON, FormatXML:
			result.Format = suffix
		default:
			return result, fmt.Errorf("Unknown media type format %q", suffix)
		}
	} else {
		result.TypeName = rest
	}
	return result, nil
}

// TypeName extracts the logical type name from a string that is
// either a bare type name or a vendor media type.  Non-vendor media
// types are returned unchanged.
func TypeName(mediaType string) string {
	if !strings.HasPrefix(strings.ToLower(mediaType), strings.ToLower(VendorPrefix)) {
		return mediaType
	}
	parsed, err := ParseMediaType(mediaType)
	if err != nil || parsed.TypeName == "" {
		return mediaType
	}
	return parsed.TypeName
}
