// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes a content repository as a REST service.
// The restclient package is a matching client.
//
// Request bodies are decoded by the input package and responses are
// rendered by the output package; this package only ties HTTP to
// them.  The media types and error documents are described in the
// restdata package.  Note that the URLs described here are not
// actually part of the API: clients should follow the href attributes
// of returned resources.
//
// # HTTP Considerations
//
// Clients should use the standard HTTP Accept: header to choose a
// response format.  Any XML or JSON media type is understood,
// including the vendor types such as
//
//	application/vnd.ez.api.ContentType+xml
//
// and JSON is returned if the client has no preference.  Request
// bodies must have a Content-Type: header naming their type, for
// instance application/vnd.ez.api.ContentTypeCreate+json.
//
// This interface does not (currently) support HTTP caching or
// authentication headers.
//
// # URL Scheme
//
// The following URLs are defined:
//
//	/user/users/{userId}
//	/content/objects/{contentId}
//	/content/objects/{contentId}/versions/{versionNumber}/relations
//	/content/objects/{contentId}/versions/{versionNumber}/relations/{relationId}
//	/content/typegroups/{contentTypeGroupId}
//	/content/typegroups/{contentTypeGroupId}/types
//	/content/types/{contentTypeId}
//	/content/types/{contentTypeId}/fieldDefinitions/{fieldDefinitionId}
//
// POST to .../relations with a RelationCreate body adds a relation.
// POST to .../types with a ContentTypeCreate body creates a content
// type; add ?publish=true to publish it immediately.  PATCH to a
// content type with a ContentTypeUpdate body changes it.
package restserver
