// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

// RouteGenerator builds URLs for named routes.  Output visitors use it
// to fill in href attributes; the restserver package provides one
// backed by its router.
type RouteGenerator interface {
	// Generate returns the URL for the named route with its
	// parameters filled in.  It fails if the route is unknown or
	// a required parameter is missing.
	Generate(route string, params map[string]interface{}) (string, error)
}

// Route names shared by the server, the visitors, and the href
// parsers.  The parameter each route takes is listed alongside.
const (
	RouteLoadUser                       = "loadUser"                       // userId
	RouteLoadContent                    = "loadContent"                    // contentId
	RouteLoadVersionRelations           = "loadVersionRelations"           // contentId, versionNumber
	RouteLoadVersionRelation            = "loadVersionRelation"            // contentId, versionNumber, relationId
	RouteCreateContentType              = "createContentType"              // contentTypeGroupId
	RouteLoadContentTypeGroup           = "loadContentTypeGroup"           // contentTypeGroupId
	RouteLoadContentType                = "loadContentType"                // contentTypeId
	RouteLoadContentTypeFieldDefinition = "loadContentTypeFieldDefinition" // contentTypeId, fieldDefinitionId
)

// RouteTemplates are RFC 6570 URI templates for every named route.
// The restserver package registers the same paths with its router.
var RouteTemplates = map[string]string{
	RouteLoadUser:                       "/user/users/{userId}",
	RouteLoadContent:                    "/content/objects/{contentId}",
	RouteLoadVersionRelations:           "/content/objects/{contentId}/versions/{versionNumber}/relations",
	RouteLoadVersionRelation:            "/content/objects/{contentId}/versions/{versionNumber}/relations/{relationId}",
	RouteCreateContentType:              "/content/typegroups/{contentTypeGroupId}/types",
	RouteLoadContentTypeGroup:           "/content/typegroups/{contentTypeGroupId}",
	RouteLoadContentType:                "/content/types/{contentTypeId}",
	RouteLoadContentTypeFieldDefinition: "/content/types/{contentTypeId}/fieldDefinitions/{fieldDefinitionId}",
}
