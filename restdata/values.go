// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"github.com/diffeo/go-cmsrest/repository"
)

// RestContentType is a content type as returned by the REST API.
type RestContentType struct {
	ContentType *repository.ContentType
}

// RestFieldDefinition is a single field definition together with the
// content type that owns it; the owner is needed to build its URL.
type RestFieldDefinition struct {
	ContentType     *repository.ContentType
	FieldDefinition *repository.FieldDefinition
}

// RestRelation is a relation from a specific version of a content
// object.  The repository's Relation does not know which version it
// belongs to, so this carries it alongside.
type RestRelation struct {
	Relation  *repository.Relation
	ContentID int
	VersionNo int
}

// RelationList is every outgoing relation of one content version.
type RelationList struct {
	Relations []*repository.Relation
	ContentID int
	VersionNo int
}

// CreatedContentType is the response to a successful content type
// creation: the new content type, with a 201 status and Location:
// header.
type CreatedContentType struct {
	ContentType RestContentType
}

// CreatedRelation is the response to a successful relation creation.
type CreatedRelation struct {
	Relation RestRelation
}
