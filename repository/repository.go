// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package repository defines the abstract content repository API that
// the REST layer translates to and from.
//
// The REST layer never builds the create and update structs here by
// assigning fields from scratch; it asks a ContentTypeService for a
// fresh struct (which carries the repository's defaults) and then
// fills in what the request provided.  Implementations of this API,
// such as the memory package, supply both the factories and the
// operations that consume the structs.
package repository

// Repository is the principal interface to a content repository.
type Repository interface {
	// ContentTypeService returns the service for content types
	// and their field definitions.
	ContentTypeService() ContentTypeService

	// ContentService returns the service for content objects and
	// their relations.
	ContentService() ContentService
}

// ContentTypeService creates, loads, and updates content types.
type ContentTypeService interface {
	// NewContentTypeCreateStruct returns a create struct for a
	// content type with the given identifier, with every other
	// field set to its repository default.
	NewContentTypeCreateStruct(identifier string) *ContentTypeCreateStruct

	// NewContentTypeUpdateStruct returns an empty update struct.
	// Fields left nil are not changed by UpdateContentType.
	NewContentTypeUpdateStruct() *ContentTypeUpdateStruct

	// NewFieldDefinitionCreateStruct returns a create struct for a
	// field definition with the given identifier and field type.
	NewFieldDefinitionCreateStruct(identifier, fieldTypeIdentifier string) *FieldDefinitionCreateStruct

	// CreateContentType creates a new content type in the named
	// content type group.  If the group does not exist, returns
	// ErrNoSuchContentTypeGroup.  If another content type
	// already has the same identifier, returns
	// ErrDuplicateIdentifier.
	CreateContentType(create *ContentTypeCreateStruct, groupID int) (*ContentType, error)

	// LoadContentType retrieves a content type by its ID, or
	// returns ErrNoSuchContentType.
	LoadContentType(id int) (*ContentType, error)

	// UpdateContentType applies the non-nil fields of update to
	// an existing content type.
	UpdateContentType(id int, update *ContentTypeUpdateStruct) (*ContentType, error)

	// PublishContentTypeDraft makes a draft content type
	// available for use.  Publishing a content type that is
	// already defined returns ErrAlreadyPublished.
	PublishContentTypeDraft(id int) (*ContentType, error)
}

// ContentService loads content objects and manages relations between
// versions of them.
type ContentService interface {
	// LoadContentInfo retrieves the metadata of a content object,
	// or returns ErrNoSuchContent.
	LoadContentInfo(id int) (*ContentInfo, error)

	// CreateContentInfo registers a new content object with the
	// given name in the given main language.
	CreateContentInfo(name, mainLanguageCode string) (*ContentInfo, error)

	// LoadRelations returns all of the outgoing relations of a
	// version of a content object, in creation order.
	LoadRelations(contentID, versionNo int) ([]*Relation, error)

	// AddRelation creates a COMMON relation from a version of a
	// content object to another content object.
	AddRelation(contentID, versionNo int, create *RelationCreateStruct) (*Relation, error)

	// NewRelationCreateStruct returns a create struct for a
	// relation to the given destination content object.
	NewRelationCreateStruct(destinationContentID int) *RelationCreateStruct
}
