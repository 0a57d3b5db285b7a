// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package repository

import "time"

// ContentTypeCreateStruct holds everything needed to create a new
// content type.  Get one from ContentTypeService.NewContentTypeCreateStruct.
type ContentTypeCreateStruct struct {
	// Identifier is the unique, human-readable name of the
	// content type, such as "article".
	Identifier string

	// MainLanguageCode is the language that Names and
	// Descriptions must at least contain, such as "eng-US".
	MainLanguageCode string

	// RemoteID is an externally-assigned identifier.  If empty,
	// the repository assigns one.
	RemoteID string

	URLAliasSchema string
	NameSchema     string

	// IsContainer indicates whether content of this type can
	// have children.  Defaults to false.
	IsContainer bool

	// DefaultSortField and DefaultSortOrder control how children
	// of new content are sorted.  Default to SortFieldPath and
	// SortOrderAsc.
	DefaultSortField SortField
	DefaultSortOrder SortOrder

	// DefaultAlwaysAvailable defaults to true.
	DefaultAlwaysAvailable bool

	// Names and Descriptions map language codes to text.
	Names        map[string]string
	Descriptions map[string]string

	// CreationDate, if zero, is set to the current time when the
	// content type is created.
	CreationDate time.Time

	// CreatorID is the ID of the user creating the content type.
	CreatorID int

	// FieldDefinitions lists the fields of the new content type,
	// in order.
	FieldDefinitions []*FieldDefinitionCreateStruct
}

// AddFieldDefinition appends a field definition to the create struct.
func (s *ContentTypeCreateStruct) AddFieldDefinition(fd *FieldDefinitionCreateStruct) {
	s.FieldDefinitions = append(s.FieldDefinitions, fd)
}

// ContentTypeUpdateStruct describes changes to an existing content
// type.  Nil fields are left unchanged.
type ContentTypeUpdateStruct struct {
	Identifier             *string
	RemoteID               *string
	URLAliasSchema         *string
	NameSchema             *string
	IsContainer            *bool
	MainLanguageCode       *string
	DefaultSortField       *SortField
	DefaultSortOrder       *SortOrder
	DefaultAlwaysAvailable *bool
	Names                  map[string]string
	Descriptions           map[string]string
	ModificationDate       *time.Time
	ModifierID             *int
}

// FieldDefinitionCreateStruct holds everything needed to create one
// field of a new content type.
type FieldDefinitionCreateStruct struct {
	Identifier          string
	FieldTypeIdentifier string
	Names               map[string]string
	Descriptions        map[string]string
	FieldGroup          string

	// Position orders the field within its content type.  Zero
	// means "after all of the others".
	Position int

	IsTranslatable  bool
	IsRequired      bool
	IsInfoCollector bool
	IsSearchable    bool

	// DefaultValue, FieldSettings, and ValidatorConfiguration are
	// field type specific hashes: trees of
	// map[string]interface{}, []interface{}, and scalars.
	DefaultValue           interface{}
	FieldSettings          interface{}
	ValidatorConfiguration interface{}
}

// ContentTypeStatus is the publication state of a content type.
type ContentTypeStatus int

const (
	// StatusDefined is a published content type.
	StatusDefined ContentTypeStatus = iota

	// StatusDraft is a content type that has never been published.
	StatusDraft
)

// ContentType is a stored content type.
type ContentType struct {
	ID                     int
	Status                 ContentTypeStatus
	Identifier             string
	RemoteID               string
	URLAliasSchema         string
	NameSchema             string
	IsContainer            bool
	MainLanguageCode       string
	DefaultAlwaysAvailable bool
	DefaultSortField       SortField
	DefaultSortOrder       SortOrder
	Names                  map[string]string
	Descriptions           map[string]string
	CreationDate           time.Time
	ModificationDate       time.Time
	CreatorID              int
	ModifierID             int
	GroupIDs               []int
	FieldDefinitions       []*FieldDefinition
}

// FieldDefinition returns the field definition of ct with the given
// ID, or nil.
func (ct *ContentType) FieldDefinition(id int) *FieldDefinition {
	for _, fd := range ct.FieldDefinitions {
		if fd.ID == id {
			return fd
		}
	}
	return nil
}

// Clone returns a copy of ct that shares no maps or slices with it.
// Field type specific hashes are shared; nothing modifies them in
// place.
func (ct *ContentType) Clone() *ContentType {
	clone := *ct
	clone.Names = cloneTranslations(ct.Names)
	clone.Descriptions = cloneTranslations(ct.Descriptions)
	clone.GroupIDs = append([]int(nil), ct.GroupIDs...)
	clone.FieldDefinitions = make([]*FieldDefinition, len(ct.FieldDefinitions))
	for i, fd := range ct.FieldDefinitions {
		fdClone := *fd
		fdClone.Names = cloneTranslations(fd.Names)
		fdClone.Descriptions = cloneTranslations(fd.Descriptions)
		clone.FieldDefinitions[i] = &fdClone
	}
	return &clone
}

func cloneTranslations(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// FieldDefinition is one stored field of a content type.
type FieldDefinition struct {
	ID                     int
	Identifier             string
	FieldTypeIdentifier    string
	Names                  map[string]string
	Descriptions           map[string]string
	FieldGroup             string
	Position               int
	IsTranslatable         bool
	IsRequired             bool
	IsInfoCollector        bool
	IsSearchable           bool
	DefaultValue           interface{}
	FieldSettings          interface{}
	ValidatorConfiguration interface{}
}

// ContentInfo is the metadata of a content object.
type ContentInfo struct {
	ID               int
	Name             string
	RemoteID         string
	MainLanguageCode string
	CurrentVersionNo int
}

// RelationType is a bit set of the ways one content object refers to
// another.
type RelationType int

// These relation type flags may be combined with bitwise OR.
const (
	RelationCommon RelationType = 1 << iota
	RelationEmbed
	RelationLink
	RelationField
	RelationAsset
)

// Relation is a reference from a version of a content object to
// another content object.
type Relation struct {
	ID int

	// SourceFieldDefinitionIdentifier names the field that holds
	// the relation, for RelationField relations.  Empty otherwise.
	SourceFieldDefinitionIdentifier string

	Type                   RelationType
	SourceContentInfo      *ContentInfo
	DestinationContentInfo *ContentInfo
}

// RelationCreateStruct describes a new COMMON relation.
type RelationCreateStruct struct {
	DestinationContentID int
}
