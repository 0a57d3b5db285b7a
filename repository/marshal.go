// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package repository

import (
	"fmt"
)

// SortField names the property children of a location are sorted by.
type SortField int

// The numeric values match the repository's stored sort field codes.
const (
	SortFieldPath SortField = iota + 1
	SortFieldPublished
	SortFieldModified
	SortFieldSection
	SortFieldDepth
	SortFieldClassIdentifier
	SortFieldClassName
	SortFieldPriority
	SortFieldName
	SortFieldModifiedSubnode
	SortFieldNodeID
	SortFieldContentObjectID
)

var sortFieldNames = map[SortField]string{
	SortFieldPath:            "PATH",
	SortFieldPublished:       "PUBLISHED",
	SortFieldModified:        "MODIFIED",
	SortFieldSection:         "SECTION",
	SortFieldDepth:           "DEPTH",
	SortFieldClassIdentifier: "CLASS_IDENTIFIER",
	SortFieldClassName:       "CLASS_NAME",
	SortFieldPriority:        "PRIORITY",
	SortFieldName:            "NAME",
	SortFieldModifiedSubnode: "MODIFIED_SUBNODE",
	SortFieldNodeID:          "NODE_ID",
	SortFieldContentObjectID: "CONTENTOBJECT_ID",
}

// MarshalText returns the symbolic name of a sort field.
func (f SortField) MarshalText() ([]byte, error) {
	if name, ok := sortFieldNames[f]; ok {
		return []byte(name), nil
	}
	return nil, fmt.Errorf("invalid sort field (marshal, %+v)", int(f))
}

// UnmarshalText populates a sort field from its symbolic name.
func (f *SortField) UnmarshalText(text []byte) error {
	for field, name := range sortFieldNames {
		if name == string(text) {
			*f = field
			return nil
		}
	}
	return fmt.Errorf("invalid sort field (unmarshal, %+v)", string(text))
}

// SortOrder is the direction children of a location are sorted in.
type SortOrder int

const (
	SortOrderDesc SortOrder = iota
	SortOrderAsc
)

// MarshalText returns "ASC" or "DESC".
func (o SortOrder) MarshalText() ([]byte, error) {
	switch o {
	case SortOrderAsc:
		return []byte("ASC"), nil
	case SortOrderDesc:
		return []byte("DESC"), nil
	default:
		return nil, fmt.Errorf("invalid sort order (marshal, %+v)", int(o))
	}
}

// UnmarshalText populates a sort order from "ASC" or "DESC".
func (o *SortOrder) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ASC":
		*o = SortOrderAsc
	case "DESC":
		*o = SortOrderDesc
	default:
		return fmt.Errorf("invalid sort order (unmarshal, %+v)", string(text))
	}
	return nil
}

// MarshalText returns "DEFINED" or "DRAFT".
func (s ContentTypeStatus) MarshalText() ([]byte, error) {
	switch s {
	case StatusDefined:
		return []byte("DEFINED"), nil
	case StatusDraft:
		return []byte("DRAFT"), nil
	default:
		return nil, fmt.Errorf("invalid content type status (marshal, %+v)", int(s))
	}
}
