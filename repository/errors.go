// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package repository

import (
	"errors"
	"fmt"
)

// ErrNoIdentifier is returned from ContentTypeService.CreateContentType
// if the create struct has an empty identifier.
var ErrNoIdentifier = errors.New("Content type must have an identifier")

// ErrNoMainLanguage is returned from ContentTypeService.CreateContentType
// if the create struct has no main language code.
var ErrNoMainLanguage = errors.New("Content type must have a main language code")

// ErrAlreadyPublished is returned from
// ContentTypeService.PublishContentTypeDraft if the content type is
// not a draft.
var ErrAlreadyPublished = errors.New("Content type is already published")

// ErrNoSuchContentType is returned by ContentTypeService.LoadContentType()
// and similar functions that cannot find a content type by ID.
type ErrNoSuchContentType struct {
	ID int
}

func (err ErrNoSuchContentType) Error() string {
	return fmt.Sprintf("No such content type %v", err.ID)
}

// ErrNoSuchContentTypeGroup is returned by
// ContentTypeService.CreateContentType() if the target group does not
// exist.
type ErrNoSuchContentTypeGroup struct {
	ID int
}

func (err ErrNoSuchContentTypeGroup) Error() string {
	return fmt.Sprintf("No such content type group %v", err.ID)
}

// ErrDuplicateIdentifier is returned when creating or renaming a
// content type would reuse an existing identifier.
type ErrDuplicateIdentifier struct {
	Identifier string
}

func (err ErrDuplicateIdentifier) Error() string {
	return fmt.Sprintf("Content type identifier %q already exists", err.Identifier)
}

// ErrNoSuchContent is returned by ContentService functions that
// cannot find a content object by ID.
type ErrNoSuchContent struct {
	ID int
}

func (err ErrNoSuchContent) Error() string {
	return fmt.Sprintf("No such content %v", err.ID)
}

// ErrNoSuchVersion is returned by ContentService functions given a
// version number that a content object does not have.
type ErrNoSuchVersion struct {
	ContentID int
	VersionNo int
}

func (err ErrNoSuchVersion) Error() string {
	return fmt.Sprintf("No version %v of content %v", err.VersionNo, err.ContentID)
}
