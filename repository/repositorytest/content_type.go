// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package repositorytest

import (
	"time"

	"github.com/diffeo/go-cmsrest/repository"
)

// TestNewContentTypeCreateStructDefaults checks the factory defaults.
func (s *Suite) TestNewContentTypeCreateStructDefaults() {
	create := s.ContentTypes().NewContentTypeCreateStruct("article")
	s.Equal("article", create.Identifier)
	s.Equal(repository.SortFieldPath, create.DefaultSortField)
	s.Equal(repository.SortOrderAsc, create.DefaultSortOrder)
	s.True(create.DefaultAlwaysAvailable)
	s.False(create.IsContainer)
	s.NotNil(create.Names)
	s.NotNil(create.Descriptions)
	s.Empty(create.FieldDefinitions)
}

// TestNewFieldDefinitionCreateStruct checks the field definition
// factory.
func (s *Suite) TestNewFieldDefinitionCreateStruct() {
	fd := s.ContentTypes().NewFieldDefinitionCreateStruct("title", "ezstring")
	s.Equal("title", fd.Identifier)
	s.Equal("ezstring", fd.FieldTypeIdentifier)
	s.NotNil(fd.Names)
}

// TestCreateLoadContentType creates a content type and reads it back.
func (s *Suite) TestCreateLoadContentType() {
	create := s.newCreateStruct("article")
	create.CreatorID = 14
	created, err := s.ContentTypes().CreateContentType(create, 1)
	if !s.NoError(err) {
		return
	}
	s.NotZero(created.ID)
	s.Equal("article", created.Identifier)
	s.Equal(repository.StatusDraft, created.Status)
	s.NotEmpty(created.RemoteID)
	s.Equal(14, created.CreatorID)
	s.Equal([]int{1}, created.GroupIDs)
	s.True(created.CreationDate.Equal(s.Clock.Now()))
	if s.Len(created.FieldDefinitions, 1) {
		s.NotZero(created.FieldDefinitions[0].ID)
		s.Equal("title", created.FieldDefinitions[0].Identifier)
		s.Equal(1, created.FieldDefinitions[0].Position)
	}

	loaded, err := s.ContentTypes().LoadContentType(created.ID)
	if s.NoError(err) {
		s.Equal(created, loaded)
	}
}

// TestCreateContentTypeKeepsDates checks that an explicit creation
// date is not overwritten.
func (s *Suite) TestCreateContentTypeKeepsDates() {
	create := s.newCreateStruct("dated")
	when := time.Date(2012, 12, 31, 12, 30, 0, 0, time.UTC)
	create.CreationDate = when
	created, err := s.ContentTypes().CreateContentType(create, 1)
	if s.NoError(err) {
		s.True(created.CreationDate.Equal(when))
		s.True(created.ModificationDate.Equal(s.Clock.Now()))
	}
}

// TestCreateContentTypeErrors covers the create failure modes.
func (s *Suite) TestCreateContentTypeErrors() {
	_, err := s.ContentTypes().CreateContentType(s.newCreateStruct(""), 1)
	s.Equal(repository.ErrNoIdentifier, err)

	noLang := s.newCreateStruct("nolang")
	noLang.MainLanguageCode = ""
	_, err = s.ContentTypes().CreateContentType(noLang, 1)
	s.Equal(repository.ErrNoMainLanguage, err)

	_, err = s.ContentTypes().CreateContentType(s.newCreateStruct("orphan"), 999)
	s.Equal(repository.ErrNoSuchContentTypeGroup{ID: 999}, err)

	_, err = s.ContentTypes().CreateContentType(s.newCreateStruct("twice"), 1)
	s.NoError(err)
	_, err = s.ContentTypes().CreateContentType(s.newCreateStruct("twice"), 1)
	s.Equal(repository.ErrDuplicateIdentifier{Identifier: "twice"}, err)
}

// TestLoadMissingContentType checks the not-found error.
func (s *Suite) TestLoadMissingContentType() {
	_, err := s.ContentTypes().LoadContentType(12345)
	s.Equal(repository.ErrNoSuchContentType{ID: 12345}, err)
}

// TestUpdateContentType changes some fields and leaves the rest alone.
func (s *Suite) TestUpdateContentType() {
	created, err := s.ContentTypes().CreateContentType(s.newCreateStruct("folder"), 1)
	if !s.NoError(err) {
		return
	}

	s.Clock.Add(time.Minute)
	update := s.ContentTypes().NewContentTypeUpdateStruct()
	isContainer := true
	sortField := repository.SortFieldName
	modifier := 10
	update.IsContainer = &isContainer
	update.DefaultSortField = &sortField
	update.ModifierID = &modifier
	update.Names = map[string]string{"ger-DE": "Ordner"}

	updated, err := s.ContentTypes().UpdateContentType(created.ID, update)
	if !s.NoError(err) {
		return
	}
	s.Equal("folder", updated.Identifier)
	s.True(updated.IsContainer)
	s.Equal(repository.SortFieldName, updated.DefaultSortField)
	s.Equal(repository.SortOrderAsc, updated.DefaultSortOrder)
	s.Equal(10, updated.ModifierID)
	s.Equal("Ordner", updated.Names["ger-DE"])
	s.Equal("Test folder", updated.Names["eng-US"])
	s.True(updated.ModificationDate.Equal(s.Clock.Now()))

	_, err = s.ContentTypes().UpdateContentType(created.ID+100, update)
	s.Equal(repository.ErrNoSuchContentType{ID: created.ID + 100}, err)
}

// TestUpdateContentTypeIdentifierClash refuses to reuse an identifier.
func (s *Suite) TestUpdateContentTypeIdentifierClash() {
	_, err := s.ContentTypes().CreateContentType(s.newCreateStruct("first"), 1)
	s.NoError(err)
	second, err := s.ContentTypes().CreateContentType(s.newCreateStruct("second"), 1)
	if !s.NoError(err) {
		return
	}
	update := s.ContentTypes().NewContentTypeUpdateStruct()
	identifier := "first"
	update.Identifier = &identifier
	_, err = s.ContentTypes().UpdateContentType(second.ID, update)
	s.Equal(repository.ErrDuplicateIdentifier{Identifier: "first"}, err)
}

// TestPublishContentTypeDraft moves a draft to the defined state once.
func (s *Suite) TestPublishContentTypeDraft() {
	created, err := s.ContentTypes().CreateContentType(s.newCreateStruct("page"), 1)
	if !s.NoError(err) {
		return
	}
	s.Equal(repository.StatusDraft, created.Status)

	s.Clock.Add(time.Hour)
	published, err := s.ContentTypes().PublishContentTypeDraft(created.ID)
	if s.NoError(err) {
		s.Equal(repository.StatusDefined, published.Status)
		s.True(published.ModificationDate.Equal(s.Clock.Now()))
	}

	loaded, err := s.ContentTypes().LoadContentType(created.ID)
	if s.NoError(err) {
		s.Equal(repository.StatusDefined, loaded.Status)
	}

	_, err = s.ContentTypes().PublishContentTypeDraft(created.ID)
	s.Equal(repository.ErrAlreadyPublished, err)

	_, err = s.ContentTypes().PublishContentTypeDraft(created.ID + 100)
	s.Equal(repository.ErrNoSuchContentType{ID: created.ID + 100}, err)
}
