// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package repositorytest

import (
	"github.com/diffeo/go-cmsrest/repository"
)

// TestContentInfoLifetime creates and loads a content object.
func (s *Suite) TestContentInfoLifetime() {
	info, err := s.Contents().CreateContentInfo("Home", "eng-GB")
	if !s.NoError(err) {
		return
	}
	s.NotZero(info.ID)
	s.Equal("Home", info.Name)
	s.Equal(1, info.CurrentVersionNo)
	s.NotEmpty(info.RemoteID)

	loaded, err := s.Contents().LoadContentInfo(info.ID)
	if s.NoError(err) {
		s.Equal(info, loaded)
	}

	_, err = s.Contents().LoadContentInfo(info.ID + 100)
	s.Equal(repository.ErrNoSuchContent{ID: info.ID + 100}, err)
}

// TestRelations adds relations between content objects and lists them.
func (s *Suite) TestRelations() {
	source, err := s.Contents().CreateContentInfo("Source", "eng-GB")
	if !s.NoError(err) {
		return
	}
	dest1, err := s.Contents().CreateContentInfo("Dest 1", "eng-GB")
	if !s.NoError(err) {
		return
	}
	dest2, err := s.Contents().CreateContentInfo("Dest 2", "eng-GB")
	if !s.NoError(err) {
		return
	}

	relations, err := s.Contents().LoadRelations(source.ID, 1)
	if s.NoError(err) {
		s.Empty(relations)
	}

	create := s.Contents().NewRelationCreateStruct(dest1.ID)
	s.Equal(dest1.ID, create.DestinationContentID)
	rel1, err := s.Contents().AddRelation(source.ID, 1, create)
	if !s.NoError(err) {
		return
	}
	s.Equal(repository.RelationCommon, rel1.Type)
	s.Equal(source.ID, rel1.SourceContentInfo.ID)
	s.Equal(dest1.ID, rel1.DestinationContentInfo.ID)

	rel2, err := s.Contents().AddRelation(source.ID, 1, s.Contents().NewRelationCreateStruct(dest2.ID))
	if !s.NoError(err) {
		return
	}
	s.NotEqual(rel1.ID, rel2.ID)

	relations, err = s.Contents().LoadRelations(source.ID, 1)
	if s.NoError(err) && s.Len(relations, 2) {
		s.Equal(rel1.ID, relations[0].ID)
		s.Equal(rel2.ID, relations[1].ID)
	}
}

// TestRelationErrors covers missing content and versions.
func (s *Suite) TestRelationErrors() {
	source, err := s.Contents().CreateContentInfo("Source", "eng-GB")
	if !s.NoError(err) {
		return
	}

	_, err = s.Contents().LoadRelations(source.ID+100, 1)
	s.Equal(repository.ErrNoSuchContent{ID: source.ID + 100}, err)

	_, err = s.Contents().LoadRelations(source.ID, 2)
	s.Equal(repository.ErrNoSuchVersion{ContentID: source.ID, VersionNo: 2}, err)

	_, err = s.Contents().AddRelation(source.ID, 1, s.Contents().NewRelationCreateStruct(source.ID+100))
	s.Equal(repository.ErrNoSuchContent{ID: source.ID + 100}, err)
}
