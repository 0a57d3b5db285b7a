// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"github.com/diffeo/go-cmsrest/repository"
)

type contentService memRepository

func (s *contentService) repo() *memRepository {
	return (*memRepository)(s)
}

func (s *contentService) CreateContentInfo(name, mainLanguageCode string) (info *repository.ContentInfo, err error) {
	r := s.repo()
	err = r.do(func() error {
		r.lastContentID++
		stored := &repository.ContentInfo{
			ID:               r.lastContentID,
			Name:             name,
			RemoteID:         newRemoteID(),
			MainLanguageCode: mainLanguageCode,
			CurrentVersionNo: 1,
		}
		r.contents[stored.ID] = stored
		clone := *stored
		info = &clone
		return nil
	})
	return
}

func (s *contentService) LoadContentInfo(id int) (info *repository.ContentInfo, err error) {
	r := s.repo()
	err = r.do(func() error {
		stored, present := r.contents[id]
		if !present {
			return repository.ErrNoSuchContent{ID: id}
		}
		clone := *stored
		info = &clone
		return nil
	})
	return
}

// checkVersion verifies that a content object and version exist.
// Call under the global lock.
func (r *memRepository) checkVersion(contentID, versionNo int) (*repository.ContentInfo, error) {
	info, present := r.contents[contentID]
	if !present {
		return nil, repository.ErrNoSuchContent{ID: contentID}
	}
	if versionNo < 1 || versionNo > info.CurrentVersionNo {
		return nil, repository.ErrNoSuchVersion{ContentID: contentID, VersionNo: versionNo}
	}
	return info, nil
}

func (s *contentService) LoadRelations(contentID, versionNo int) (relations []*repository.Relation, err error) {
	r := s.repo()
	err = r.do(func() error {
		if _, err := r.checkVersion(contentID, versionNo); err != nil {
			return err
		}
		stored := r.relations[versionKey{contentID, versionNo}]
		relations = make([]*repository.Relation, len(stored))
		for i, rel := range stored {
			clone := *rel
			relations[i] = &clone
		}
		return nil
	})
	return
}

func (s *contentService) NewRelationCreateStruct(destinationContentID int) *repository.RelationCreateStruct {
	return &repository.RelationCreateStruct{DestinationContentID: destinationContentID}
}

func (s *contentService) AddRelation(contentID, versionNo int, create *repository.RelationCreateStruct) (relation *repository.Relation, err error) {
	r := s.repo()
	err = r.do(func() error {
		source, err := r.checkVersion(contentID, versionNo)
		if err != nil {
			return err
		}
		destination, present := r.contents[create.DestinationContentID]
		if !present {
			return repository.ErrNoSuchContent{ID: create.DestinationContentID}
		}
		r.lastRelationID++
		sourceCopy := *source
		destinationCopy := *destination
		stored := &repository.Relation{
			ID:                     r.lastRelationID,
			Type:                   repository.RelationCommon,
			SourceContentInfo:      &sourceCopy,
			DestinationContentInfo: &destinationCopy,
		}
		key := versionKey{contentID, versionNo}
		r.relations[key] = append(r.relations[key], stored)
		clone := *stored
		relation = &clone
		return nil
	})
	return
}
