// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package cache

import (
	"github.com/diffeo/go-cmsrest/repository"
)

// contentTypeService passes the struct factories through to the
// backend and keeps the LRU current on every write.
type contentTypeService struct {
	repository.ContentTypeService
	cache *cache
}

// remember caches a content type the backend just returned, and
// returns a copy the caller may modify.
func (s *contentTypeService) remember(ct *repository.ContentType, err error) (*repository.ContentType, error) {
	if err != nil {
		return nil, err
	}
	s.cache.contentTypes.Put(ct.Clone())
	return ct, nil
}

func (s *contentTypeService) CreateContentType(create *repository.ContentTypeCreateStruct, groupID int) (*repository.ContentType, error) {
	return s.remember(s.ContentTypeService.CreateContentType(create, groupID))
}

func (s *contentTypeService) LoadContentType(id int) (*repository.ContentType, error) {
	ct, err := s.cache.contentTypes.Get(id, s.ContentTypeService.LoadContentType)
	if err != nil {
		return nil, err
	}
	return ct.Clone(), nil
}

func (s *contentTypeService) UpdateContentType(id int, update *repository.ContentTypeUpdateStruct) (*repository.ContentType, error) {
	ct, err := s.ContentTypeService.UpdateContentType(id, update)
	if err != nil {
		// The update may have failed partway through
		s.cache.contentTypes.Remove(id)
	}
	return s.remember(ct, err)
}

func (s *contentTypeService) PublishContentTypeDraft(id int) (*repository.ContentType, error) {
	ct, err := s.ContentTypeService.PublishContentTypeDraft(id)
	if err != nil {
		s.cache.contentTypes.Remove(id)
	}
	return s.remember(ct, err)
}
