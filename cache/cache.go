// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package cache provides ID-based caching of content types.  The
// cache wraps some other repository.  Content object and relation
// calls pass straight through; LoadContentType returns a cached copy
// of the content type if it has one.
//
// Every REST request naming a content type loads it, so a busy server
// spends most of its repository traffic there.
//
// # Caveats
//
// The cache only sees changes made through it.  If another process
// updates a content type in a shared backend, this cache will keep
// serving the old version until it is evicted.  Run one caching
// server per backend, or none.
package cache

import (
	"github.com/diffeo/go-cmsrest/repository"
)

// DefaultSize is the number of content types New keeps.
const DefaultSize = 256

type cache struct {
	backend      repository.Repository
	contentTypes *lru
}

// New creates a new caching repository, wrapping some other
// repository.
func New(backend repository.Repository) repository.Repository {
	return NewWithSize(backend, DefaultSize)
}

// NewWithSize creates a new caching repository that holds at most
// size content types.
func NewWithSize(backend repository.Repository, size int) repository.Repository {
	return &cache{
		backend:      backend,
		contentTypes: newLRU(size),
	}
}

func (c *cache) ContentTypeService() repository.ContentTypeService {
	return &contentTypeService{
		ContentTypeService: c.backend.ContentTypeService(),
		cache:              c,
	}
}

func (c *cache) ContentService() repository.ContentService {
	return c.backend.ContentService()
}
