// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory implementation of
// repository.Repository.  There is no persistence, nor is there any
// automatic sharing.  The entire system is behind a single global
// mutex to protect against concurrent updates.
//
// This is mostly intended as a simple reference implementation that
// can back the REST server in tests and demonstrations.  It is tuned
// for correctness, not performance or scalability.
package memory

import (
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-cmsrest/repository"
	"github.com/satori/go.uuid"
)

// DefaultGroups are the content type groups every new memory
// repository starts with.
var DefaultGroups = map[int]string{
	1: "Content",
	2: "Users",
	3: "Media",
}

// New creates a new repository that operates purely in memory.
func New() repository.Repository {
	return NewWithClock(clock.New())
}

// NewWithClock creates a new in-memory repository using an explicit
// time source.  Most application code should call New(); this entry
// point is intended for tests that need to inject a mock time source.
func NewWithClock(clk clock.Clock) repository.Repository {
	repo := &memRepository{
		clock:        clk,
		groups:       make(map[int]string),
		contentTypes: make(map[int]*repository.ContentType),
		contents:     make(map[int]*repository.ContentInfo),
		relations:    make(map[versionKey][]*repository.Relation),
	}
	for id, name := range DefaultGroups {
		repo.groups[id] = name
	}
	return repo
}

// versionKey identifies one version of one content object.
type versionKey struct {
	contentID int
	versionNo int
}

type memRepository struct {
	sem   sync.Mutex
	clock clock.Clock

	groups       map[int]string
	contentTypes map[int]*repository.ContentType
	contents     map[int]*repository.ContentInfo
	relations    map[versionKey][]*repository.Relation

	lastContentTypeID     int
	lastFieldDefinitionID int
	lastContentID         int
	lastRelationID        int
}

func (r *memRepository) ContentTypeService() repository.ContentTypeService {
	return (*contentTypeService)(r)
}

func (r *memRepository) ContentService() repository.ContentService {
	return (*contentService)(r)
}

// do runs f under the global lock.
func (r *memRepository) do(f func() error) error {
	r.sem.Lock()
	defer r.sem.Unlock()
	return f()
}

// newRemoteID generates a fresh remote ID for objects created without
// one.
func newRemoteID() string {
	return uuid.NewV4().String()
}

// copyTranslations returns a copy of a language-keyed map, so stored
// objects never alias caller-owned maps.
func copyTranslations(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
