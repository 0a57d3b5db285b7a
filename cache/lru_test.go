// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package cache

import (
	"testing"

	"github.com/diffeo/go-cmsrest/repository"
	"github.com/stretchr/testify/assert"
)

func Make(id int) (*repository.ContentType, error) {
	return &repository.ContentType{ID: id}, nil
}

func DoNotMake(id int) (*repository.ContentType, error) {
	return nil, assert.AnError
}

type LRUAssertions struct {
	*assert.Assertions
	LRU *lru
}

func NewLRUAssertions(t assert.TestingT, size int) *LRUAssertions {
	return &LRUAssertions{
		assert.New(t),
		newLRU(size),
	}
}

// PutID adds an item with id to the cache.
func (a *LRUAssertions) PutID(id int) {
	a.LRU.Put(&repository.ContentType{ID: id})
}

// GetID fetches an item with id from the cache; if not present, it is
// added.
func (a *LRUAssertions) GetID(id int) {
	item, err := a.LRU.Get(id, Make)
	if a.NoError(err) && a.NotNil(item) {
		a.Equal(id, item.ID)
	}
}

// GetPresent fetches an item with id from the cache; if not present,
// it should produce an assertion error.
func (a *LRUAssertions) GetPresent(id int) {
	item, err := a.LRU.Get(id, DoNotMake)
	if a.NoError(err) && a.NotNil(item) {
		a.Equal(id, item.ID)
	}
}

// GetError tries to fetch an item from the cache, but it should not
// exist, and the resulting error will be caught.
func (a *LRUAssertions) GetError(id int) {
	_, err := a.LRU.Get(id, DoNotMake)
	a.Error(err)
}

// LRUHas asserts that an item with id is in the cache.
func (a *LRUAssertions) LRUHas(id int) {
	item := a.LRU.Peek(id)
	if a.NotNil(item) {
		a.Equal(id, item.ID)
	}
}

// LRUDoesNotHave asserts that no item with id is in the cache.
func (a *LRUAssertions) LRUDoesNotHave(id int) {
	a.Nil(a.LRU.Peek(id))
}

// TestLRUSimple tests minimal object presence.
func TestLRUSimple(t *testing.T) {
	a := NewLRUAssertions(t, 2)
	a.PutID(1)

	a.LRUHas(1)
	a.LRUDoesNotHave(2)
	a.Equal(1, a.LRU.Len())
}

// TestLRUAutoInsert tests lru.Get() adding absent items.
func TestLRUAutoInsert(t *testing.T) {
	a := NewLRUAssertions(t, 2)

	a.GetID(1)
	a.GetID(2)
	a.LRUHas(1)
	a.LRUHas(2)

	// A third item evicts the oldest
	a.GetID(3)
	a.LRUDoesNotHave(1)
	a.LRUHas(2)
	a.LRUHas(3)
	a.Equal(2, a.LRU.Len())
}

func TestLRUInsertError(t *testing.T) {
	a := NewLRUAssertions(t, 2)

	a.GetID(1)
	a.GetID(2)

	// A failed fetch adds nothing, so nothing is evicted
	a.GetError(3)
	a.LRUHas(1)
	a.LRUHas(2)
	a.LRUDoesNotHave(3)

	// Present items never call the fetch function
	a.GetPresent(1)
	a.GetPresent(2)
}

// TestLRUOrder tests that getting an item causes it to not get evicted.
func TestLRUOrder(t *testing.T) {
	a := NewLRUAssertions(t, 2)

	a.GetID(1)
	a.GetID(2)

	// Another get makes 1 the most recently used
	a.GetID(1)

	a.GetID(3)
	a.LRUHas(1)
	a.LRUDoesNotHave(2)
	a.LRUHas(3)
}

// TestLRUPutReplaces tests that Put on a cached ID swaps the value.
func TestLRUPutReplaces(t *testing.T) {
	a := NewLRUAssertions(t, 2)

	a.GetID(1)
	a.LRU.Put(&repository.ContentType{ID: 1, Identifier: "folder"})
	item := a.LRU.Peek(1)
	if a.NotNil(item) {
		a.Equal("folder", item.Identifier)
	}
	a.Equal(1, a.LRU.Len())
}

// TestLRURemoval does simple tests on the Remove call.
func TestLRURemoval(t *testing.T) {
	a := NewLRUAssertions(t, 2)

	a.GetID(1)
	a.LRUHas(1)
	a.LRU.Remove(1)
	a.LRUDoesNotHave(1)

	// Removing an absent item does nothing
	a.LRU.Remove(3)
	a.LRUDoesNotHave(3)

	// Removing a newer item leaves room, so the older one stays
	a.GetID(1)
	a.GetID(2)
	a.LRU.Remove(2)
	a.GetID(3)
	a.LRUHas(1)
	a.LRUDoesNotHave(2)
	a.LRUHas(3)
}
