// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package repositorytest provides generic functional tests for the
// repository interfaces.  A typical backend test module needs to wrap
// Suite to create its backend:
//
//	package mybackend
//
//	import (
//	        "testing"
//	        "github.com/diffeo/go-cmsrest/repository/repositorytest"
//	        "github.com/stretchr/testify/suite"
//	)
//
//	// Suite is the per-backend generic test suite.
//	type Suite struct{
//	        repositorytest.Suite
//	}
//
//	// SetupTest creates a fresh backend for every test.
//	func (s *Suite) SetupTest() {
//	        s.Suite.SetupTest()
//	        s.Repository = NewWithClock(s.Clock)
//	}
//
//	// TestRepository runs the repository generic tests.
//	func TestRepository(t *testing.T) {
//	        suite.Run(t, &Suite{})
//	}
package repositorytest

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-cmsrest/repository"
	"github.com/stretchr/testify/suite"
)

// Suite is the generic repository backend test suite.
type Suite struct {
	suite.Suite

	// Clock contains the alternate time source to be used in
	// tests.  It is reset to a fresh mock clock before every test.
	Clock *clock.Mock

	// Repository contains the top-level interface to the backend
	// under test.  It is set by importing packages.
	Repository repository.Repository
}

// SetupTest gives every test a fresh mock clock, an hour past the
// epoch so "unset" and "now" times differ.
func (s *Suite) SetupTest() {
	s.Clock = clock.NewMock()
	s.Clock.Add(time.Hour)
}

// ContentTypes returns the content type service under test.
func (s *Suite) ContentTypes() repository.ContentTypeService {
	return s.Repository.ContentTypeService()
}

// Contents returns the content service under test.
func (s *Suite) Contents() repository.ContentService {
	return s.Repository.ContentService()
}

// newCreateStruct builds a valid content type create struct with one
// field definition.
func (s *Suite) newCreateStruct(identifier string) *repository.ContentTypeCreateStruct {
	create := s.ContentTypes().NewContentTypeCreateStruct(identifier)
	create.MainLanguageCode = "eng-US"
	create.Names["eng-US"] = "Test " + identifier
	create.AddFieldDefinition(s.ContentTypes().NewFieldDefinitionCreateStruct("title", "ezstring"))
	return create
}
