// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package backend provides a standard way to construct a content
// repository based on command-line flags.
package backend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diffeo/go-cmsrest/memory"
	"github.com/diffeo/go-cmsrest/repository"
)

// Implementations lists the names Set accepts.
var Implementations = []string{"memory"}

// Backend describes user-visible parameters to store repository data.
// This implements the flag.Value interface, and so a typical use is
//
//	func main() {
//	    backend := backend.Backend{Implementation: "memory"}
//	    flag.Var(&backend, "backend", "impl:address of content storage")
//	    flag.Parse()
//	    repo, err := backend.Repository()
//	}
type Backend struct {
	// Implementation holds the name of the implementation; for
	// instance, "memory".
	Implementation string

	// Address holds some backend-specific address, such as a
	// database connect string.
	Address string
}

// Repository creates a new repository.  This generally should be only
// called once.  If the backend has in-process state, such as an
// in-memory store, calling this multiple times will create multiple
// independent repositories.
func (b *Backend) Repository() (repository.Repository, error) {
	switch b.Implementation {
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown repository backend %q", b.Implementation)
	}
}

// String renders a backend description as a string.
func (b *Backend) String() string {
	if b.Address == "" {
		return b.Implementation
	}
	return b.Implementation + ":" + b.Address
}

// Set parses a string into an existing backend description.  The
// string should be of the form "implementation:address", where
// address can be any string.  Set checks to see if the provided
// implementation is any of the known implementations, and returns an
// appropriate error if not.
//
// This is part of the flag.Value interface.  If Set returns a nil
// error then Repository() will return successfully.  Note that
// neither function attempts to validate the b.Address part of the
// string.
func (b *Backend) Set(param string) error {
	if param == "" {
		return errors.New("must specify a backend type")
	}
	parts := strings.SplitN(param, ":", 2)
	implementation, address := parts[0], ""
	if len(parts) == 2 {
		address = parts[1]
	}
	for _, known := range Implementations {
		if implementation == known {
			b.Implementation = implementation
			b.Address = address
			return nil
		}
	}
	return fmt.Errorf("unknown repository backend %q", implementation)
}
