// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package fieldtype

import (
	"github.com/diffeo/go-cmsrest/restdata"
)

// Registry maps field type identifiers to their processors.
type Registry struct {
	processors map[string]Processor
}

// NewRegistry creates a registry pre-populated with processors.
func NewRegistry(processors map[string]Processor) *Registry {
	r := &Registry{processors: make(map[string]Processor, len(processors))}
	for identifier, processor := range processors {
		r.Register(identifier, processor)
	}
	return r
}

// Register stores processor under identifier, replacing any processor
// already registered for it.
func (r *Registry) Register(identifier string, processor Processor) {
	if r.processors == nil {
		r.processors = make(map[string]Processor)
	}
	r.processors[identifier] = processor
}

// Has returns whether a processor is registered for identifier.
func (r *Registry) Has(identifier string) bool {
	_, present := r.processors[identifier]
	return present
}

// Get returns the processor for identifier.  If there is none, returns
// restdata.ErrNotRegistered carrying the identifier.
func (r *Registry) Get(identifier string) (Processor, error) {
	processor, present := r.processors[identifier]
	if !present {
		return nil, restdata.ErrNotRegistered{
			Kind:       "field type processor",
			Identifier: identifier,
		}
	}
	return processor, nil
}

// Lookup returns the processor for identifier, or a BaseProcessor if
// there is none.  Most field types need no processing, so callers
// converting hashes use this rather than Get.
func (r *Registry) Lookup(identifier string) Processor {
	if processor, present := r.processors[identifier]; present {
		return processor
	}
	return BaseProcessor{}
}

// DefaultRegistry returns a registry holding the processors for the
// standard field types.  urls builds the hrefs that relation
// processors add to outgoing values.
func DefaultRegistry(urls restdata.RouteGenerator) *Registry {
	return NewRegistry(map[string]Processor{
		"ezdatetime":           NewDateAndTimeProcessor(),
		"ezdate":               NewDateProcessor(),
		"eztime":               NewTimeProcessor(),
		"ezobjectrelation":     NewRelationProcessor(urls),
		"ezobjectrelationlist": NewRelationListProcessor(urls),
	})
}
