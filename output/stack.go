// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package output

import "fmt"

type elementKind int

const (
	kindDocument elementKind = iota
	kindObject
	kindHash
	kindAttribute
	kindValue
	kindList
)

var elementKindNames = map[elementKind]string{
	kindDocument:  "document",
	kindObject:    "object element",
	kindHash:      "hash element",
	kindAttribute: "attribute",
	kindValue:     "value element",
	kindList:      "list",
}

func (k elementKind) String() string {
	return elementKindNames[k]
}

// ErrNesting is the panic value of a Generator whose calls do not
// nest properly.
type ErrNesting struct {
	// Expected describes the innermost open element.
	Expected string

	// Got describes the element the caller tried to close or
	// the operation it attempted.
	Got string
}

func (e ErrNesting) Error() string {
	return fmt.Sprintf("generator nesting error: expected to close %s, got %s", e.Expected, e.Got)
}

// frame is one open element.  node is the format-specific value that
// children attach to.
type frame struct {
	kind elementKind
	name string
	node interface{}
}

func (f frame) String() string {
	if f.kind == kindDocument {
		return f.kind.String()
	}
	return fmt.Sprintf("%s %q", f.kind, f.name)
}

type elementStack struct {
	frames []frame
}

func (s *elementStack) reset(root interface{}) {
	s.frames = []frame{{kind: kindDocument, node: root}}
}

func (s *elementStack) top() frame {
	if len(s.frames) == 0 {
		panic(ErrNesting{Expected: "an open document", Got: "an element outside StartDocument"})
	}
	return s.frames[len(s.frames)-1]
}

// requireContainer panics unless the innermost element can hold
// children.
func (s *elementStack) requireContainer(kind elementKind, name string) frame {
	top := s.top()
	if top.kind == kindAttribute || top.kind == kindValue {
		panic(ErrNesting{Expected: top.String(), Got: fmt.Sprintf("start of %s %q", kind, name)})
	}
	return top
}

func (s *elementStack) push(kind elementKind, name string, node interface{}) {
	s.frames = append(s.frames, frame{kind: kind, name: name, node: node})
}

func (s *elementStack) pop(kind elementKind, name string) frame {
	top := s.top()
	closing := frame{kind: kind, name: name}
	if top.kind != kind || top.name != name || kind == kindDocument {
		panic(ErrNesting{Expected: top.String(), Got: closing.String()})
	}
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

// finish panics unless only the document itself is open.
func (s *elementStack) finish() {
	top := s.top()
	if top.kind != kindDocument {
		panic(ErrNesting{Expected: top.String(), Got: "end of document"})
	}
}
