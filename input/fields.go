// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package input

import (
	"time"

	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restdata"
)

// fieldReader reads typed elements out of one fragment on behalf of a
// parser.  It remembers the first error; once one has occurred every
// further read is a no-op that reports false.
type fieldReader struct {
	data     *Fragment
	typeName string
	tools    *Tools
	err      error
}

func newFieldReader(data *Fragment, typeName string, tools *Tools) *fieldReader {
	return &fieldReader{data: data, typeName: typeName, tools: tools}
}

func (r *fieldReader) fail(err error) bool {
	if r.err == nil {
		r.err = err
	}
	return false
}

func (r *fieldReader) missing(key string) bool {
	return r.fail(restdata.ParseErrorf("Missing '%s' element for %s.", key, r.typeName))
}

func (r *fieldReader) invalid(key string) bool {
	return r.fail(restdata.ParseErrorf("Invalid '%s' element for %s.", key, r.typeName))
}

func (r *fieldReader) invalidCause(key string, cause error) bool {
	return r.fail(restdata.ParseErrorf("Invalid '%s' element for %s: %s", key, r.typeName, cause.Error()))
}

// required returns the string element key, failing if it is absent
// or empty.
func (r *fieldReader) required(key string) string {
	if r.err != nil {
		return ""
	}
	value, isString := r.data.String(key)
	if !isString || value == "" {
		r.missing(key)
		return ""
	}
	return value
}

// scalar fetches the string element key.  It reports false if the key
// is absent, and fails if the element is not a string.
func (r *fieldReader) scalar(key string) (string, bool) {
	if r.err != nil || !r.data.Has(key) {
		return "", false
	}
	value, isString := r.data.String(key)
	if !isString {
		return "", r.invalid(key)
	}
	return value, true
}

func (r *fieldReader) str(key string, dest *string) bool {
	value, ok := r.scalar(key)
	if ok {
		*dest = value
	}
	return ok
}

func (r *fieldReader) boolean(key string, dest *bool) bool {
	value, ok := r.scalar(key)
	if !ok {
		return false
	}
	b, err := r.tools.ParseBooleanValue(value)
	if err != nil {
		return r.invalidCause(key, err)
	}
	*dest = b
	return true
}

func (r *fieldReader) integer(key string, dest *int) bool {
	value, ok := r.scalar(key)
	if !ok {
		return false
	}
	i, err := r.tools.ParseInt(value)
	if err != nil {
		return r.invalidCause(key, err)
	}
	*dest = i
	return true
}

func (r *fieldReader) dateTime(key string, dest *time.Time) bool {
	value, ok := r.scalar(key)
	if !ok {
		return false
	}
	t, err := r.tools.ParseDateTime(value)
	if err != nil {
		return r.invalidCause(key, err)
	}
	*dest = t
	return true
}

func (r *fieldReader) sortField(key string, dest *repository.SortField) bool {
	value, ok := r.scalar(key)
	if !ok {
		return false
	}
	field, err := r.tools.ParseDefaultSortField(value)
	if err != nil {
		return r.invalidCause(key, err)
	}
	*dest = field
	return true
}

func (r *fieldReader) sortOrder(key string, dest *repository.SortOrder) bool {
	value, ok := r.scalar(key)
	if !ok {
		return false
	}
	order, err := r.tools.ParseDefaultSortOrder(value)
	if err != nil {
		return r.invalidCause(key, err)
	}
	*dest = order
	return true
}

// translations reads a translatable list such as "names".
func (r *fieldReader) translations(key string, dest *map[string]string) bool {
	if r.err != nil || !r.data.Has(key) {
		return false
	}
	list, isFragment := r.data.Fragment(key)
	if !isFragment {
		return r.invalid(key)
	}
	translations, err := r.tools.ParseTranslatableList(list)
	if err != nil {
		return r.invalid(key)
	}
	*dest = translations
	return true
}

// hrefID reads the ID out of the href of a reference element such as
// "User": {"_href": "/user/users/14"}.
func (r *fieldReader) hrefID(key, attribute string, dest *int) bool {
	if r.err != nil || !r.data.Has(key) {
		return false
	}
	ref, isFragment := r.data.Fragment(key)
	if !isFragment {
		return r.invalid(key)
	}
	href, hasHref := ref.String("_href")
	if !hasHref {
		return r.fail(restdata.ParseErrorf("Missing '_href' attribute for %s element in %s.", key, r.typeName))
	}
	id, err := r.tools.ParseHrefID(href, attribute)
	if err != nil {
		return r.invalidCause(key, err)
	}
	*dest = id
	return true
}

// hash reads a field type specific element as a plain hash.
func (r *fieldReader) hash(key string) (interface{}, bool) {
	if r.err != nil {
		return nil, false
	}
	value, present := r.data.Get(key)
	if !present {
		return nil, false
	}
	return r.tools.ParseHash(value), true
}
