// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package output

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/diffeo/go-cmsrest/fieldtype"
	"github.com/diffeo/go-cmsrest/input"
	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing struct{ Name string }

type namedError struct{ thing }

func (e namedError) Error() string { return e.Name }

func constVisitor(name string) ValueObjectVisitor {
	return ValueObjectVisitorFunc(func(v *Visitor, g Generator, data interface{}) error {
		g.StartObjectElement("Visited", "")
		g.StartValueElement("by", name)
		g.EndValueElement("by")
		g.EndObjectElement("Visited")
		return nil
	})
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	valueVisitor := constVisitor("value")
	errorVisitor := constVisitor("error")
	r.Register(thing{}, valueVisitor)
	r.RegisterInterface((*error)(nil), errorVisitor)

	got, err := r.Lookup(thing{Name: "x"})
	if assert.NoError(t, err) {
		assert.Equal(t, valueVisitor, got)
	}
	got, err = r.Lookup(&thing{Name: "x"})
	if assert.NoError(t, err) {
		assert.Equal(t, valueVisitor, got)
	}
	got, err = r.Lookup(namedError{})
	if assert.NoError(t, err) {
		assert.Equal(t, errorVisitor, got)
	}
	got, err = r.Lookup(errors.New("plain"))
	if assert.NoError(t, err) {
		assert.Equal(t, errorVisitor, got)
	}

	_, err = r.Lookup(17)
	if assert.Error(t, err) {
		assert.Equal(t, restdata.ErrNotRegistered{Kind: "value object visitor", Identifier: "int"}, err)
	}
	_, err = r.Lookup(nil)
	assert.IsType(t, restdata.ErrNotRegistered{}, err)
}

func TestRegistryExactTypeBeatsInterface(t *testing.T) {
	r := NewRegistry()
	specific := constVisitor("specific")
	r.RegisterInterface((*error)(nil), constVisitor("error"))
	r.Register(namedError{}, specific)
	got, err := r.Lookup(namedError{})
	if assert.NoError(t, err) {
		assert.Equal(t, specific, got)
	}
}

func TestRegistryReplaces(t *testing.T) {
	r := NewRegistry()
	second := constVisitor("second")
	r.Register(thing{}, constVisitor("first"))
	r.Register(thing{}, second)
	got, err := r.Lookup(thing{})
	if assert.NoError(t, err) {
		assert.Equal(t, second, got)
	}
}

func TestVisitorHeadersAndStatus(t *testing.T) {
	r := NewRegistry()
	r.Register(thing{}, ValueObjectVisitorFunc(func(v *Visitor, g Generator, data interface{}) error {
		g.StartObjectElement("Thing", "")
		v.SetHeader("Content-Type", g.MediaType("Thing"))
		v.SetHeader("Content-Type", "ignored")
		v.SetStatus(http.StatusAccepted)
		v.SetStatus(http.StatusTeapot)
		g.EndObjectElement("Thing")
		return nil
	}))
	v := NewVisitor(r, NewJSONGenerator(), nil)
	resp, err := v.Visit(thing{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.Status)
	assert.Equal(t, "application/vnd.ez.api.Thing+json", resp.Header.Get("Content-Type"))
	assert.Equal(t, v.Generator(), v.generator)
}

func TestVisitorDefaultStatus(t *testing.T) {
	r := NewRegistry()
	r.Register(thing{}, constVisitor("x"))
	resp, err := NewVisitor(r, NewXMLGenerator(), nil).Visit(thing{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestVisitorUnregistered(t *testing.T) {
	_, err := NewVisitor(NewRegistry(), NewJSONGenerator(), nil).Visit(thing{})
	assert.IsType(t, restdata.ErrNotRegistered{}, err)
}

func TestRelationTypeString(t *testing.T) {
	tests := []struct {
		relationType repository.RelationType
		want         string
	}{
		{repository.RelationCommon, "COMMON"},
		{repository.RelationCommon | repository.RelationLink, "COMMON,LINK"},
		{repository.RelationLink | repository.RelationCommon, "COMMON,LINK"},
		{repository.RelationField, "ATTRIBUTE"},
		{repository.RelationAsset | repository.RelationEmbed, "EMBED,ASSET"},
		{repository.RelationCommon | repository.RelationEmbed | repository.RelationLink |
			repository.RelationField | repository.RelationAsset, "COMMON,EMBED,LINK,ATTRIBUTE,ASSET"},
	}
	for _, test := range tests {
		got, err := RelationTypeString(test.relationType)
		if assert.NoError(t, err, test.want) {
			assert.Equal(t, test.want, got)
		}
	}

	_, err := RelationTypeString(0)
	assert.EqualError(t, err, "Unknown relation type 0.")
	_, err = RelationTypeString(64)
	assert.Error(t, err)
}

// field returns one value of a fragment, or nil.
func field(f *input.Fragment, key string) interface{} {
	value, _ := f.Get(key)
	return value
}

func testRouter(t *testing.T) *TemplateRouter {
	router, err := DefaultTemplateRouter("")
	require.NoError(t, err)
	return router
}

type rendered struct {
	resp *Response
	name string
	root *input.Fragment
	mt   func(string) string
}

// render visits data in both formats and decodes the results.
func render(t *testing.T, processors *fieldtype.Registry, data interface{}) map[string]rendered {
	result := make(map[string]rendered)
	registry := DefaultRegistry(processors)
	for format, g := range generators() {
		resp, err := NewVisitor(registry, g, testRouter(t)).Visit(data)
		require.NoError(t, err, format)
		name, root := decode(t, g, resp.Body)
		result[format] = rendered{resp: resp, name: name, root: root, mt: g.MediaType}
	}
	return result
}

func testRelation() *repository.Relation {
	return &repository.Relation{
		ID:                     3,
		Type:                   repository.RelationCommon | repository.RelationLink,
		SourceContentInfo:      &repository.ContentInfo{ID: 10},
		DestinationContentInfo: &repository.ContentInfo{ID: 42},
	}
}

func expectedRelation(mt func(string) string, href, destination string) *input.Fragment {
	return frag(
		"_media-type", mt("Relation"),
		"_href", href,
		"SourceContent", frag("_media-type", mt("ContentInfo"), "_href", "/content/objects/10"),
		"DestinationContent", frag("_media-type", mt("ContentInfo"), "_href", destination),
		"RelationType", "COMMON,LINK",
	)
}

func TestRelationVisitor(t *testing.T) {
	rest := restdata.RestRelation{Relation: testRelation(), ContentID: 10, VersionNo: 2}
	for format, r := range render(t, nil, rest) {
		assert.Equal(t, http.StatusOK, r.resp.Status, format)
		assert.Equal(t, r.mt("Relation"), r.resp.Header.Get("Content-Type"), format)
		assert.Equal(t, "Relation", r.name, format)
		assert.Equal(t, expectedRelation(r.mt, "/content/objects/10/versions/2/relations/3", "/content/objects/42"),
			r.root, format)
	}
}

func TestRelationVisitorFieldRelation(t *testing.T) {
	relation := testRelation()
	relation.Type = repository.RelationField
	relation.SourceFieldDefinitionIdentifier = "related"
	rest := &restdata.RestRelation{Relation: relation, ContentID: 10, VersionNo: 2}
	for format, r := range render(t, nil, rest) {
		assert.Equal(t, "related", field(r.root, "SourceFieldDefinitionIdentifier"), format)
		assert.Equal(t, "ATTRIBUTE", field(r.root, "RelationType"), format)
	}
}

func TestRelationVisitorBadType(t *testing.T) {
	relation := testRelation()
	relation.Type = 0
	rest := restdata.RestRelation{Relation: relation, ContentID: 10, VersionNo: 2}
	_, err := NewVisitor(DefaultRegistry(nil), NewJSONGenerator(), testRouter(t)).Visit(rest)
	assert.EqualError(t, err, "Unknown relation type 0.")
}

func TestRelationListVisitor(t *testing.T) {
	second := testRelation()
	second.ID = 4
	second.DestinationContentInfo = &repository.ContentInfo{ID: 43}
	list := restdata.RelationList{
		Relations: []*repository.Relation{testRelation(), second},
		ContentID: 10,
		VersionNo: 2,
	}
	for format, r := range render(t, nil, list) {
		assert.Equal(t, r.mt("RelationList"), r.resp.Header.Get("Content-Type"), format)
		assert.Equal(t, "Relations", r.name, format)
		assert.Equal(t, frag(
			"_media-type", r.mt("RelationList"),
			"_href", "/content/objects/10/versions/2/relations",
			"Relation", []interface{}{
				expectedRelation(r.mt, "/content/objects/10/versions/2/relations/3", "/content/objects/42"),
				expectedRelation(r.mt, "/content/objects/10/versions/2/relations/4", "/content/objects/43"),
			},
		), r.root, format)
	}
}

func TestContentInfoVisitor(t *testing.T) {
	info := &repository.ContentInfo{
		ID:               42,
		Name:             "Home",
		RemoteID:         "abc123",
		MainLanguageCode: "eng-GB",
		CurrentVersionNo: 3,
	}
	for format, r := range render(t, nil, info) {
		assert.Equal(t, "Content", r.name, format)
		assert.Equal(t, frag(
			"_media-type", r.mt("ContentInfo"),
			"_href", "/content/objects/42",
			"_remoteId", "abc123",
			"_id", "42",
			"Name", "Home",
			"mainLanguageCode", "eng-GB",
			"currentVersionNo", "3",
		), r.root, format)
	}
}

func testContentType() *repository.ContentType {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &repository.ContentType{
		ID:               7,
		Status:           repository.StatusDraft,
		Identifier:       "blog_post",
		MainLanguageCode: "eng-US",
		DefaultSortField: repository.SortFieldPath,
		DefaultSortOrder: repository.SortOrderAsc,
		Names:            map[string]string{"eng-US": "Blog post", "ger-DE": "Blogeintrag"},
		Descriptions:     map[string]string{"eng-US": "A post"},
		CreationDate:     created,
		ModificationDate: created,
		CreatorID:        14,
		ModifierID:       14,
		GroupIDs:         []int{1, 2},
		FieldDefinitions: []*repository.FieldDefinition{
			{
				ID:                  30,
				Identifier:          "title",
				FieldTypeIdentifier: "ezstring",
				Names:               map[string]string{"eng-US": "Title"},
				Position:            1,
				IsRequired:          true,
			},
			{
				ID:                  31,
				Identifier:          "published",
				FieldTypeIdentifier: "ezdatetime",
				Names:               map[string]string{"eng-US": "Published"},
				Position:            2,
				FieldSettings:       map[string]interface{}{"defaultType": 1, "useSeconds": false},
			},
		},
	}
}

func TestContentTypeVisitor(t *testing.T) {
	processors := fieldtype.DefaultRegistry(testRouter(t))
	rest := restdata.RestContentType{ContentType: testContentType()}
	for format, r := range render(t, processors, rest) {
		assert.Equal(t, http.StatusOK, r.resp.Status, format)
		assert.Equal(t, r.mt("ContentType"), r.resp.Header.Get("Content-Type"), format)
		assert.Equal(t, "ContentType", r.name, format)

		root := r.root
		assert.Equal(t, r.mt("ContentType"), field(root, "_media-type"), format)
		assert.Equal(t, "/content/types/7", field(root, "_href"), format)
		assert.Equal(t, "7", field(root, "id"), format)
		assert.Equal(t, "DRAFT", field(root, "status"), format)
		assert.Equal(t, "blog_post", field(root, "identifier"), format)
		assert.Equal(t, "2026-03-01T12:00:00Z", field(root, "creationDate"), format)
		assert.Equal(t, "false", field(root, "isContainer"), format)
		assert.Equal(t, "PATH", field(root, "defaultSortField"), format)
		assert.Equal(t, "ASC", field(root, "defaultSortOrder"), format)
		assert.Equal(t, frag("value", list(
			frag("_languageCode", "eng-US", "#text", "Blog post"),
			frag("_languageCode", "ger-DE", "#text", "Blogeintrag"),
		)), field(root, "names"), format)
		assert.Equal(t, frag("_media-type", r.mt("User"), "_href", "/user/users/14"),
			field(root, "Creator"), format)

		assert.Equal(t, frag(
			"_media-type", r.mt("ContentTypeGroupRefList"),
			"ContentTypeGroupRef", list(
				frag("_media-type", r.mt("ContentTypeGroup"), "_href", "/content/typegroups/1"),
				frag("_media-type", r.mt("ContentTypeGroup"), "_href", "/content/typegroups/2"),
			),
		), field(root, "Groups"), format)

		fields, ok := field(root, "FieldDefinitions").(*input.Fragment)
		require.True(t, ok, format)
		assert.Equal(t, r.mt("FieldDefinitionList"), field(fields, "_media-type"), format)
		items, ok := field(fields, "FieldDefinition").([]interface{})
		require.True(t, ok, format)
		require.Len(t, items, 2, format)

		title := items[0].(*input.Fragment)
		assert.Equal(t, "/content/types/7/fieldDefinitions/30", field(title, "_href"), format)
		assert.Equal(t, "title", field(title, "identifier"), format)
		assert.Equal(t, "ezstring", field(title, "fieldType"), format)
		assert.Equal(t, "true", field(title, "isRequired"), format)
		assert.False(t, title.Has("fieldSettings"), format)

		published := items[1].(*input.Fragment)
		assert.Equal(t, "ezdatetime", field(published, "fieldType"), format)
		settings, ok := field(published, "fieldSettings").(*input.Fragment)
		require.True(t, ok, format)
		if format == "xml" {
			assert.Equal(t, list(
				frag("_key", "defaultType", "#text", "DEFAULT_CURRENT_DATE"),
				frag("_key", "useSeconds", "#text", "false"),
			), field(settings, "value"))
		} else {
			assert.Equal(t, "DEFAULT_CURRENT_DATE", field(settings, "defaultType"))
			assert.Equal(t, "false", field(settings, "useSeconds"))
		}
	}

	// Rendering must not rewrite the stored settings.
	assert.Equal(t, map[string]interface{}{"defaultType": 1, "useSeconds": false},
		rest.ContentType.FieldDefinitions[1].FieldSettings)
}

func TestCreatedContentTypeVisitor(t *testing.T) {
	created := restdata.CreatedContentType{
		ContentType: restdata.RestContentType{ContentType: testContentType()},
	}
	for format, r := range render(t, nil, created) {
		assert.Equal(t, http.StatusCreated, r.resp.Status, format)
		assert.Equal(t, "/content/types/7", r.resp.Header.Get("Location"), format)
		assert.Equal(t, r.mt("ContentType"), r.resp.Header.Get("Content-Type"), format)
		assert.Equal(t, "ContentType", r.name, format)
	}
}

func TestCreatedRelationVisitor(t *testing.T) {
	created := &restdata.CreatedRelation{
		Relation: restdata.RestRelation{Relation: testRelation(), ContentID: 10, VersionNo: 2},
	}
	for format, r := range render(t, nil, created) {
		assert.Equal(t, http.StatusCreated, r.resp.Status, format)
		assert.Equal(t, "/content/objects/10/versions/2/relations/3", r.resp.Header.Get("Location"), format)
		assert.Equal(t, expectedRelation(r.mt, "/content/objects/10/versions/2/relations/3", "/content/objects/42"),
			r.root, format)
	}
}

func TestErrorVisitor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{restdata.ParseErrorf("Missing 'identifier' element for ContentTypeCreate."), http.StatusBadRequest},
		{repository.ErrNoSuchContentType{ID: 99}, http.StatusNotFound},
		{errors.New("mystery"), http.StatusInternalServerError},
	}
	for _, test := range tests {
		for format, r := range render(t, nil, test.err) {
			assert.Equal(t, test.status, r.resp.Status, format)
			assert.Equal(t, r.mt("ErrorMessage"), r.resp.Header.Get("Content-Type"), format)
			assert.Equal(t, "ErrorMessage", r.name, format)
			assert.Equal(t, frag(
				"_media-type", r.mt("ErrorMessage"),
				"errorCode", fmt.Sprint(test.status),
				"errorMessage", http.StatusText(test.status),
				"errorDescription", test.err.Error(),
			), r.root, format)
		}
	}
}
