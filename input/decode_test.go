// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package input

import (
	"strings"
	"testing"

	"github.com/diffeo/go-cmsrest/fieldtype"
	"github.com/diffeo/go-cmsrest/memory"
	"github.com/diffeo/go-cmsrest/output"
	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createJSON = `{
  "ContentTypeCreate": {
    "identifier": "blog_post",
    "mainLanguageCode": "eng-US",
    "isContainer": true,
    "names": {
      "value": [
        {"_languageCode": "eng-US", "#text": "Blog post"},
        {"_languageCode": "ger-DE", "#text": "Blogeintrag"}
      ]
    },
    "User": {"_href": "/user/users/14"},
    "FieldDefinitions": {
      "FieldDefinition": [
        {"identifier": "title", "fieldType": "ezstring", "position": 1},
        {"identifier": "body", "fieldType": "ezrichtext", "position": 2}
      ]
    },
    "remoteId": null
  }
}`

const createXML = `<?xml version="1.0" encoding="UTF-8"?>
<ContentTypeCreate>
  <identifier>blog_post</identifier>
  <mainLanguageCode>eng-US</mainLanguageCode>
  <isContainer>true</isContainer>
  <names>
    <value languageCode="eng-US">Blog post</value>
    <value languageCode="ger-DE">Blogeintrag</value>
  </names>
  <User href="/user/users/14"/>
  <FieldDefinitions>
    <FieldDefinition>
      <identifier>title</identifier>
      <fieldType>ezstring</fieldType>
      <position>1</position>
    </FieldDefinition>
    <FieldDefinition>
      <identifier>body</identifier>
      <fieldType>ezrichtext</fieldType>
      <position>2</position>
    </FieldDefinition>
  </FieldDefinitions>
</ContentTypeCreate>`

func expectedCreate() *Fragment {
	return frag(
		"identifier", "blog_post",
		"mainLanguageCode", "eng-US",
		"isContainer", "true",
		"names", frag("value", list(
			frag("_languageCode", "eng-US", "#text", "Blog post"),
			frag("_languageCode", "ger-DE", "#text", "Blogeintrag"),
		)),
		"User", frag("_href", "/user/users/14"),
		"FieldDefinitions", frag("FieldDefinition", list(
			frag("identifier", "title", "fieldType", "ezstring", "position", "1"),
			frag("identifier", "body", "fieldType", "ezrichtext", "position", "2"),
		)),
	)
}

func TestDecodeJSON(t *testing.T) {
	typeName, root, err := Decode("application/json", strings.NewReader(createJSON))
	require.NoError(t, err)
	assert.Equal(t, "ContentTypeCreate", typeName)
	assert.Equal(t, expectedCreate(), root)
}

func TestDecodeXML(t *testing.T) {
	typeName, root, err := Decode("application/xml", strings.NewReader(createXML))
	require.NoError(t, err)
	assert.Equal(t, "ContentTypeCreate", typeName)
	assert.Equal(t, expectedCreate(), root)
}

func TestDecodeMediaTypeNamesType(t *testing.T) {
	body := `{"Anything": {"identifier": "x"}}`
	typeName, _, err := Decode("application/vnd.ez.api.ContentTypeUpdate+json", strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "ContentTypeUpdate", typeName)
}

func TestDecodeXMLSingleChild(t *testing.T) {
	body := `<RelationCreate><Destination href="/content/objects/42"/></RelationCreate>`
	typeName, root, err := Decode("application/vnd.ez.api.RelationCreate+xml", strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "RelationCreate", typeName)
	assert.Equal(t, frag("Destination", frag("_href", "/content/objects/42")), root)
}

func TestDecodeXMLMixedText(t *testing.T) {
	_, root, err := DecodeXML([]byte(`<Root a="1">hello <b>x</b></Root>`))
	require.NoError(t, err)
	assert.Equal(t, frag("_a", "1", "b", "x", "#text", "hello"), root)

	_, root, err = DecodeXML([]byte(`<Root>just text</Root>`))
	require.NoError(t, err)
	assert.Equal(t, frag("#text", "just text"), root)
}

func TestDecodeErrors(t *testing.T) {
	_, _, err := Decode("text/plain", strings.NewReader("hi"))
	assert.IsType(t, restdata.ErrUnsupportedMediaType{}, err)

	_, _, err = Decode("not a media type;;", strings.NewReader("hi"))
	assert.IsType(t, restdata.ErrUnsupportedMediaType{}, err)

	bad := []struct {
		contentType string
		body        string
	}{
		{"application/json", `{"ContentTypeCreate": `},
		{"application/json", `["ContentTypeCreate"]`},
		{"application/json", `{"A": {}, "B": {}}`},
		{"application/json", `{}`},
		{"application/json", `{"A": "scalar"}`},
		{"application/xml", `<A><b></A>`},
		{"application/xml", ``},
		{"application/xml", `<A>`},
	}
	for _, test := range bad {
		_, _, err = Decode(test.contentType, strings.NewReader(test.body))
		if assert.Error(t, err, test.body) {
			assert.IsType(t, restdata.ErrBadRequest{}, err, test.body)
			assert.Equal(t, 400, restdata.StatusOf(err), test.body)
		}
	}
}

// fieldDefinitionBody renders an ezdate FieldDefinitionCreate
// document whose settings are written the way the server writes
// field type hashes.
func fieldDefinitionBody(t *testing.T, g output.Generator, settings interface{}) []byte {
	g.StartObjectElement(TypeFieldDefinitionCreate, "")
	g.StartValueElement("identifier", "published")
	g.EndValueElement("identifier")
	g.StartValueElement("fieldType", "ezdate")
	g.EndValueElement("fieldType")
	g.FieldTypeHash("fieldSettings", settings)
	g.EndObjectElement(TypeFieldDefinitionCreate)
	body, err := g.EndDocument()
	require.NoError(t, err)
	return body
}

func TestDecodeFieldTypeHash(t *testing.T) {
	repo := memory.New()
	d := DefaultDispatcher(repo.ContentTypeService(), repo.ContentService(),
		NewTools(testHrefs), fieldtype.DefaultRegistry(nil))
	parse := func(body []byte, decode func([]byte) (string, *Fragment, error)) (interface{}, error) {
		typeName, root, err := decode(body)
		require.NoError(t, err, string(body))
		return d.Parse(root, typeName)
	}

	settings := map[string]interface{}{
		"defaultType": "DEFAULT_CURRENT_DATE",
		"useSeconds":  false,
		"format":      map[string]interface{}{"short": "d/m"},
		"choices":     []interface{}{"a", "b"},
	}
	fromJSON, err := parse(fieldDefinitionBody(t, output.NewJSONGenerator(), settings), DecodeJSON)
	require.NoError(t, err)
	fromXML, err := parse(fieldDefinitionBody(t, output.NewXMLGenerator(), settings), DecodeXML)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromXML)
	if create, ok := fromXML.(*repository.FieldDefinitionCreateStruct); assert.True(t, ok) {
		assert.Equal(t, map[string]interface{}{
			"defaultType": 1,
			"useSeconds":  "false",
			"format":      map[string]interface{}{"short": "d/m"},
			"choices":     []interface{}{"a", "b"},
		}, create.FieldSettings)
	}

	bad := map[string]interface{}{"defaultType": "DEFAULT_SOMETIME"}
	_, err = parse(fieldDefinitionBody(t, output.NewXMLGenerator(), bad), DecodeXML)
	assert.IsType(t, restdata.ErrParse{}, err)
}
