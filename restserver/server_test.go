// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-cmsrest/input"
	"github.com/diffeo/go-cmsrest/memory"
	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

// ServerSuite drives the REST API over HTTP against an in-memory
// repository.
type ServerSuite struct {
	suite.Suite
	Clock      *clock.Mock
	Repository repository.Repository
	Server     *httptest.Server
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	s.Clock = clock.NewMock()
	s.Repository = memory.NewWithClock(s.Clock)
	s.Server = httptest.NewServer(NewRouter(s.Repository, Options{Logger: quietLogger()}))
}

func (s *ServerSuite) TearDownTest() {
	s.Server.Close()
}

// response is a decoded HTTP response.
type response struct {
	Status   int
	Header   http.Header
	TypeName string
	Root     *input.Fragment
}

func (r *response) field(key string) interface{} {
	value, _ := r.Root.Get(key)
	return value
}

func (s *ServerSuite) request(method, path, contentType, accept, body string) *response {
	req, err := http.NewRequest(method, s.Server.URL+path, strings.NewReader(body))
	s.Require().NoError(err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	raw, err := ioutil.ReadAll(resp.Body)
	s.Require().NoError(err)

	result := &response{Status: resp.StatusCode, Header: resp.Header}
	if len(raw) > 0 {
		result.TypeName, result.Root, err = input.Decode(resp.Header.Get("Content-Type"), bytes.NewReader(raw))
		s.Require().NoError(err, string(raw))
	}
	return result
}

func (s *ServerSuite) get(path string) *response {
	return s.request(http.MethodGet, path, "", "", "")
}

// checkError verifies that r is an ErrorMessage document.
func (s *ServerSuite) checkError(r *response, status int, description string) {
	s.Equal(status, r.Status)
	s.Equal("ErrorMessage", r.TypeName)
	s.Equal(http.StatusText(status), r.field("errorMessage"))
	if description != "" {
		s.Equal(description, r.field("errorDescription"))
	}
}

const createJSON = `{"ContentTypeCreate": {
	"identifier": "blog_post",
	"mainLanguageCode": "eng-US",
	"names": {"value": [{"_languageCode": "eng-US", "#text": "Blog post"}]},
	"User": {"_href": "/user/users/14"},
	"FieldDefinitions": {"FieldDefinition": [
		{"identifier": "title", "fieldType": "ezstring", "isRequired": "true"},
		{"identifier": "published", "fieldType": "ezdatetime",
		 "fieldSettings": {"defaultType": "DEFAULT_CURRENT_DATE", "useSeconds": "false"}}
	]}
}}`

const createJSONType = "application/vnd.ez.api.ContentTypeCreate+json"

func (s *ServerSuite) createContentType() *response {
	r := s.request(http.MethodPost, "/content/typegroups/1/types", createJSONType, "", createJSON)
	s.Require().Equal(http.StatusCreated, r.Status, "%v", r.Root)
	return r
}

func (s *ServerSuite) TestCreateContentType() {
	before := testutil.ToFloat64(parsesTotal.WithLabelValues(input.TypeContentTypeCreate, "ok"))
	r := s.createContentType()
	s.Equal(before+1, testutil.ToFloat64(parsesTotal.WithLabelValues(input.TypeContentTypeCreate, "ok")))

	s.Equal("/content/types/1", r.Header.Get("Location"))
	s.Equal("application/vnd.ez.api.ContentType+json", r.Header.Get("Content-Type"))
	s.Equal("ContentType", r.TypeName)
	s.Equal("/content/types/1", r.field("_href"))
	s.Equal("DRAFT", r.field("status"))
	s.Equal("blog_post", r.field("identifier"))
	s.Equal("eng-US", r.field("mainLanguageCode"))
	s.Equal(s.Clock.Now().Format(time.RFC3339), r.field("creationDate"))

	creator, ok := r.Root.Fragment("Creator")
	if s.True(ok) {
		href, _ := creator.String("_href")
		s.Equal("/user/users/14", href)
	}

	fields, ok := r.Root.Fragment("FieldDefinitions")
	s.Require().True(ok)
	items, ok := fields.Get("FieldDefinition")
	s.Require().True(ok)
	list, ok := items.([]interface{})
	s.Require().True(ok)
	s.Require().Len(list, 2)

	published := list[1].(*input.Fragment)
	href, _ := published.String("_href")
	s.Equal("/content/types/1/fieldDefinitions/2", href)
	settings, ok := published.Fragment("fieldSettings")
	if s.True(ok) {
		defaultType, _ := settings.String("defaultType")
		s.Equal("DEFAULT_CURRENT_DATE", defaultType)
	}

	// The stored settings use the numeric code
	ct, err := s.Repository.ContentTypeService().LoadContentType(1)
	if s.NoError(err) {
		s.Equal(map[string]interface{}{"defaultType": 1, "useSeconds": "false"},
			ct.FieldDefinitions[1].FieldSettings)
		s.Equal(14, ct.CreatorID)
	}
}

func (s *ServerSuite) TestCreateContentTypeXML() {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<ContentTypeCreate>
  <identifier>folder</identifier>
  <mainLanguageCode>eng-US</mainLanguageCode>
  <isContainer>true</isContainer>
  <names><value languageCode="eng-US">Folder</value></names>
  <User href="/user/users/14"/>
  <FieldDefinitions>
    <FieldDefinition>
      <identifier>name</identifier>
      <fieldType>ezstring</fieldType>
    </FieldDefinition>
    <FieldDefinition>
      <identifier>modified</identifier>
      <fieldType>ezdatetime</fieldType>
      <fieldSettings>
        <value key="defaultType">DEFAULT_CURRENT_DATE_ADJUSTED</value>
        <value key="useSeconds">true</value>
      </fieldSettings>
    </FieldDefinition>
  </FieldDefinitions>
</ContentTypeCreate>`
	r := s.request(http.MethodPost, "/content/typegroups/1/types",
		"application/vnd.ez.api.ContentTypeCreate+xml", "application/vnd.ez.api.ContentType+xml", body)
	s.Require().Equal(http.StatusCreated, r.Status)
	s.Equal("application/vnd.ez.api.ContentType+xml", r.Header.Get("Content-Type"))
	s.Equal("ContentType", r.TypeName)
	s.Equal("folder", r.field("identifier"))
	s.Equal("true", r.field("isContainer"))

	fields, ok := r.Root.Fragment("FieldDefinitions")
	s.Require().True(ok)
	items, _ := fields.Get("FieldDefinition")
	list, ok := items.([]interface{})
	s.Require().True(ok)
	s.Require().Len(list, 2)
	identifier, _ := list[0].(*input.Fragment).String("identifier")
	s.Equal("name", identifier)

	// Settings come back in the same <value key> form they went in
	modified := list[1].(*input.Fragment)
	settings, present := modified.Get("fieldSettings")
	s.Require().True(present)
	s.Equal(map[string]interface{}{"defaultType": "DEFAULT_CURRENT_DATE_ADJUSTED", "useSeconds": "true"},
		input.NewTools(nil).ParseHash(settings))

	ct, err := s.Repository.ContentTypeService().LoadContentType(1)
	if s.NoError(err) {
		s.Equal(map[string]interface{}{"defaultType": 2, "useSeconds": "true"},
			ct.FieldDefinitions[1].FieldSettings)
	}
}

func (s *ServerSuite) TestCreateContentTypeXMLBadSettings() {
	body := `<ContentTypeCreate>
  <identifier>event</identifier>
  <mainLanguageCode>eng-US</mainLanguageCode>
  <FieldDefinitions>
    <FieldDefinition>
      <identifier>starts</identifier>
      <fieldType>ezdatetime</fieldType>
      <fieldSettings><value key="defaultType">DEFAULT_SOMETIME</value></fieldSettings>
    </FieldDefinition>
  </FieldDefinitions>
</ContentTypeCreate>`
	r := s.request(http.MethodPost, "/content/typegroups/1/types",
		"application/vnd.ez.api.ContentTypeCreate+xml", "", body)
	s.checkError(r, http.StatusBadRequest, "Unknown 'defaultType' value 'DEFAULT_SOMETIME' for ezdatetime field settings.")
}

func (s *ServerSuite) TestCreateAndPublish() {
	r := s.request(http.MethodPost, "/content/typegroups/1/types?publish=true", createJSONType, "", createJSON)
	s.Require().Equal(http.StatusCreated, r.Status)
	s.Equal("DEFINED", r.field("status"))
}

func (s *ServerSuite) TestPublishNeedsFields() {
	body := `{"ContentTypeCreate": {
		"identifier": "empty",
		"mainLanguageCode": "eng-US",
		"FieldDefinitions": {"FieldDefinition": []}
	}}`
	r := s.request(http.MethodPost, "/content/typegroups/1/types?publish=true", createJSONType, "", body)
	s.checkError(r, http.StatusBadRequest, "ContentTypeCreate must provide at least one field definition.")

	// Without publishing an empty list is fine
	r = s.request(http.MethodPost, "/content/typegroups/1/types", createJSONType, "", body)
	s.Equal(http.StatusCreated, r.Status)
}

func (s *ServerSuite) TestPublishOnlyFromQuery() {
	body := `{"ContentTypeCreate": {
		"identifier": "sneaky",
		"mainLanguageCode": "eng-US",
		"__publish": "true",
		"FieldDefinitions": {"FieldDefinition": []}
	}}`
	r := s.request(http.MethodPost, "/content/typegroups/1/types", createJSONType, "", body)
	s.Require().Equal(http.StatusCreated, r.Status)
	s.Equal("DRAFT", r.field("status"))
}

func (s *ServerSuite) TestCreateContentTypeErrors() {
	r := s.request(http.MethodPost, "/content/typegroups/1/types", createJSONType, "",
		`{"ContentTypeCreate": {"mainLanguageCode": "eng-US"}}`)
	s.checkError(r, http.StatusBadRequest, "Missing 'identifier' element for ContentTypeCreate.")

	r = s.request(http.MethodPost, "/content/typegroups/1/types", createJSONType, "", `{"ContentTypeCreate": `)
	s.checkError(r, http.StatusBadRequest, "")

	r = s.request(http.MethodPost, "/content/typegroups/1/types", "text/plain", "", "identifier=x")
	s.checkError(r, http.StatusUnsupportedMediaType, "")

	r = s.request(http.MethodPost, "/content/typegroups/1/types",
		"application/vnd.ez.api.RelationCreate+json", "", `{"RelationCreate": {}}`)
	s.checkError(r, http.StatusUnsupportedMediaType, "")

	r = s.request(http.MethodPost, "/content/typegroups/99/types", createJSONType, "", createJSON)
	s.checkError(r, http.StatusNotFound, "")

	s.createContentType()
	r = s.request(http.MethodPost, "/content/typegroups/1/types", createJSONType, "", createJSON)
	s.checkError(r, http.StatusForbidden, "")
}

func (s *ServerSuite) TestLoadContentType() {
	s.createContentType()

	r := s.get("/content/types/1")
	s.Equal(http.StatusOK, r.Status)
	s.Equal("ContentType", r.TypeName)
	s.Equal("blog_post", r.field("identifier"))

	r = s.request(http.MethodHead, "/content/types/1", "", "", "")
	s.Equal(http.StatusOK, r.Status)
	s.Nil(r.Root)

	s.checkError(s.get("/content/types/99"), http.StatusNotFound, "No such content type 99")
	s.checkError(s.get("/content/types/blog_post"), http.StatusNotFound, "")
}

func (s *ServerSuite) TestLoadFieldDefinition() {
	s.createContentType()

	r := s.get("/content/types/1/fieldDefinitions/1")
	s.Equal(http.StatusOK, r.Status)
	s.Equal("FieldDefinition", r.TypeName)
	s.Equal("application/vnd.ez.api.FieldDefinition+json", r.Header.Get("Content-Type"))
	s.Equal("title", r.field("identifier"))
	s.Equal("true", r.field("isRequired"))

	s.checkError(s.get("/content/types/1/fieldDefinitions/9"), http.StatusNotFound, "")
}

func (s *ServerSuite) TestUpdateContentType() {
	s.createContentType()

	r := s.request(http.MethodPatch, "/content/types/1",
		"application/vnd.ez.api.ContentTypeUpdate+json", "",
		`{"ContentTypeUpdate": {"identifier": "article", "isContainer": "true"}}`)
	s.Equal(http.StatusOK, r.Status)
	s.Equal("article", r.field("identifier"))
	s.Equal("true", r.field("isContainer"))

	r = s.get("/content/types/1")
	s.Equal("article", r.field("identifier"))

	r = s.request(http.MethodPatch, "/content/types/1",
		"application/vnd.ez.api.ContentTypeUpdate+json", "",
		`{"ContentTypeUpdate": {"isContainer": "sometimes"}}`)
	s.checkError(r, http.StatusBadRequest, "")
}

func (s *ServerSuite) TestMethodNotAllowed() {
	s.createContentType()
	r := s.request(http.MethodDelete, "/content/types/1", "", "", "")
	s.checkError(r, http.StatusMethodNotAllowed, "Method DELETE not allowed")
}

func (s *ServerSuite) TestNotImplemented() {
	s.checkError(s.get("/user/users/14"), http.StatusNotImplemented, "")
	s.checkError(s.get("/content/typegroups/1"), http.StatusNotImplemented, "")
}

func (s *ServerSuite) TestNotAcceptable() {
	r := s.request(http.MethodGet, "/content/types/1", "", "image/png", "")
	s.checkError(r, http.StatusNotAcceptable, "")
	s.Equal("application/vnd.ez.api.ErrorMessage+json", r.Header.Get("Content-Type"))
}

func (s *ServerSuite) TestErrorInXML() {
	r := s.request(http.MethodGet, "/content/types/99", "", "application/xml", "")
	s.checkError(r, http.StatusNotFound, "No such content type 99")
	s.Equal("application/vnd.ez.api.ErrorMessage+xml", r.Header.Get("Content-Type"))
}

// createContent makes two content objects, 1 and 2.
func (s *ServerSuite) createContent() {
	contents := s.Repository.ContentService()
	_, err := contents.CreateContentInfo("Home", "eng-GB")
	s.Require().NoError(err)
	_, err = contents.CreateContentInfo("About", "eng-GB")
	s.Require().NoError(err)
}

func (s *ServerSuite) TestLoadContent() {
	s.createContent()
	r := s.get("/content/objects/2")
	s.Equal(http.StatusOK, r.Status)
	s.Equal("ContentInfo", r.TypeName)
	s.Equal("application/vnd.ez.api.ContentInfo+json", r.Header.Get("Content-Type"))
	s.Equal("About", r.field("Name"))
	s.Equal("2", r.field("_id"))
	s.Equal("1", r.field("currentVersionNo"))

	s.checkError(s.get("/content/objects/3"), http.StatusNotFound, "")
}

func (s *ServerSuite) TestRelations() {
	s.createContent()

	r := s.request(http.MethodPost, "/content/objects/1/versions/1/relations",
		"application/vnd.ez.api.RelationCreate+json", "",
		`{"RelationCreate": {"Destination": {"_href": "/content/objects/2"}}}`)
	s.Require().Equal(http.StatusCreated, r.Status)
	s.Equal("/content/objects/1/versions/1/relations/1", r.Header.Get("Location"))
	s.Equal("Relation", r.TypeName)
	s.Equal("COMMON", r.field("RelationType"))
	destination, ok := r.Root.Fragment("DestinationContent")
	if s.True(ok) {
		href, _ := destination.String("_href")
		s.Equal("/content/objects/2", href)
	}

	r = s.get("/content/objects/1/versions/1/relations")
	s.Equal(http.StatusOK, r.Status)
	s.Equal("RelationList", r.TypeName)
	s.Equal("/content/objects/1/versions/1/relations", r.field("_href"))
	relations, ok := r.field("Relation").([]interface{})
	if s.True(ok) {
		s.Len(relations, 1)
	}

	r = s.get("/content/objects/1/versions/1/relations/1")
	s.Equal(http.StatusOK, r.Status)
	s.Equal("/content/objects/1/versions/1/relations/1", r.field("_href"))

	s.checkError(s.get("/content/objects/1/versions/1/relations/7"), http.StatusNotFound, "")
	s.checkError(s.get("/content/objects/1/versions/4/relations"), http.StatusNotFound, "")
}

func (s *ServerSuite) TestRelationErrors() {
	s.createContent()
	path := "/content/objects/1/versions/1/relations"
	relationType := "application/vnd.ez.api.RelationCreate+json"

	r := s.request(http.MethodPost, path, relationType, "", `{"RelationCreate": {}}`)
	s.checkError(r, http.StatusBadRequest, "Missing 'Destination' element for RelationCreate.")

	r = s.request(http.MethodPost, path, relationType, "",
		`{"RelationCreate": {"Destination": {"_href": "/content/objects/9"}}}`)
	s.checkError(r, http.StatusNotFound, "")

	r = s.request(http.MethodPost, path, relationType, "",
		`{"RelationCreate": {"Destination": {"_href": "/user/users/14"}}}`)
	s.checkError(r, http.StatusBadRequest, "")
}

// TestSubrouter mounts the API under a path prefix, which every href
// must then carry.
func (s *ServerSuite) TestSubrouter() {
	router := mux.NewRouter()
	PopulateRouter(router.PathPrefix("/api/ezp/v2").Subrouter(), s.Repository, Options{Logger: quietLogger()})
	s.Server.Close()
	s.Server = httptest.NewServer(router)

	body := strings.Replace(createJSON, "/user/users/14", "/api/ezp/v2/user/users/14", 1)
	r := s.request(http.MethodPost, "/api/ezp/v2/content/typegroups/1/types", createJSONType, "", body)
	s.Require().Equal(http.StatusCreated, r.Status)
	s.Equal("/api/ezp/v2/content/types/1", r.Header.Get("Location"))
	s.Equal("/api/ezp/v2/content/types/1", r.field("_href"))

	r = s.request(http.MethodPost, "/api/ezp/v2/content/typegroups/1/types", createJSONType, "",
		strings.Replace(createJSON, "blog_post", "other", 1))
	s.checkError(r, http.StatusBadRequest, "")
}

func TestMuxRoutes(t *testing.T) {
	suite.Run(t, new(RoutesSuite))
}

// RoutesSuite checks URL generation and href parsing against the
// registered routes.
type RoutesSuite struct {
	suite.Suite
	Routes *muxRoutes
}

func (s *RoutesSuite) SetupTest() {
	router := mux.NewRouter()
	PopulateRouter(router, memory.New(), Options{Logger: quietLogger()})
	s.Routes = &muxRoutes{Router: router}
}

func (s *RoutesSuite) TestGenerate() {
	href, err := s.Routes.Generate(restdata.RouteLoadVersionRelation, map[string]interface{}{
		"contentId":     1,
		"versionNumber": 2,
		"relationId":    "3",
		"unused":        true,
	})
	if s.NoError(err) {
		s.Equal("/content/objects/1/versions/2/relations/3", href)
	}

	_, err = s.Routes.Generate("noSuchRoute", nil)
	s.Equal(restdata.ErrNotRegistered{Kind: "route", Identifier: "noSuchRoute"}, err)

	_, err = s.Routes.Generate(restdata.RouteLoadContent, map[string]interface{}{})
	s.Error(err)
}

func (s *RoutesSuite) TestParseHref() {
	value, err := s.Routes.ParseHref("/content/objects/42", "contentId")
	if s.NoError(err) {
		s.Equal("42", value)
	}

	value, err = s.Routes.ParseHref("http://cms.example.com/user/users/14", "userId")
	if s.NoError(err) {
		s.Equal("14", value)
	}

	_, err = s.Routes.ParseHref("/user/users/14", "contentId")
	s.Error(err)

	_, err = s.Routes.ParseHref("/no/such/place", "contentId")
	s.Error(err)
}
