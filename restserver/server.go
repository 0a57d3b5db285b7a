// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"

	"github.com/diffeo/go-cmsrest/fieldtype"
	"github.com/diffeo/go-cmsrest/input"
	"github.com/diffeo/go-cmsrest/output"
	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Options adjusts how the REST API renders its responses.
type Options struct {
	// Logger receives reports of internal server errors.  If nil,
	// the logrus standard logger is used.
	Logger logrus.FieldLogger

	// PrettyJSON indents JSON responses.
	PrettyJSON bool

	// XMLIndent, if set, indents XML responses by this much per
	// level.
	XMLIndent string
}

// NewRouter creates a new HTTP handler that processes all REST API
// requests.  All resources are under the URL path root, e.g.
// /content/types/1.  For more control over this setup, create a
// mux.Router and call PopulateRouter instead.
func NewRouter(repo repository.Repository, opts Options) http.Handler {
	r := mux.NewRouter()
	PopulateRouter(r, repo, opts)
	return r
}

// PopulateRouter adds the REST API routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to place the interface under a subpath:
//
//	import "github.com/diffeo/go-cmsrest/memory"
//	import "github.com/gorilla/mux"
//	r := mux.NewRouter()
//	s := r.PathPrefix("/api/ezp/v2").Subrouter()
//	PopulateRouter(s, memory.New(), Options{})
//
// Every href in a response then includes the prefix, and hrefs in
// request bodies must include it too.
func PopulateRouter(r *mux.Router, repo repository.Repository, opts Options) {
	api := newRestAPI(r, repo, opts)
	api.PopulateRouter(r)
}

// restAPI holds the persistent state for the REST API.  All of it is
// built once, in newRestAPI, and only read afterwards.
type restAPI struct {
	Repository repository.Repository
	Router     *mux.Router
	Routes     *muxRoutes
	Processors *fieldtype.Registry
	Dispatcher *input.Dispatcher
	Visitors   *output.Registry
	Logger     logrus.FieldLogger
	Options    Options
}

func newRestAPI(r *mux.Router, repo repository.Repository, opts Options) *restAPI {
	api := &restAPI{
		Repository: repo,
		Router:     r,
		Routes:     &muxRoutes{Router: r},
		Logger:     opts.Logger,
		Options:    opts,
	}
	if api.Logger == nil {
		api.Logger = logrus.StandardLogger()
	}
	api.Processors = fieldtype.DefaultRegistry(api.Routes)
	api.Dispatcher = input.DefaultDispatcher(
		repo.ContentTypeService(),
		repo.ContentService(),
		input.NewTools(api.Routes),
		api.Processors,
	)
	api.Visitors = output.DefaultRegistry(api.Processors)
	return api
}

// PopulateRouter adds all of the API URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	route := func(name string, h *resourceHandler) {
		h.API = api
		h.Name = name
		r.Path(restdata.RouteTemplates[name]).Name(name).Handler(h)
	}

	route(restdata.RouteLoadUser, &resourceHandler{
		Get: api.LoadUser,
	})
	route(restdata.RouteLoadContent, &resourceHandler{
		Get: api.LoadContent,
	})
	route(restdata.RouteLoadVersionRelations, &resourceHandler{
		Get:   api.LoadVersionRelations,
		Post:  api.CreateRelation,
		Input: []string{input.TypeRelationCreate},
	})
	route(restdata.RouteLoadVersionRelation, &resourceHandler{
		Get: api.LoadVersionRelation,
	})
	route(restdata.RouteLoadContentTypeGroup, &resourceHandler{
		Get: api.LoadContentTypeGroup,
	})
	route(restdata.RouteCreateContentType, &resourceHandler{
		Post:  api.CreateContentType,
		Input: []string{input.TypeContentTypeCreate},
	})
	route(restdata.RouteLoadContentType, &resourceHandler{
		Get:   api.LoadContentType,
		Patch: api.UpdateContentType,
		Input: []string{input.TypeContentTypeUpdate},
	})
	route(restdata.RouteLoadContentTypeFieldDefinition, &resourceHandler{
		Get: api.LoadFieldDefinition,
	})
}

// newGenerator creates a generator for a negotiated response format.
func (api *restAPI) newGenerator(format string) output.Generator {
	if format == restdata.FormatXML {
		g := output.NewXMLGenerator()
		g.Indent = api.Options.XMLIndent
		return g
	}
	g := output.NewJSONGenerator()
	g.Pretty = api.Options.PrettyJSON
	return g
}
