// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/gorilla/mux"
)

// errUnmarshal is returned if the put/post contract is violated and
// a handler function is passed the wrong type.
var errUnmarshal = restdata.ErrBadRequest{
	Err: fmt.Errorf("Invalid input format"),
}

// context holds all of the information and objects that can be extracted
// from URL parameters.  Numeric URL parameters that are absent are
// zero.
type context struct {
	UserID             int
	ContentID          int
	VersionNo          int
	RelationID         int
	ContentTypeGroupID int
	ContentTypeID      int
	FieldDefinitionID  int

	// ContentInfo is loaded if the URL names a content object.
	ContentInfo *repository.ContentInfo

	// ContentType is loaded if the URL names a content type.
	ContentType *repository.ContentType

	QueryParams url.Values
}

func (api *restAPI) Context(req *http.Request) (ctx *context, err error) {
	ctx = &context{}
	ctx.QueryParams = req.URL.Query()
	vars := mux.Vars(req)

	params := []struct {
		name string
		dest *int
	}{
		{"userId", &ctx.UserID},
		{"contentId", &ctx.ContentID},
		{"versionNumber", &ctx.VersionNo},
		{"relationId", &ctx.RelationID},
		{"contentTypeGroupId", &ctx.ContentTypeGroupID},
		{"contentTypeId", &ctx.ContentTypeID},
		{"fieldDefinitionId", &ctx.FieldDefinitionID},
	}
	for _, param := range params {
		value, present := vars[param.name]
		if !present {
			continue
		}
		*param.dest, err = strconv.Atoi(value)
		if err != nil {
			// Every ID is numeric, so this names nothing
			return nil, restdata.ErrNotFound{
				Err: fmt.Errorf("Invalid %s %q", param.name, value),
			}
		}
	}

	if _, present := vars["contentId"]; present {
		ctx.ContentInfo, err = api.Repository.ContentService().LoadContentInfo(ctx.ContentID)
		if err != nil {
			return nil, err
		}
	}

	if _, present := vars["contentTypeId"]; present {
		ctx.ContentType, err = api.Repository.ContentTypeService().LoadContentType(ctx.ContentTypeID)
		if err != nil {
			return nil, err
		}
	}

	return ctx, nil
}

// BoolParam looks at ctx.QueryParams for a parameter named name.  If
// it has a normally-truthy value (1, on, false, no, ...) then return
// that value.  Otherwise (empty string, foo, ...) return def.
func (ctx *context) BoolParam(name string, def bool) bool {
	switch strings.ToLower(ctx.QueryParams.Get(name)) {
	case "0", "f", "n", "false", "off", "no":
		return false
	case "1", "t", "y", "true", "on", "yes":
		return true
	default:
		return def
	}
}
