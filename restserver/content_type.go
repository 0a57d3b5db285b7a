// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"fmt"

	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restdata"
)

// CreateContentType creates a new content type in the group named in
// the URL, publishing it if the request asked for that.
func (api *restAPI) CreateContentType(ctx *context, in interface{}) (interface{}, error) {
	create, valid := in.(*repository.ContentTypeCreateStruct)
	if !valid {
		return nil, errUnmarshal
	}
	service := api.Repository.ContentTypeService()
	ct, err := service.CreateContentType(create, ctx.ContentTypeGroupID)
	if err != nil {
		return nil, err
	}
	if ctx.BoolParam("publish", false) {
		ct, err = service.PublishContentTypeDraft(ct.ID)
		if err != nil {
			return nil, err
		}
	}
	return restdata.CreatedContentType{
		ContentType: restdata.RestContentType{ContentType: ct},
	}, nil
}

// LoadContentType returns the content type named in the URL.
func (api *restAPI) LoadContentType(ctx *context) (interface{}, error) {
	return restdata.RestContentType{ContentType: ctx.ContentType}, nil
}

// UpdateContentType applies a ContentTypeUpdate to the content type
// named in the URL.
func (api *restAPI) UpdateContentType(ctx *context, in interface{}) (interface{}, error) {
	update, valid := in.(*repository.ContentTypeUpdateStruct)
	if !valid {
		return nil, errUnmarshal
	}
	ct, err := api.Repository.ContentTypeService().UpdateContentType(ctx.ContentTypeID, update)
	if err != nil {
		return nil, err
	}
	return restdata.RestContentType{ContentType: ct}, nil
}

// LoadFieldDefinition returns one field definition of the content
// type named in the URL.
func (api *restAPI) LoadFieldDefinition(ctx *context) (interface{}, error) {
	fd := ctx.ContentType.FieldDefinition(ctx.FieldDefinitionID)
	if fd == nil {
		return nil, restdata.ErrNotFound{
			Err: fmt.Errorf("No such field definition %v in content type %v",
				ctx.FieldDefinitionID, ctx.ContentTypeID),
		}
	}
	return restdata.RestFieldDefinition{ContentType: ctx.ContentType, FieldDefinition: fd}, nil
}

// LoadContentTypeGroup exists so that content types can link to their
// groups; groups themselves are not served.
func (api *restAPI) LoadContentTypeGroup(ctx *context) (interface{}, error) {
	return nil, errNotImplemented{Text: "Content type groups are not available"}
}
