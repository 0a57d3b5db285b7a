// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"fmt"

	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restdata"
)

// LoadContent returns the content object named in the URL.
func (api *restAPI) LoadContent(ctx *context) (interface{}, error) {
	return ctx.ContentInfo, nil
}

// LoadVersionRelations lists the relations of the content version
// named in the URL.
func (api *restAPI) LoadVersionRelations(ctx *context) (interface{}, error) {
	relations, err := api.Repository.ContentService().LoadRelations(ctx.ContentID, ctx.VersionNo)
	if err != nil {
		return nil, err
	}
	return restdata.RelationList{
		Relations: relations,
		ContentID: ctx.ContentID,
		VersionNo: ctx.VersionNo,
	}, nil
}

// LoadVersionRelation returns a single relation of a content version.
func (api *restAPI) LoadVersionRelation(ctx *context) (interface{}, error) {
	relations, err := api.Repository.ContentService().LoadRelations(ctx.ContentID, ctx.VersionNo)
	if err != nil {
		return nil, err
	}
	for _, relation := range relations {
		if relation.ID == ctx.RelationID {
			return restdata.RestRelation{
				Relation:  relation,
				ContentID: ctx.ContentID,
				VersionNo: ctx.VersionNo,
			}, nil
		}
	}
	return nil, restdata.ErrNotFound{
		Err: fmt.Errorf("No such relation %v in version %v of content %v",
			ctx.RelationID, ctx.VersionNo, ctx.ContentID),
	}
}

// CreateRelation adds a relation from the content version named in
// the URL.
func (api *restAPI) CreateRelation(ctx *context, in interface{}) (interface{}, error) {
	create, valid := in.(*repository.RelationCreateStruct)
	if !valid {
		return nil, errUnmarshal
	}
	relation, err := api.Repository.ContentService().AddRelation(ctx.ContentID, ctx.VersionNo, create)
	if err != nil {
		return nil, err
	}
	return restdata.CreatedRelation{
		Relation: restdata.RestRelation{
			Relation:  relation,
			ContentID: ctx.ContentID,
			VersionNo: ctx.VersionNo,
		},
	}, nil
}

// LoadUser exists so that content types can link to their creators;
// users themselves are not served.
func (api *restAPI) LoadUser(ctx *context) (interface{}, error) {
	return nil, errNotImplemented{Text: "Users are not available"}
}
