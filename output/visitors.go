// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package output

import (
	"encoding"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/diffeo/go-cmsrest/fieldtype"
	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restdata"
)

// DefaultRegistry returns a registry holding a visitor for every value
// the REST API renders.  processors post-process field type specific
// hashes in field definitions; it may be nil.
func DefaultRegistry(processors *fieldtype.Registry) *Registry {
	r := NewRegistry()
	r.Register(restdata.RestContentType{}, ValueObjectVisitorFunc(visitRestContentType))
	r.Register(restdata.RestFieldDefinition{}, &FieldDefinitionVisitor{Processors: processors})
	r.Register(restdata.RestRelation{}, ValueObjectVisitorFunc(visitRestRelation))
	r.Register(restdata.RelationList{}, ValueObjectVisitorFunc(visitRelationList))
	r.Register(repository.ContentInfo{}, ValueObjectVisitorFunc(visitContentInfo))
	r.Register(restdata.CreatedContentType{}, ValueObjectVisitorFunc(visitCreatedContentType))
	r.Register(restdata.CreatedRelation{}, ValueObjectVisitorFunc(visitCreatedRelation))
	r.RegisterInterface((*error)(nil), ValueObjectVisitorFunc(visitError))
	return r
}

// deref returns the value a non-nil pointer points to, so visitors
// registered for T can take either T or *T.
func deref(data interface{}) interface{} {
	value := reflect.ValueOf(data)
	if value.Kind() == reflect.Ptr && !value.IsNil() {
		return value.Elem().Interface()
	}
	return data
}

func errUnexpected(data interface{}, want string) error {
	return fmt.Errorf("visitor for %s got a %T", want, data)
}

// RelationTypeString renders a relation type bit set as a
// comma-separated list of flag names.  It fails if no known flag is
// set.
func RelationTypeString(relationType repository.RelationType) (string, error) {
	flags := []struct {
		bit  repository.RelationType
		name string
	}{
		{repository.RelationCommon, "COMMON"},
		{repository.RelationEmbed, "EMBED"},
		{repository.RelationLink, "LINK"},
		{repository.RelationField, "ATTRIBUTE"},
		{repository.RelationAsset, "ASSET"},
	}
	var names []string
	for _, flag := range flags {
		if relationType&flag.bit != 0 {
			names = append(names, flag.name)
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("Unknown relation type %d.", int(relationType))
	}
	return strings.Join(names, ","), nil
}

// hrefAttribute emits an href attribute for a named route.
func hrefAttribute(v *Visitor, g Generator, route string, params map[string]interface{}) error {
	href, err := v.Href(route, params)
	if err != nil {
		return err
	}
	g.StartAttribute("href", href)
	g.EndAttribute("href")
	return nil
}

// reference emits an object element holding only an href.
func reference(v *Visitor, g Generator, name, mediaTypeName, route string, params map[string]interface{}) error {
	g.StartObjectElement(name, mediaTypeName)
	if err := hrefAttribute(v, g, route, params); err != nil {
		return err
	}
	g.EndObjectElement(name)
	return nil
}

func value(g Generator, name string, data interface{}) {
	g.StartValueElement(name, data)
	g.EndValueElement(name)
}

// textValue emits the text form of an enumerated value.
func textValue(g Generator, name string, data encoding.TextMarshaler) error {
	text, err := data.MarshalText()
	if err != nil {
		return err
	}
	value(g, name, string(text))
	return nil
}

// translations emits a language code → text map in language code
// order.
func translations(g Generator, name string, texts map[string]string) {
	languages := make([]string, 0, len(texts))
	for language := range texts {
		languages = append(languages, language)
	}
	sort.Strings(languages)

	g.StartHashElement(name)
	g.StartList("value")
	for _, language := range languages {
		g.StartValueElement("value", texts[language], Attribute{Name: "languageCode", Value: language})
		g.EndValueElement("value")
	}
	g.EndList("value")
	g.EndHashElement(name)
}

func visitRestContentType(v *Visitor, g Generator, data interface{}) error {
	rest, ok := deref(data).(restdata.RestContentType)
	if !ok || rest.ContentType == nil {
		return errUnexpected(data, "RestContentType")
	}
	ct := rest.ContentType

	g.StartObjectElement("ContentType", "")
	v.SetHeader("Content-Type", g.MediaType("ContentType"))
	if err := hrefAttribute(v, g, restdata.RouteLoadContentType, map[string]interface{}{"contentTypeId": ct.ID}); err != nil {
		return err
	}

	value(g, "id", ct.ID)
	if err := textValue(g, "status", ct.Status); err != nil {
		return err
	}
	value(g, "identifier", ct.Identifier)
	translations(g, "names", ct.Names)
	translations(g, "descriptions", ct.Descriptions)
	value(g, "creationDate", ct.CreationDate)
	value(g, "modificationDate", ct.ModificationDate)
	if err := reference(v, g, "Creator", "User", restdata.RouteLoadUser, map[string]interface{}{"userId": ct.CreatorID}); err != nil {
		return err
	}
	if err := reference(v, g, "Modifier", "User", restdata.RouteLoadUser, map[string]interface{}{"userId": ct.ModifierID}); err != nil {
		return err
	}
	value(g, "remoteId", ct.RemoteID)
	value(g, "urlAliasSchema", ct.URLAliasSchema)
	value(g, "nameSchema", ct.NameSchema)
	value(g, "isContainer", ct.IsContainer)
	value(g, "mainLanguageCode", ct.MainLanguageCode)
	value(g, "defaultAlwaysAvailable", ct.DefaultAlwaysAvailable)
	if err := textValue(g, "defaultSortField", ct.DefaultSortField); err != nil {
		return err
	}
	if err := textValue(g, "defaultSortOrder", ct.DefaultSortOrder); err != nil {
		return err
	}

	g.StartObjectElement("Groups", "ContentTypeGroupRefList")
	g.StartList("ContentTypeGroupRef")
	for _, groupID := range ct.GroupIDs {
		if err := reference(v, g, "ContentTypeGroupRef", "ContentTypeGroup", restdata.RouteLoadContentTypeGroup, map[string]interface{}{"contentTypeGroupId": groupID}); err != nil {
			return err
		}
	}
	g.EndList("ContentTypeGroupRef")
	g.EndObjectElement("Groups")

	g.StartObjectElement("FieldDefinitions", "FieldDefinitionList")
	g.StartList("FieldDefinition")
	for _, fd := range ct.FieldDefinitions {
		if err := v.VisitValueObject(restdata.RestFieldDefinition{ContentType: ct, FieldDefinition: fd}); err != nil {
			return err
		}
	}
	g.EndList("FieldDefinition")
	g.EndObjectElement("FieldDefinitions")

	g.EndObjectElement("ContentType")
	return nil
}

// FieldDefinitionVisitor renders restdata.RestFieldDefinition values.
// Field type specific hashes pass through the processor for the
// field's type.
type FieldDefinitionVisitor struct {
	Processors *fieldtype.Registry
}

// Visit implements ValueObjectVisitor.
func (fv *FieldDefinitionVisitor) Visit(v *Visitor, g Generator, data interface{}) error {
	rest, ok := deref(data).(restdata.RestFieldDefinition)
	if !ok || rest.ContentType == nil || rest.FieldDefinition == nil {
		return errUnexpected(data, "RestFieldDefinition")
	}
	fd := rest.FieldDefinition

	var processor fieldtype.Processor = fieldtype.BaseProcessor{}
	if fv.Processors != nil {
		processor = fv.Processors.Lookup(fd.FieldTypeIdentifier)
	}

	g.StartObjectElement("FieldDefinition", "")
	v.SetHeader("Content-Type", g.MediaType("FieldDefinition"))
	if err := hrefAttribute(v, g, restdata.RouteLoadContentTypeFieldDefinition, map[string]interface{}{
		"contentTypeId":     rest.ContentType.ID,
		"fieldDefinitionId": fd.ID,
	}); err != nil {
		return err
	}

	value(g, "id", fd.ID)
	value(g, "identifier", fd.Identifier)
	value(g, "fieldType", fd.FieldTypeIdentifier)
	value(g, "fieldGroup", fd.FieldGroup)
	value(g, "position", fd.Position)
	value(g, "isTranslatable", fd.IsTranslatable)
	value(g, "isRequired", fd.IsRequired)
	value(g, "isInfoCollector", fd.IsInfoCollector)
	value(g, "isSearchable", fd.IsSearchable)

	hashes := []struct {
		name    string
		hash    interface{}
		process func(interface{}) (interface{}, error)
	}{
		{"defaultValue", fd.DefaultValue, processor.PostProcessValueHash},
		{"fieldSettings", fd.FieldSettings, processor.PostProcessFieldSettingsHash},
		{"validatorConfiguration", fd.ValidatorConfiguration, processor.PostProcessValidatorConfigurationHash},
	}
	for _, h := range hashes {
		if h.hash == nil {
			continue
		}
		processed, err := h.process(h.hash)
		if err != nil {
			return err
		}
		g.FieldTypeHash(h.name, processed)
	}

	translations(g, "names", fd.Names)
	translations(g, "descriptions", fd.Descriptions)

	g.EndObjectElement("FieldDefinition")
	return nil
}

func visitRestRelation(v *Visitor, g Generator, data interface{}) error {
	rest, ok := deref(data).(restdata.RestRelation)
	if !ok || rest.Relation == nil || rest.Relation.DestinationContentInfo == nil {
		return errUnexpected(data, "RestRelation")
	}
	relation := rest.Relation

	g.StartObjectElement("Relation", "")
	v.SetHeader("Content-Type", g.MediaType("Relation"))
	if err := hrefAttribute(v, g, restdata.RouteLoadVersionRelation, map[string]interface{}{
		"contentId":     rest.ContentID,
		"versionNumber": rest.VersionNo,
		"relationId":    relation.ID,
	}); err != nil {
		return err
	}

	if err := reference(v, g, "SourceContent", "ContentInfo", restdata.RouteLoadContent, map[string]interface{}{"contentId": rest.ContentID}); err != nil {
		return err
	}
	if err := reference(v, g, "DestinationContent", "ContentInfo", restdata.RouteLoadContent, map[string]interface{}{"contentId": relation.DestinationContentInfo.ID}); err != nil {
		return err
	}

	if relation.SourceFieldDefinitionIdentifier != "" {
		value(g, "SourceFieldDefinitionIdentifier", relation.SourceFieldDefinitionIdentifier)
	}

	relationType, err := RelationTypeString(relation.Type)
	if err != nil {
		return err
	}
	value(g, "RelationType", relationType)

	g.EndObjectElement("Relation")
	return nil
}

func visitRelationList(v *Visitor, g Generator, data interface{}) error {
	list, ok := deref(data).(restdata.RelationList)
	if !ok {
		return errUnexpected(data, "RelationList")
	}

	g.StartObjectElement("Relations", "RelationList")
	v.SetHeader("Content-Type", g.MediaType("RelationList"))
	if err := hrefAttribute(v, g, restdata.RouteLoadVersionRelations, map[string]interface{}{
		"contentId":     list.ContentID,
		"versionNumber": list.VersionNo,
	}); err != nil {
		return err
	}

	g.StartList("Relation")
	for _, relation := range list.Relations {
		err := v.VisitValueObject(restdata.RestRelation{
			Relation:  relation,
			ContentID: list.ContentID,
			VersionNo: list.VersionNo,
		})
		if err != nil {
			return err
		}
	}
	g.EndList("Relation")

	g.EndObjectElement("Relations")
	return nil
}

func visitContentInfo(v *Visitor, g Generator, data interface{}) error {
	info, ok := deref(data).(repository.ContentInfo)
	if !ok {
		return errUnexpected(data, "ContentInfo")
	}

	g.StartObjectElement("Content", "ContentInfo")
	v.SetHeader("Content-Type", g.MediaType("ContentInfo"))
	if err := hrefAttribute(v, g, restdata.RouteLoadContent, map[string]interface{}{"contentId": info.ID}); err != nil {
		return err
	}
	g.StartAttribute("remoteId", info.RemoteID)
	g.EndAttribute("remoteId")
	g.StartAttribute("id", info.ID)
	g.EndAttribute("id")

	value(g, "Name", info.Name)
	value(g, "mainLanguageCode", info.MainLanguageCode)
	value(g, "currentVersionNo", info.CurrentVersionNo)

	g.EndObjectElement("Content")
	return nil
}

func visitCreatedContentType(v *Visitor, g Generator, data interface{}) error {
	created, ok := deref(data).(restdata.CreatedContentType)
	if !ok || created.ContentType.ContentType == nil {
		return errUnexpected(data, "CreatedContentType")
	}
	location, err := v.Href(restdata.RouteLoadContentType, map[string]interface{}{
		"contentTypeId": created.ContentType.ContentType.ID,
	})
	if err != nil {
		return err
	}
	v.SetHeader("Location", location)
	v.SetStatus(http.StatusCreated)
	return v.VisitValueObject(created.ContentType)
}

func visitCreatedRelation(v *Visitor, g Generator, data interface{}) error {
	created, ok := deref(data).(restdata.CreatedRelation)
	if !ok || created.Relation.Relation == nil {
		return errUnexpected(data, "CreatedRelation")
	}
	location, err := v.Href(restdata.RouteLoadVersionRelation, map[string]interface{}{
		"contentId":     created.Relation.ContentID,
		"versionNumber": created.Relation.VersionNo,
		"relationId":    created.Relation.Relation.ID,
	})
	if err != nil {
		return err
	}
	v.SetHeader("Location", location)
	v.SetStatus(http.StatusCreated)
	return v.VisitValueObject(created.Relation)
}

// visitError renders any error as an ErrorMessage with the error's
// HTTP status.
func visitError(v *Visitor, g Generator, data interface{}) error {
	err, ok := data.(error)
	if !ok {
		return errUnexpected(data, "error")
	}
	status := restdata.StatusOf(err)

	g.StartObjectElement("ErrorMessage", "")
	v.SetHeader("Content-Type", g.MediaType("ErrorMessage"))
	v.SetStatus(status)

	value(g, "errorCode", status)
	value(g, "errorMessage", http.StatusText(status))
	value(g, "errorDescription", err.Error())

	g.EndObjectElement("ErrorMessage")
	return nil
}
