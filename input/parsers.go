// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package input

import (
	"time"

	"github.com/diffeo/go-cmsrest/fieldtype"
	"github.com/diffeo/go-cmsrest/repository"
	"github.com/diffeo/go-cmsrest/restdata"
)

// Type names of the request bodies the parsers here understand.
const (
	TypeContentTypeCreate     = "ContentTypeCreate"
	TypeContentTypeUpdate     = "ContentTypeUpdate"
	TypeFieldDefinitionCreate = "FieldDefinitionCreate"
	TypeRelationCreate        = "RelationCreate"
)

// PublishKey is set to "true" on a ContentTypeCreate fragment when the
// new content type is to be published immediately.  The HTTP layer
// sets it from the request's query string.
const PublishKey = "__publish"

// DefaultDispatcher returns a dispatcher holding every parser in this
// package.
func DefaultDispatcher(service repository.ContentTypeService, contents repository.ContentService, tools *Tools, processors *fieldtype.Registry) *Dispatcher {
	return NewDispatcher(map[string]Parser{
		TypeContentTypeCreate:     &ContentTypeCreateParser{Service: service, Tools: tools},
		TypeContentTypeUpdate:     &ContentTypeUpdateParser{Service: service, Tools: tools},
		TypeFieldDefinitionCreate: &FieldDefinitionCreateParser{Service: service, Tools: tools, Processors: processors},
		TypeRelationCreate:        &RelationCreateParser{Service: contents, Tools: tools},
	})
}

// ContentTypeCreateParser parses a ContentTypeCreate body into a
// *repository.ContentTypeCreateStruct.
type ContentTypeCreateParser struct {
	Service repository.ContentTypeService
	Tools   *Tools
}

// Parse implements Parser.
func (p *ContentTypeCreateParser) Parse(data *Fragment, d *Dispatcher) (interface{}, error) {
	r := newFieldReader(data, TypeContentTypeCreate, p.Tools)
	identifier := r.required("identifier")
	if r.err != nil {
		return nil, r.err
	}
	create := p.Service.NewContentTypeCreateStruct(identifier)

	create.MainLanguageCode = r.required("mainLanguageCode")
	r.str("remoteId", &create.RemoteID)
	r.str("urlAliasSchema", &create.URLAliasSchema)
	r.str("nameSchema", &create.NameSchema)
	r.boolean("isContainer", &create.IsContainer)
	r.sortField("defaultSortField", &create.DefaultSortField)
	r.sortOrder("defaultSortOrder", &create.DefaultSortOrder)
	r.boolean("defaultAlwaysAvailable", &create.DefaultAlwaysAvailable)
	r.translations("names", &create.Names)
	r.translations("descriptions", &create.Descriptions)
	r.dateTime("modificationDate", &create.CreationDate)
	r.hrefID("User", "userId", &create.CreatorID)
	var publish bool
	r.boolean(PublishKey, &publish)
	if r.err != nil {
		return nil, r.err
	}

	fieldDefinitions, err := p.parseFieldDefinitions(data, d, publish)
	if err != nil {
		return nil, err
	}
	for _, fd := range fieldDefinitions {
		create.AddFieldDefinition(fd)
	}
	return create, nil
}

func (p *ContentTypeCreateParser) parseFieldDefinitions(data *Fragment, d *Dispatcher, publish bool) ([]*repository.FieldDefinitionCreateStruct, error) {
	if !data.Has("FieldDefinitions") {
		return nil, restdata.ParseErrorf("Missing 'FieldDefinitions' element for %s.", TypeContentTypeCreate)
	}
	container, isFragment := data.Fragment("FieldDefinitions")
	if !isFragment || !container.Has("FieldDefinition") {
		return nil, restdata.ParseErrorf("Invalid 'FieldDefinitions' element for %s.", TypeContentTypeCreate)
	}
	value, _ := container.Get("FieldDefinition")
	items := p.Tools.NormalizeList(value)
	if publish && len(items) == 0 {
		return nil, restdata.ParseErrorf("%s must provide at least one field definition.", TypeContentTypeCreate)
	}

	result := make([]*repository.FieldDefinitionCreateStruct, 0, len(items))
	for _, item := range items {
		element, isFragment := item.(*Fragment)
		if !isFragment {
			return nil, restdata.ParseErrorf("Invalid 'FieldDefinition' element for %s.", TypeContentTypeCreate)
		}
		mediaType, hasMediaType := element.String("_media-type")
		if !hasMediaType {
			mediaType = TypeFieldDefinitionCreate
		}
		parsed, err := d.Parse(element, mediaType)
		if err != nil {
			return nil, err
		}
		fd, isFieldDefinition := parsed.(*repository.FieldDefinitionCreateStruct)
		if !isFieldDefinition {
			return nil, restdata.ParseErrorf("Invalid 'FieldDefinition' element for %s.", TypeContentTypeCreate)
		}
		result = append(result, fd)
	}
	return result, nil
}

// ContentTypeUpdateParser parses a ContentTypeUpdate body into a
// *repository.ContentTypeUpdateStruct.  Every element is optional.
type ContentTypeUpdateParser struct {
	Service repository.ContentTypeService
	Tools   *Tools
}

// Parse implements Parser.
func (p *ContentTypeUpdateParser) Parse(data *Fragment, d *Dispatcher) (interface{}, error) {
	r := newFieldReader(data, TypeContentTypeUpdate, p.Tools)
	update := p.Service.NewContentTypeUpdateStruct()

	var (
		identifier, remoteID, urlAliasSchema, nameSchema, mainLanguageCode string
		isContainer, defaultAlwaysAvailable                                bool
		sortField                                                          repository.SortField
		sortOrder                                                          repository.SortOrder
		modifierID                                                         int
		modificationDate                                                   time.Time
	)
	if r.str("identifier", &identifier) {
		update.Identifier = &identifier
	}
	if r.str("remoteId", &remoteID) {
		update.RemoteID = &remoteID
	}
	if r.str("urlAliasSchema", &urlAliasSchema) {
		update.URLAliasSchema = &urlAliasSchema
	}
	if r.str("nameSchema", &nameSchema) {
		update.NameSchema = &nameSchema
	}
	if r.boolean("isContainer", &isContainer) {
		update.IsContainer = &isContainer
	}
	if r.str("mainLanguageCode", &mainLanguageCode) {
		update.MainLanguageCode = &mainLanguageCode
	}
	if r.sortField("defaultSortField", &sortField) {
		update.DefaultSortField = &sortField
	}
	if r.sortOrder("defaultSortOrder", &sortOrder) {
		update.DefaultSortOrder = &sortOrder
	}
	if r.boolean("defaultAlwaysAvailable", &defaultAlwaysAvailable) {
		update.DefaultAlwaysAvailable = &defaultAlwaysAvailable
	}
	r.translations("names", &update.Names)
	r.translations("descriptions", &update.Descriptions)
	if r.dateTime("modificationDate", &modificationDate) {
		update.ModificationDate = &modificationDate
	}
	if r.hrefID("User", "userId", &modifierID) {
		update.ModifierID = &modifierID
	}
	if r.err != nil {
		return nil, r.err
	}
	return update, nil
}

// FieldDefinitionCreateParser parses a FieldDefinitionCreate body into
// a *repository.FieldDefinitionCreateStruct.  The field type specific
// defaultValue, fieldSettings, and validatorConfiguration elements
// pass through the processor for the field type.
type FieldDefinitionCreateParser struct {
	Service    repository.ContentTypeService
	Tools      *Tools
	Processors *fieldtype.Registry
}

// Parse implements Parser.
func (p *FieldDefinitionCreateParser) Parse(data *Fragment, d *Dispatcher) (interface{}, error) {
	r := newFieldReader(data, TypeFieldDefinitionCreate, p.Tools)
	identifier := r.required("identifier")
	fieldType := r.required("fieldType")
	if r.err != nil {
		return nil, r.err
	}
	create := p.Service.NewFieldDefinitionCreateStruct(identifier, fieldType)

	r.translations("names", &create.Names)
	r.translations("descriptions", &create.Descriptions)
	r.str("fieldGroup", &create.FieldGroup)
	r.integer("position", &create.Position)
	r.boolean("isTranslatable", &create.IsTranslatable)
	r.boolean("isRequired", &create.IsRequired)
	r.boolean("isInfoCollector", &create.IsInfoCollector)
	r.boolean("isSearchable", &create.IsSearchable)
	if r.err != nil {
		return nil, r.err
	}

	var processor fieldtype.Processor = fieldtype.BaseProcessor{}
	if p.Processors != nil {
		processor = p.Processors.Lookup(fieldType)
	}
	hooks := []struct {
		key     string
		dest    *interface{}
		process func(interface{}) (interface{}, error)
	}{
		{"defaultValue", &create.DefaultValue, processor.PreProcessValueHash},
		{"fieldSettings", &create.FieldSettings, processor.PreProcessFieldSettingsHash},
		{"validatorConfiguration", &create.ValidatorConfiguration, processor.PreProcessValidatorConfigurationHash},
	}
	for _, hook := range hooks {
		hash, present := r.hash(hook.key)
		if !present {
			continue
		}
		processed, err := hook.process(hash)
		if err != nil {
			return nil, err
		}
		*hook.dest = processed
	}
	return create, nil
}

// RelationCreateParser parses a RelationCreate body into a
// *repository.RelationCreateStruct.
type RelationCreateParser struct {
	Service repository.ContentService
	Tools   *Tools
}

// Parse implements Parser.
func (p *RelationCreateParser) Parse(data *Fragment, d *Dispatcher) (interface{}, error) {
	r := newFieldReader(data, TypeRelationCreate, p.Tools)
	if !data.Has("Destination") {
		r.missing("Destination")
		return nil, r.err
	}
	var destinationID int
	r.hrefID("Destination", "contentId", &destinationID)
	if r.err != nil {
		return nil, r.err
	}
	return p.Service.NewRelationCreateStruct(destinationID), nil
}
