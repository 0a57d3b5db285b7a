// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"sort"

	"github.com/diffeo/go-cmsrest/repository"
)

type contentTypeService memRepository

func (s *contentTypeService) repo() *memRepository {
	return (*memRepository)(s)
}

func (s *contentTypeService) NewContentTypeCreateStruct(identifier string) *repository.ContentTypeCreateStruct {
	return &repository.ContentTypeCreateStruct{
		Identifier:             identifier,
		DefaultSortField:       repository.SortFieldPath,
		DefaultSortOrder:       repository.SortOrderAsc,
		DefaultAlwaysAvailable: true,
		Names:                  map[string]string{},
		Descriptions:           map[string]string{},
	}
}

func (s *contentTypeService) NewContentTypeUpdateStruct() *repository.ContentTypeUpdateStruct {
	return &repository.ContentTypeUpdateStruct{}
}

func (s *contentTypeService) NewFieldDefinitionCreateStruct(identifier, fieldTypeIdentifier string) *repository.FieldDefinitionCreateStruct {
	return &repository.FieldDefinitionCreateStruct{
		Identifier:          identifier,
		FieldTypeIdentifier: fieldTypeIdentifier,
		Names:               map[string]string{},
		Descriptions:        map[string]string{},
		IsTranslatable:      true,
		IsSearchable:        true,
	}
}

func (s *contentTypeService) CreateContentType(create *repository.ContentTypeCreateStruct, groupID int) (ct *repository.ContentType, err error) {
	r := s.repo()
	err = r.do(func() error {
		if create.Identifier == "" {
			return repository.ErrNoIdentifier
		}
		if create.MainLanguageCode == "" {
			return repository.ErrNoMainLanguage
		}
		if _, present := r.groups[groupID]; !present {
			return repository.ErrNoSuchContentTypeGroup{ID: groupID}
		}
		if r.identifierInUse(create.Identifier, 0) {
			return repository.ErrDuplicateIdentifier{Identifier: create.Identifier}
		}

		now := r.clock.Now()
		created := &repository.ContentType{
			Status:                 repository.StatusDraft,
			Identifier:             create.Identifier,
			RemoteID:               create.RemoteID,
			URLAliasSchema:         create.URLAliasSchema,
			NameSchema:             create.NameSchema,
			IsContainer:            create.IsContainer,
			MainLanguageCode:       create.MainLanguageCode,
			DefaultAlwaysAvailable: create.DefaultAlwaysAvailable,
			DefaultSortField:       create.DefaultSortField,
			DefaultSortOrder:       create.DefaultSortOrder,
			Names:                  copyTranslations(create.Names),
			Descriptions:           copyTranslations(create.Descriptions),
			CreationDate:           create.CreationDate,
			ModificationDate:       now,
			CreatorID:              create.CreatorID,
			ModifierID:             create.CreatorID,
			GroupIDs:               []int{groupID},
		}
		if created.RemoteID == "" {
			created.RemoteID = newRemoteID()
		}
		if created.CreationDate.IsZero() {
			created.CreationDate = now
		}
		for i, fdc := range create.FieldDefinitions {
			r.lastFieldDefinitionID++
			fd := &repository.FieldDefinition{
				ID:                     r.lastFieldDefinitionID,
				Identifier:             fdc.Identifier,
				FieldTypeIdentifier:    fdc.FieldTypeIdentifier,
				Names:                  copyTranslations(fdc.Names),
				Descriptions:           copyTranslations(fdc.Descriptions),
				FieldGroup:             fdc.FieldGroup,
				Position:               fdc.Position,
				IsTranslatable:         fdc.IsTranslatable,
				IsRequired:             fdc.IsRequired,
				IsInfoCollector:        fdc.IsInfoCollector,
				IsSearchable:           fdc.IsSearchable,
				DefaultValue:           fdc.DefaultValue,
				FieldSettings:          fdc.FieldSettings,
				ValidatorConfiguration: fdc.ValidatorConfiguration,
			}
			if fd.Position == 0 {
				fd.Position = i + 1
			}
			created.FieldDefinitions = append(created.FieldDefinitions, fd)
		}
		sort.SliceStable(created.FieldDefinitions, func(i, j int) bool {
			return created.FieldDefinitions[i].Position < created.FieldDefinitions[j].Position
		})

		r.lastContentTypeID++
		created.ID = r.lastContentTypeID
		r.contentTypes[created.ID] = created
		ct = created.Clone()
		return nil
	})
	return
}

func (s *contentTypeService) LoadContentType(id int) (ct *repository.ContentType, err error) {
	r := s.repo()
	err = r.do(func() error {
		stored, present := r.contentTypes[id]
		if !present {
			return repository.ErrNoSuchContentType{ID: id}
		}
		ct = stored.Clone()
		return nil
	})
	return
}

func (s *contentTypeService) UpdateContentType(id int, update *repository.ContentTypeUpdateStruct) (ct *repository.ContentType, err error) {
	r := s.repo()
	err = r.do(func() error {
		stored, present := r.contentTypes[id]
		if !present {
			return repository.ErrNoSuchContentType{ID: id}
		}
		if update.Identifier != nil {
			if *update.Identifier == "" {
				return repository.ErrNoIdentifier
			}
			if r.identifierInUse(*update.Identifier, id) {
				return repository.ErrDuplicateIdentifier{Identifier: *update.Identifier}
			}
			stored.Identifier = *update.Identifier
		}
		if update.RemoteID != nil {
			stored.RemoteID = *update.RemoteID
		}
		if update.URLAliasSchema != nil {
			stored.URLAliasSchema = *update.URLAliasSchema
		}
		if update.NameSchema != nil {
			stored.NameSchema = *update.NameSchema
		}
		if update.IsContainer != nil {
			stored.IsContainer = *update.IsContainer
		}
		if update.MainLanguageCode != nil {
			stored.MainLanguageCode = *update.MainLanguageCode
		}
		if update.DefaultSortField != nil {
			stored.DefaultSortField = *update.DefaultSortField
		}
		if update.DefaultSortOrder != nil {
			stored.DefaultSortOrder = *update.DefaultSortOrder
		}
		if update.DefaultAlwaysAvailable != nil {
			stored.DefaultAlwaysAvailable = *update.DefaultAlwaysAvailable
		}
		for lang, name := range update.Names {
			stored.Names[lang] = name
		}
		for lang, desc := range update.Descriptions {
			stored.Descriptions[lang] = desc
		}
		if update.ModifierID != nil {
			stored.ModifierID = *update.ModifierID
		}
		if update.ModificationDate != nil {
			stored.ModificationDate = *update.ModificationDate
		} else {
			stored.ModificationDate = r.clock.Now()
		}
		ct = stored.Clone()
		return nil
	})
	return
}

func (s *contentTypeService) PublishContentTypeDraft(id int) (ct *repository.ContentType, err error) {
	r := s.repo()
	err = r.do(func() error {
		stored, present := r.contentTypes[id]
		if !present {
			return repository.ErrNoSuchContentType{ID: id}
		}
		if stored.Status != repository.StatusDraft {
			return repository.ErrAlreadyPublished
		}
		stored.Status = repository.StatusDefined
		stored.ModificationDate = r.clock.Now()
		ct = stored.Clone()
		return nil
	})
	return
}

// identifierInUse reports whether any content type other than
// exceptID has the given identifier.  Call under the global lock.
func (r *memRepository) identifierInUse(identifier string, exceptID int) bool {
	for id, ct := range r.contentTypes {
		if id != exceptID && ct.Identifier == identifier {
			return true
		}
	}
	return false
}
