// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package fieldtype

import (
	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/mitchellh/mapstructure"
)

// symbolicSetting maps one field settings key between symbolic names
// on the wire and integer codes in the repository.  A name's code is
// its index in names.
type symbolicSetting struct {
	fieldType string
	key       string
	names     []string
}

// toCode replaces a symbolic name under s.key with its code.  Numeric
// strings are accepted as codes directly.
func (s symbolicSetting) toCode(hash interface{}) (interface{}, error) {
	m := copyHash(hash)
	if m == nil {
		return hash, nil
	}
	value, present := m[s.key]
	if !present || value == nil {
		return hash, nil
	}
	if name, isString := value.(string); isString {
		for code, candidate := range s.names {
			if candidate == name {
				m[s.key] = code
				return m, nil
			}
		}
	}
	var code int
	if err := mapstructure.WeakDecode(value, &code); err != nil || code < 0 || code >= len(s.names) {
		return nil, restdata.ParseErrorf("Unknown '%s' value '%v' for %s field settings.", s.key, value, s.fieldType)
	}
	m[s.key] = code
	return m, nil
}

// toName replaces a code under s.key with its symbolic name.  Values
// that are not known codes are left alone.
func (s symbolicSetting) toName(hash interface{}) (interface{}, error) {
	m := copyHash(hash)
	if m == nil {
		return hash, nil
	}
	value, present := m[s.key]
	if !present || value == nil {
		return hash, nil
	}
	if _, isString := value.(string); isString {
		return hash, nil
	}
	var code int
	if err := mapstructure.WeakDecode(value, &code); err == nil && code >= 0 && code < len(s.names) {
		m[s.key] = s.names[code]
	}
	return m, nil
}

// defaultTypeProcessor converts the "defaultType" setting of the date
// and time field types.
type defaultTypeProcessor struct {
	BaseProcessor
	setting symbolicSetting
}

func (p *defaultTypeProcessor) PreProcessFieldSettingsHash(incoming interface{}) (interface{}, error) {
	return p.setting.toCode(incoming)
}

func (p *defaultTypeProcessor) PostProcessFieldSettingsHash(outgoing interface{}) (interface{}, error) {
	return p.setting.toName(outgoing)
}

// NewDateAndTimeProcessor creates the processor for ezdatetime fields.
func NewDateAndTimeProcessor() Processor {
	return &defaultTypeProcessor{setting: symbolicSetting{
		fieldType: "ezdatetime",
		key:       "defaultType",
		names:     []string{"DEFAULT_EMPTY", "DEFAULT_CURRENT_DATE", "DEFAULT_CURRENT_DATE_ADJUSTED"},
	}}
}

// NewDateProcessor creates the processor for ezdate fields.
func NewDateProcessor() Processor {
	return &defaultTypeProcessor{setting: symbolicSetting{
		fieldType: "ezdate",
		key:       "defaultType",
		names:     []string{"DEFAULT_EMPTY", "DEFAULT_CURRENT_DATE"},
	}}
}

// NewTimeProcessor creates the processor for eztime fields.
func NewTimeProcessor() Processor {
	return &defaultTypeProcessor{setting: symbolicSetting{
		fieldType: "eztime",
		key:       "defaultType",
		names:     []string{"DEFAULT_EMPTY", "DEFAULT_CURRENT_TIME"},
	}}
}

var selectionMethodNames = []string{"SELECTION_BROWSE", "SELECTION_DROPDOWN"}

// relationProcessor handles the relation field types: their
// "selectionMethod" setting, and hrefs to related content in their
// outgoing values.
type relationProcessor struct {
	BaseProcessor
	setting symbolicSetting
	urls    restdata.RouteGenerator
	list    bool
}

// NewRelationProcessor creates the processor for ezobjectrelation
// fields.  Outgoing values with a destinationContentId gain a
// destinationContentHref.
func NewRelationProcessor(urls restdata.RouteGenerator) Processor {
	return &relationProcessor{
		setting: symbolicSetting{fieldType: "ezobjectrelation", key: "selectionMethod", names: selectionMethodNames},
		urls:    urls,
	}
}

// NewRelationListProcessor creates the processor for
// ezobjectrelationlist fields.  Outgoing values with
// destinationContentIds gain a matching list of
// destinationContentHrefs.
func NewRelationListProcessor(urls restdata.RouteGenerator) Processor {
	return &relationProcessor{
		setting: symbolicSetting{fieldType: "ezobjectrelationlist", key: "selectionMethod", names: selectionMethodNames},
		urls:    urls,
		list:    true,
	}
}

func (p *relationProcessor) PreProcessFieldSettingsHash(incoming interface{}) (interface{}, error) {
	return p.setting.toCode(incoming)
}

func (p *relationProcessor) PostProcessFieldSettingsHash(outgoing interface{}) (interface{}, error) {
	return p.setting.toName(outgoing)
}

func (p *relationProcessor) contentHref(id interface{}) (string, error) {
	return p.urls.Generate(restdata.RouteLoadContent, map[string]interface{}{"contentId": id})
}

func (p *relationProcessor) PostProcessValueHash(outgoing interface{}) (interface{}, error) {
	m := copyHash(outgoing)
	if m == nil {
		return outgoing, nil
	}
	if !p.list {
		id, present := m["destinationContentId"]
		if !present || id == nil {
			return outgoing, nil
		}
		href, err := p.contentHref(id)
		if err != nil {
			return nil, err
		}
		m["destinationContentHref"] = href
		return m, nil
	}

	var ids []interface{}
	if err := mapstructure.Decode(m["destinationContentIds"], &ids); err != nil || ids == nil {
		return outgoing, nil
	}
	hrefs := make([]interface{}, len(ids))
	for i, id := range ids {
		href, err := p.contentHref(id)
		if err != nil {
			return nil, err
		}
		hrefs[i] = href
	}
	m["destinationContentHrefs"] = hrefs
	return m, nil
}
