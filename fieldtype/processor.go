// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package fieldtype holds the per-field-type hooks that adjust field
// values, settings, and validator configurations on their way into and
// out of the REST API.
//
// Hashes are plain Go trees built from map[string]interface{},
// []interface{}, and scalars.  On input they come from the request
// body, so scalars are strings; on output they come from the
// repository and may hold any scalar type.
//
// A Registry maps field type identifiers ("ezdatetime") to Processors.
// It is filled in once at startup and only read afterwards, so it
// needs no locking.
package fieldtype

// Processor converts field type specific hashes between their wire
// form and their repository form.  Every method returns its (possibly
// new) hash; implementations must not modify their argument.  Errors
// from the PreProcess hooks describe bad client input and should be
// restdata.ErrParse values.
type Processor interface {
	// PreProcessValueHash converts an incoming field value.
	PreProcessValueHash(incoming interface{}) (interface{}, error)

	// PostProcessValueHash converts an outgoing field value.
	PostProcessValueHash(outgoing interface{}) (interface{}, error)

	// PreProcessFieldSettingsHash converts incoming field
	// definition settings.
	PreProcessFieldSettingsHash(incoming interface{}) (interface{}, error)

	// PostProcessFieldSettingsHash converts outgoing field
	// definition settings.
	PostProcessFieldSettingsHash(outgoing interface{}) (interface{}, error)

	// PreProcessValidatorConfigurationHash converts an incoming
	// validator configuration.
	PreProcessValidatorConfigurationHash(incoming interface{}) (interface{}, error)

	// PostProcessValidatorConfigurationHash converts an outgoing
	// validator configuration.
	PostProcessValidatorConfigurationHash(outgoing interface{}) (interface{}, error)
}

// BaseProcessor passes every hash through unchanged.  Embed it in
// processors that only care about some of the hooks.
type BaseProcessor struct{}

func (BaseProcessor) PreProcessValueHash(incoming interface{}) (interface{}, error) {
	return incoming, nil
}

func (BaseProcessor) PostProcessValueHash(outgoing interface{}) (interface{}, error) {
	return outgoing, nil
}

func (BaseProcessor) PreProcessFieldSettingsHash(incoming interface{}) (interface{}, error) {
	return incoming, nil
}

func (BaseProcessor) PostProcessFieldSettingsHash(outgoing interface{}) (interface{}, error) {
	return outgoing, nil
}

func (BaseProcessor) PreProcessValidatorConfigurationHash(incoming interface{}) (interface{}, error) {
	return incoming, nil
}

func (BaseProcessor) PostProcessValidatorConfigurationHash(outgoing interface{}) (interface{}, error) {
	return outgoing, nil
}

// copyHash returns a shallow copy of a string-keyed hash, or nil if
// hash is not one.
func copyHash(hash interface{}) map[string]interface{} {
	m, ok := hash.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
