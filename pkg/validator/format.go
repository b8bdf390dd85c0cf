package validator

import "maps"

// RootField is the Field of errors that refer to the validated value itself.
const RootField = "(root)"

// FormatErrors converts engine errors into ValidationErrors, keeping their order.
// The keyword becomes a "validation.<keyword>" translation key and the
// engine parameters become its translation values.
func FormatErrors(raw []RawError) ValidationErrors {
	if len(raw) == 0 {
		return nil
	}

	out := make(ValidationErrors, 0, len(raw))
	for _, e := range raw {
		field := e.InstancePath
		if field == "" {
			field = RootField
		}

		ve := ValidationError{
			Field:   field,
			Message: e.Message,
		}
		if e.Keyword != "" {
			ve.TranslationKey = "validation." + e.Keyword
			ve.TranslationValues = maps.Clone(e.Params)
			if ve.TranslationValues == nil {
				ve.TranslationValues = map[string]any{}
			}
			ve.TranslationValues["field"] = field
		}
		out = append(out, ve)
	}
	return out
}
