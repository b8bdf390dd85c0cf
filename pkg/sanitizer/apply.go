package sanitizer

// Apply runs transforms over value from left to right.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value

	for _, transform := range transforms {
		result = transform(result)
	}

	return result
}

// Compose creates reusable sanitization pipelines that can be stored and reused.
// Preferred over repeated Apply calls when the same transformation chain is used multiple times.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

// ApplyAny applies a string transform to v when v is a string and returns any
// other value unchanged.
func ApplyAny(transform func(string) string, v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return transform(s)
}
