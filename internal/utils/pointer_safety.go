package utils

func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// OptionalString returns nil for an empty string so it is omitted from JSON payloads.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
