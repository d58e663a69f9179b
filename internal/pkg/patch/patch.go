package patch

// Coalesce dereferences an optional request field, falling back when it was omitted.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
