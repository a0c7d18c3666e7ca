package llm

// extractOption pulls a typed value out of a generic options map.
// It falls back to def when the key is absent, holds a different type,
// or fails the optional validator.
func extractOption[T any](opts map[string]any, key string, def T, valid func(T) bool) T {
	if opts == nil {
		return def
	}
	raw, ok := opts[key]
	if !ok {
		return def
	}
	val, ok := raw.(T)
	if !ok {
		return def
	}
	if valid != nil && !valid(val) {
		return def
	}
	return val
}

// ExtractOptionalInt reads an int option, falling back to defaultVal on
// a missing key, a type mismatch, or a failed validator.
func ExtractOptionalInt(opts map[string]any, key string, defaultVal int, validator func(int) bool) int {
	return extractOption(opts, key, defaultVal, validator)
}

// ExtractOptionalString reads a string option with the same fallback rules.
func ExtractOptionalString(opts map[string]any, key string, defaultVal string, validator func(string) bool) string {
	return extractOption(opts, key, defaultVal, validator)
}

// ExtractOptionalFloat64 reads a float64 option with the same fallback rules.
func ExtractOptionalFloat64(opts map[string]any, key string, defaultVal float64, validator func(float64) bool) float64 {
	return extractOption(opts, key, defaultVal, validator)
}
