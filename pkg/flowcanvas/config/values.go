package config

import (
	"time"
)

// Values wraps a map[string]any for type-safe value extraction.
// Accessors return the supplied default when the key is missing or the
// stored value cannot be converted to the requested type.
//
// Node data and editor configuration both arrive as loosely typed maps
// (decoded JSON/YAML or UI form state); Values is the one place that knows
// how to coerce them.
type Values struct {
	data map[string]any
}

// New creates Values from the given map.
// A nil map yields empty Values.
func New(data map[string]any) Values {
	if data == nil {
		data = make(map[string]any)
	}
	return Values{data: data}
}

// String returns the string value for key, or defaultVal.
func (v Values) String(key, defaultVal string) string {
	raw, ok := v.data[key]
	if !ok {
		return defaultVal
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal.
func (v Values) Bool(key string, defaultVal bool) bool {
	raw, ok := v.data[key]
	if !ok {
		return defaultVal
	}
	if b, ok := raw.(bool); ok {
		return b
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal.
//
// Accepts int, int64 and float64 without a fractional part (JSON numbers
// decode as float64).
func (v Values) Int(key string, defaultVal int) int {
	raw, ok := v.data[key]
	if !ok {
		return defaultVal
	}
	switch n := raw.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	}
	return defaultVal
}

// Float returns the float64 value for key, or defaultVal.
func (v Values) Float(key string, defaultVal float64) float64 {
	raw, ok := v.data[key]
	if !ok {
		return defaultVal
	}
	switch n := raw.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return defaultVal
}

// Duration returns the duration value for key, or defaultVal.
//
// Strings go through time.ParseDuration; bare numbers are seconds.
func (v Values) Duration(key string, defaultVal time.Duration) time.Duration {
	raw, ok := v.data[key]
	if !ok {
		return defaultVal
	}
	switch d := raw.(type) {
	case string:
		if parsed, err := time.ParseDuration(d); err == nil {
			return parsed
		}
	case time.Duration:
		return d
	case int:
		return time.Duration(d) * time.Second
	case int64:
		return time.Duration(d) * time.Second
	case float64:
		return time.Duration(d * float64(time.Second))
	}
	return defaultVal
}

// StringSlice returns the string slice for key, or defaultVal.
// A []any is accepted only when every element is a string.
func (v Values) StringSlice(key string, defaultVal []string) []string {
	raw, ok := v.data[key]
	if !ok {
		return defaultVal
	}
	switch s := raw.(type) {
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return defaultVal
			}
			out = append(out, str)
		}
		return out
	}
	return defaultVal
}

// StringMap returns a map of string values for key, or defaultVal.
// Used for things like HTTP headers. Non-string entries make the whole
// lookup fall back to defaultVal.
func (v Values) StringMap(key string, defaultVal map[string]string) map[string]string {
	raw, ok := v.data[key]
	if !ok {
		return defaultVal
	}
	switch m := raw.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			s, ok := val.(string)
			if !ok {
				return defaultVal
			}
			out[k] = s
		}
		return out
	}
	return defaultVal
}

// Map returns the nested section for key as Values.
// Missing or non-map entries yield empty Values.
func (v Values) Map(key string) Values {
	raw, ok := v.data[key]
	if !ok {
		return New(nil)
	}
	if m, ok := raw.(map[string]any); ok {
		return New(m)
	}
	return New(nil)
}

// Any returns the raw value for key, or defaultVal.
func (v Values) Any(key string, defaultVal any) any {
	raw, ok := v.data[key]
	if !ok {
		return defaultVal
	}
	return raw
}

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v.data[key]
	return ok
}

// Raw returns the underlying map. Callers must not modify it.
func (v Values) Raw() map[string]any {
	return v.data
}
