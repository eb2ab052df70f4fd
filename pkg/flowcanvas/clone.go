package flowcanvas

import (
	"github.com/mitchellh/copystructure"
)

// CloneData returns a deep copy of a node data mapping.
func CloneData(m map[string]any) map[string]any {
	return cloneMap(m)
}

// cloneMap deep-copies node data. Values of any shape are copied
// recursively, so no slice, map or pointer is shared with the source.
func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies v. Values copystructure cannot walk (channels,
// funcs) are shared as-is.
func cloneValue(v any) any {
	if v == nil {
		return nil
	}
	c, err := copystructure.Copy(v)
	if err != nil {
		return v
	}
	return c
}
