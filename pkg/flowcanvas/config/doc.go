/*
Package config provides typed access to loosely structured configuration.

# Values

Values wraps a map[string]any and extracts typed values with defaults.
Missing keys and type mismatches never fail; they yield the default.

	v := config.New(map[string]any{
	    "url":     "https://api.example.com",
	    "timeout": "30s",
	    "headers": map[string]any{"Accept": "application/json"},
	})

	url := v.String("url", "")
	timeout := v.Duration("timeout", 10*time.Second)
	headers := v.StringMap("headers", nil)

Node data in a workflow is decoded through Values, so the coercion rules
(JSON numbers arrive as float64, YAML integers as int) live in one place.

# Editor Configuration

Editor is the typed configuration for an editing session: workflow
defaults, undo history limit, where layout preferences are stored, the
simulator step delay, and logging.

	ed, err := config.LoadEditor("flowcanvas.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	logger := ed.NewLogger(os.Stderr)

Files are YAML (.yaml, .yml) or JSON (.json).
*/
package config
