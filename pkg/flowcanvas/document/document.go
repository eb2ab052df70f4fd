// Package document imports and exports workflows as versioned JSON or
// YAML documents.
//
// A document is an envelope around one workflow:
//
//	version: 1
//	workflow:
//	  id: wf-1
//	  name: Customer Support Agent
//	  nodes: [...]
//	  edges: [...]
//
// Decoding does not validate the graph. Run flowcanvas.Audit on the result
// before loading it into a store.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas"
)

// Version is the envelope version written by Encode and accepted by Decode.
const Version = 1

// Format selects the document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// Sentinel errors for document operations.
var (
	// ErrVersionMismatch indicates the document was written by an
	// incompatible version.
	ErrVersionMismatch = errors.New("document version mismatch")

	// ErrNoWorkflow indicates the envelope carries no workflow.
	ErrNoWorkflow = errors.New("document has no workflow")

	// ErrUnknownFormat indicates an unsupported format or file extension.
	ErrUnknownFormat = errors.New("unknown document format")
)

type envelope struct {
	Version  int                  `json:"version" yaml:"version"`
	Workflow *flowcanvas.Workflow `json:"workflow" yaml:"workflow"`
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
	}
}

// Encode serializes w in the given format.
func Encode(w *flowcanvas.Workflow, f Format) ([]byte, error) {
	if w == nil {
		return nil, ErrNoWorkflow
	}
	env := envelope{Version: Version, Workflow: w}

	switch f {
	case JSON:
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Decode parses a document in the given format.
func Decode(data []byte, f Format) (*flowcanvas.Workflow, error) {
	var env envelope
	switch f {
	case JSON:
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	if env.Version != Version {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, env.Version, Version)
	}
	if env.Workflow == nil {
		return nil, ErrNoWorkflow
	}
	return env.Workflow, nil
}

// Load reads and decodes the document at path.
func Load(path string) (*flowcanvas.Workflow, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	w, err := Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Save encodes w and writes it to path, replacing any existing file.
func Save(path string, w *flowcanvas.Workflow) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(w, f)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
