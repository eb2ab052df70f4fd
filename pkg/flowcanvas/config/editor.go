package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Editor is the typed configuration for an editing session.
type Editor struct {
	Workflow   WorkflowDefaults
	History    HistoryConfig
	Layout     LayoutConfig
	Simulation SimulationConfig
	Log        LogConfig
}

// WorkflowDefaults seeds new workflows.
type WorkflowDefaults struct {
	Name        string
	Description string
	Model       string
	Temperature float64
	MaxTokens   int
}

// HistoryConfig bounds undo history. Limit 0 means unlimited.
type HistoryConfig struct {
	Limit int
}

// LayoutConfig locates the layout preference database.
// An empty Path keeps preferences in memory.
type LayoutConfig struct {
	Path string
	Key  string
}

// SimulationConfig controls the mock runner.
type SimulationConfig struct {
	StepDelay time.Duration
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

// DefaultEditor returns the configuration used when no file is given.
// Workflow defaults mirror the sample "Customer Support Agent" workflow.
func DefaultEditor() Editor {
	return Editor{
		Workflow: WorkflowDefaults{
			Name:        "Customer Support Agent",
			Description: "AI-powered customer support workflow",
			Model:       "GPT-4",
			Temperature: 0.7,
			MaxTokens:   2000,
		},
		Layout: LayoutConfig{
			Key: "agentflow-layout-sizes",
		},
		Simulation: SimulationConfig{
			StepDelay: time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// EditorFrom builds an Editor from loosely typed values, falling back to
// DefaultEditor for anything missing or malformed.
//
// Expected shape:
//
//	workflow:
//	  name: Support Bot
//	  model: GPT-4
//	  temperature: 0.7
//	  max_tokens: 2000
//	history:
//	  limit: 100
//	layout:
//	  path: ./layout.db
//	simulation:
//	  step_delay: 500ms
//	log:
//	  level: debug
//	  format: json
func EditorFrom(v Values) Editor {
	def := DefaultEditor()

	wf := v.Map("workflow")
	hist := v.Map("history")
	lay := v.Map("layout")
	sim := v.Map("simulation")
	logv := v.Map("log")

	return Editor{
		Workflow: WorkflowDefaults{
			Name:        wf.String("name", def.Workflow.Name),
			Description: wf.String("description", def.Workflow.Description),
			Model:       wf.String("model", def.Workflow.Model),
			Temperature: wf.Float("temperature", def.Workflow.Temperature),
			MaxTokens:   wf.Int("max_tokens", def.Workflow.MaxTokens),
		},
		History: HistoryConfig{
			Limit: hist.Int("limit", def.History.Limit),
		},
		Layout: LayoutConfig{
			Path: lay.String("path", def.Layout.Path),
			Key:  lay.String("key", def.Layout.Key),
		},
		Simulation: SimulationConfig{
			StepDelay: sim.Duration("step_delay", def.Simulation.StepDelay),
		},
		Log: LogConfig{
			Level:  logv.String("level", def.Log.Level),
			Format: logv.String("format", def.Log.Format),
		},
	}
}

// LoadEditor reads an Editor configuration file.
func LoadEditor(path string) (Editor, error) {
	v, err := FromFile(path)
	if err != nil {
		return Editor{}, err
	}
	ed := EditorFrom(v)
	if err := ed.Validate(); err != nil {
		return Editor{}, fmt.Errorf("config %s: %w", path, err)
	}
	return ed, nil
}

// Validate rejects values no component can work with.
func (e Editor) Validate() error {
	if e.History.Limit < 0 {
		return fmt.Errorf("history.limit must be >= 0, got %d", e.History.Limit)
	}
	if e.Simulation.StepDelay < 0 {
		return fmt.Errorf("simulation.step_delay must be >= 0, got %s", e.Simulation.StepDelay)
	}
	if _, err := ParseLevel(e.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(e.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", e.Log.Format)
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger builds the slog logger described by Log, writing to w.
func (e Editor) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(e.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(e.Log.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
