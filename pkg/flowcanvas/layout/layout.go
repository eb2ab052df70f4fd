// Package layout persists the editor's panel layout preferences.
//
// Preferences are the only durable state the editor keeps. The workflow
// itself lives in memory for the length of a session.
package layout

import (
	"errors"
	"log/slog"
)

// DefaultKey is the storage key the editor uses for its single layout.
const DefaultKey = "agentflow-layout-sizes"

// Panel size bounds, in percent of the viewport.
const (
	MinSide   = 12.0
	MaxSide   = 35.0
	MinBottom = 15.0
	MaxBottom = 50.0
)

// Sentinel errors for layout operations.
var (
	// ErrNotFound indicates no preferences are stored under the key.
	ErrNotFound = errors.New("layout preferences not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("layout store closed")

	// ErrCorrupt indicates a stored row could not be decoded.
	ErrCorrupt = errors.New("layout preferences corrupt")
)

// Sizes holds panel sizes as viewport percentages.
type Sizes struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// DefaultSizes returns the initial panel sizes.
func DefaultSizes() Sizes {
	return Sizes{Left: 18, Right: 18, Bottom: 30}
}

// Clamp returns s with every panel held inside its bounds.
func (s Sizes) Clamp() Sizes {
	return Sizes{
		Left:   clamp(s.Left, MinSide, MaxSide),
		Right:  clamp(s.Right, MinSide, MaxSide),
		Bottom: clamp(s.Bottom, MinBottom, MaxBottom),
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// Collapsed records which panels are hidden.
type Collapsed struct {
	Left   bool `json:"left"`
	Right  bool `json:"right"`
	Bottom bool `json:"bottom"`
}

// Prefs is one stored layout.
type Prefs struct {
	Sizes     Sizes     `json:"sizes"`
	Collapsed Collapsed `json:"collapsed"`
}

// DefaultPrefs returns default sizes with every panel open.
func DefaultPrefs() Prefs {
	return Prefs{Sizes: DefaultSizes()}
}

// Store persists layout preferences.
// Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the preferences stored under key.
	// Returns ErrNotFound if nothing is stored.
	Load(key string) (Prefs, error)

	// Save stores p under key, overwriting any previous value.
	// Sizes are clamped before storing.
	Save(key string, p Prefs) error

	// Delete removes key. Returns nil if it doesn't exist.
	Delete(key string) error

	// Close releases any resources.
	Close() error
}

// LoadOrDefault loads the preferences under key, falling back to
// DefaultPrefs when none are stored or the stored row cannot be read.
// Failures other than ErrNotFound are logged at warn level.
func LoadOrDefault(s Store, key string, logger *slog.Logger) Prefs {
	p, err := s.Load(key)
	if err == nil {
		p.Sizes = p.Sizes.Clamp()
		return p
	}
	if !errors.Is(err, ErrNotFound) {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("failed to load layout sizes",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return DefaultPrefs()
}
