// Package registry provides a global registry of course factories.
// Courses register themselves in init() functions, so the CLI and the SSH
// server can list and instantiate them by ID.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/marble-run/internal/core"
)

// ErrUnknownCourse is returned by Create for an unregistered ID.
var ErrUnknownCourse = errors.New("registry: unknown course")

// Game is the interface every course implements.
// Courses hold pure simulation state with no terminal dependencies.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "marble", "marble_sprint").
	// Used for CLI commands and best-time storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh course and run.
	// The RuntimeConfig provides screen size, tick rate and seeds.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current view into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current run state.
	State() core.GameState
}

// Describer is implemented by courses that carry a one-line description.
type Describer interface {
	Description() string
}

// CourseInfo contains metadata about a registered course.
type CourseInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a course.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]CourseInfo)
	mu        sync.RWMutex
)

// Register adds a course factory to the registry.
// Panics if a course with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: course %q already registered", id))
	}

	factories[id] = f

	// Read metadata from a throwaway instance
	g := f()
	info := CourseInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	infos[id] = info
}

// List returns information about all registered courses, sorted by ID.
func List() []CourseInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]CourseInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new course by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCourse, id)
	}

	return f(), nil
}

// Exists checks if a course with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// IDs returns the registered course IDs, sorted.
func IDs() []string {
	list := List()
	ids := make([]string, len(list))
	for i, info := range list {
		ids[i] = info.ID
	}
	return ids
}
