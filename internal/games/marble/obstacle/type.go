// Package obstacle describes the course blocks and how their moving parts
// animate over time.
//
// Every pose here is a pure function of the block's base position, its random
// phase and speed, and the shared simulation clock. Nothing in this package
// reads or writes dynamic bodies.
package obstacle

import (
	"fmt"
	"strings"
)

// Type is the kind of a course block.
type Type int

const (
	Spinner Type = iota
	Limbo
	Axe
	Slider
	Start
	Goal
)

var typeNames = map[Type]string{
	Spinner: "spinner",
	Limbo:   "limbo",
	Axe:     "axe",
	Slider:  "slider",
	Start:   "start",
	Goal:    "goal",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Placeable reports whether t may fill a course slot between start and goal.
func (t Type) Placeable() bool {
	switch t {
	case Spinner, Limbo, Axe, Slider:
		return true
	default:
		return false
	}
}

// Valid reports whether t is a known block type.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// CourseTypes returns the default slot types in their canonical order.
func CourseTypes() []Type {
	return []Type{Spinner, Axe, Limbo, Slider}
}

// ParseType resolves a block name such as "axe".
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("obstacle: unknown type %q", name)
}

// MarshalText encodes t by name.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("obstacle: cannot marshal %s", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a block name.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
