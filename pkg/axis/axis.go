// Package axis describes the coordinate axes attached to lineage graph
// nodes and the selection of display axes for a viewer.
//
// Every node in a lineage graph carries one value per axis. Exactly one
// axis is typed "time"; the rest are typed "space". Display selection picks
// the axes a viewer can show (at most four, time always first).
package axis

import (
	"errors"
	"fmt"
)

// MaxDisplayAxes is the upper bound on axes surfaced to a viewer: the time
// axis plus at most three spatial dimensions.
const MaxDisplayAxes = 4

var (
	// ErrNoAxes is returned by [Axes.Validate] for an empty axis list.
	ErrNoAxes = errors.New("no axes declared")

	// ErrNoTimeAxis is returned by [Axes.Validate] when no axis is typed
	// "time". Tracklet ordering requires a time coordinate.
	ErrNoTimeAxis = errors.New("no time axis declared")

	// ErrMultipleTimeAxes is returned by [Axes.Validate] when more than one
	// axis is typed "time".
	ErrMultipleTimeAxes = errors.New("more than one time axis declared")

	// ErrNoSpaceAxis is returned by [Axes.Validate] when no axis is typed
	// "space". A lineage graph without spatial coordinates cannot be viewed.
	ErrNoSpaceAxis = errors.New("no space axis declared")
)

// Type classifies an axis as temporal or spatial.
type Type string

const (
	// TypeTime marks the time coordinate.
	TypeTime Type = "time"
	// TypeSpace marks a spatial coordinate.
	TypeSpace Type = "space"
)

// Axis is one named coordinate dimension on a node.
type Axis struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
	Unit string `json:"unit,omitempty"`
}

// Axes is an ordered list of axis declarations, as supplied by file
// metadata. Order is meaningful: spatial display order follows declaration
// order.
type Axes []Axis

// Validate checks that the axis list can support tracklet decomposition and
// display: exactly one time axis and at least one space axis. Unknown axis
// types are rejected.
func (a Axes) Validate() error {
	if len(a) == 0 {
		return ErrNoAxes
	}
	var timeCount, spaceCount int
	for _, ax := range a {
		switch ax.Type {
		case TypeTime:
			timeCount++
		case TypeSpace:
			spaceCount++
		default:
			return fmt.Errorf("axis %q has unknown type %q", ax.Name, ax.Type)
		}
		if ax.Name == "" {
			return fmt.Errorf("axis of type %q has empty name", ax.Type)
		}
	}
	if timeCount == 0 {
		return ErrNoTimeAxis
	}
	if timeCount > 1 {
		return ErrMultipleTimeAxes
	}
	if spaceCount == 0 {
		return ErrNoSpaceAxis
	}
	return nil
}

// Time returns the time axis and true, or a zero Axis and false if none is
// declared.
func (a Axes) Time() (Axis, bool) {
	for _, ax := range a {
		if ax.Type == TypeTime {
			return ax, true
		}
	}
	return Axis{}, false
}

// Spatial returns the space-typed axes in declaration order.
func (a Axes) Spatial() Axes {
	var spatial Axes
	for _, ax := range a {
		if ax.Type == TypeSpace {
			spatial = append(spatial, ax)
		}
	}
	return spatial
}

// Names returns the axis names in declaration order.
func (a Axes) Names() []string {
	names := make([]string, len(a))
	for i, ax := range a {
		names[i] = ax.Name
	}
	return names
}

// Display selects the axes surfaced to a viewer: the time axis first, then
// spatial axes in declaration order, truncated to [MaxDisplayAxes] in
// total. The time axis is always retained.
func (a Axes) Display() Axes {
	display := make(Axes, 0, MaxDisplayAxes)
	if t, ok := a.Time(); ok {
		display = append(display, t)
	}
	for _, ax := range a.Spatial() {
		if len(display) == MaxDisplayAxes {
			break
		}
		display = append(display, ax)
	}
	return display
}
