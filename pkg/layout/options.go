package layout

import "github.com/davidblanc347/parodesign/pkg/errors"

// Direction selects which way ranks flow across the drawing.
type Direction string

// Supported layout directions.
const (
	DirectionTopBottom Direction = "TB" // ranks flow downward (default)
	DirectionBottomTop Direction = "BT" // ranks flow upward
	DirectionLeftRight Direction = "LR" // ranks flow rightward
	DirectionRightLeft Direction = "RL" // ranks flow leftward
)

// Default layout dimensions.
const (
	DefaultNodeSpacing = 50.0  // gap between nodes within a rank
	DefaultRankSpacing = 100.0 // gap between consecutive ranks
	DefaultNodeWidth   = 180.0 // uniform node box width
	DefaultNodeHeight  = 80.0  // uniform node box height
)

// Options configures the layout engine. The zero value is not usable
// directly - call [Options.WithDefaults] (or start from [DefaultOptions])
// so every field carries its documented default. Options is always threaded
// explicitly into Layout; there is no package-level mutable configuration.
type Options struct {
	Direction   Direction `json:"direction,omitempty" toml:"direction"`
	NodeSpacing float64   `json:"node_spacing,omitempty" toml:"node_spacing"`
	RankSpacing float64   `json:"rank_spacing,omitempty" toml:"rank_spacing"`
	NodeWidth   float64   `json:"node_width,omitempty" toml:"node_width"`
	NodeHeight  float64   `json:"node_height,omitempty" toml:"node_height"`
}

// DefaultOptions returns the documented defaults: top-to-bottom flow,
// 50/100 spacing, 180×80 node boxes.
func DefaultOptions() Options {
	return Options{
		Direction:   DirectionTopBottom,
		NodeSpacing: DefaultNodeSpacing,
		RankSpacing: DefaultRankSpacing,
		NodeWidth:   DefaultNodeWidth,
		NodeHeight:  DefaultNodeHeight,
	}
}

// WithDefaults returns a copy of o with every unset field replaced by its
// default. Explicitly set fields are preserved.
func (o Options) WithDefaults() Options {
	if o.Direction == "" {
		o.Direction = DirectionTopBottom
	}
	if o.NodeSpacing <= 0 {
		o.NodeSpacing = DefaultNodeSpacing
	}
	if o.RankSpacing <= 0 {
		o.RankSpacing = DefaultRankSpacing
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	return o
}

// Validate checks that the direction is one of the supported values.
// Spacing and size fields need no validation: non-positive values are
// replaced by defaults in WithDefaults.
func (o Options) Validate() error {
	switch o.Direction {
	case "", DirectionTopBottom, DirectionBottomTop, DirectionLeftRight, DirectionRightLeft:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidDirection, "invalid direction: %q (must be one of: TB, BT, LR, RL)", o.Direction)
}

// Horizontal reports whether ranks flow along the x axis (LR or RL).
func (d Direction) Horizontal() bool {
	return d == DirectionLeftRight || d == DirectionRightLeft
}

// Reversed reports whether the rank axis runs against its natural
// screen direction (BT or RL).
func (d Direction) Reversed() bool {
	return d == DirectionBottomTop || d == DirectionRightLeft
}
