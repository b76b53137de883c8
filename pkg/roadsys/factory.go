package roadsys

import (
	"fmt"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
)

// SegmentWidth is the canvas distance between a segment's entry and exit
// connectors.
const SegmentWidth = 100.0

// rampOffset is the vertical canvas offset of ramp connectors.
const rampOffset = 40.0

var connectorLayout = map[ConnectorType]geom.Position{
	ConnectorEntry:     {X: -SegmentWidth / 2},
	ConnectorExit:      {X: SegmentWidth / 2},
	ConnectorRampEntry: {X: -SegmentWidth / 4, Y: rampOffset},
	ConnectorRampExit:  {X: SegmentWidth / 4, Y: rampOffset},
}

// SegmentDefaults are the attribute values a freshly created segment starts
// with. Nil pointers leave the attribute unset, which completeness criteria
// report until someone fills it in.
type SegmentDefaults struct {
	Length        float64
	Slope         float64
	LaneCount     int
	MaxSpeed      *int
	Conurbation   bool
	RampLaneCount int
	RampMaxSpeed  *int
}

// DefaultSegmentDefaults returns the built-in defaults: a 100 m flat
// two-lane segment outside built-up areas with single-lane ramps and no
// speed limits set.
func DefaultSegmentDefaults() SegmentDefaults {
	return SegmentDefaults{
		Length:        100,
		LaneCount:     2,
		RampLaneCount: 1,
	}
}

// SegmentFactory creates segments with default geometry and attributes and
// hands out sequential display names per segment type.
type SegmentFactory struct {
	defaults SegmentDefaults
	counters map[SegmentType]int
	groups   int
}

// NewSegmentFactory returns a factory applying d to every new segment.
func NewSegmentFactory(d SegmentDefaults) *SegmentFactory {
	return &SegmentFactory{defaults: d, counters: make(map[SegmentType]int)}
}

// Defaults returns the defaults applied by the factory.
func (f *SegmentFactory) Defaults() SegmentDefaults { return f.defaults }

// Create builds an unregistered segment of type t centered at the origin.
// The segment has no observers yet; nothing is notified.
func (f *SegmentFactory) Create(t SegmentType) (*Segment, error) {
	if !t.Valid() {
		return nil, errors.InvalidArgument("unknown segment type %d", int(t))
	}
	f.counters[t]++
	s := newSegment(t, fmt.Sprintf("%s %d", displayName(t), f.counters[t]), connectorLayout)

	d := f.defaults
	s.attributes[AttrLength] = d.Length
	s.attributes[AttrSlope] = d.Slope
	s.attributes[AttrLaneCount] = d.LaneCount
	s.attributes[AttrConurbation] = d.Conurbation
	if d.MaxSpeed != nil {
		s.attributes[AttrMaxSpeed] = *d.MaxSpeed
	}
	if t.IsRamp() {
		s.attributes[AttrRampLaneCount] = d.RampLaneCount
		if d.RampMaxSpeed != nil {
			s.attributes[AttrRampMaxSpeed] = *d.RampMaxSpeed
		}
	}
	return s, nil
}

func (f *SegmentFactory) nextGroupName() string {
	f.groups++
	return fmt.Sprintf("Group %d", f.groups)
}

func displayName(t SegmentType) string {
	switch t {
	case SegmentEntrance:
		return "Entrance"
	case SegmentExit:
		return "Exit"
	default:
		return "Segment"
	}
}
