package criteria

import (
	"maps"

	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// Ranges maps numeric attribute types to their plausible closed range.
type Ranges map[roadsys.AttributeType]geom.Range[float64]

// DefaultRanges returns the built-in plausible ranges:
//
//	length           1 .. 10000 m
//	slope          -12 .. 12 %
//	lane_count       1 .. 6
//	max_speed       30 .. 250 km/h
//	ramp_lane_count  1 .. 3
//	ramp_max_speed  30 .. 120 km/h
func DefaultRanges() Ranges {
	return Ranges{
		roadsys.AttrLength:        geom.NewRange(1.0, 10000.0),
		roadsys.AttrSlope:         geom.NewRange(-12.0, 12.0),
		roadsys.AttrLaneCount:     geom.NewRange(1.0, 6.0),
		roadsys.AttrMaxSpeed:      geom.NewRange(30.0, 250.0),
		roadsys.AttrRampLaneCount: geom.NewRange(1.0, 3.0),
		roadsys.AttrRampMaxSpeed:  geom.NewRange(30.0, 120.0),
	}
}

// With returns a copy of r with the entries of overrides applied.
func (r Ranges) With(overrides Ranges) Ranges {
	out := maps.Clone(r)
	if out == nil {
		out = Ranges{}
	}
	maps.Copy(out, overrides)
	return out
}

// Lookup returns the range for t.
func (r Ranges) Lookup(t roadsys.AttributeType) (geom.Range[float64], bool) {
	rng, ok := r[t]
	return rng, ok
}
