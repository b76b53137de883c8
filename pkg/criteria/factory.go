package criteria

import (
	"fmt"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// Factory creates criteria with default settings and sequential names.
// New criteria apply to no segment types until configured.
type Factory struct {
	ranges   Ranges
	counters map[CriterionType]int
}

// NewFactory returns a factory bounding value criteria by ranges. A nil
// map uses DefaultRanges.
func NewFactory(ranges Ranges) *Factory {
	if ranges == nil {
		ranges = DefaultRanges()
	}
	return &Factory{ranges: ranges, counters: make(map[CriterionType]int)}
}

// Ranges returns the ranges value criteria are created with.
func (f *Factory) Ranges() Ranges { return f.ranges }

// Create returns a new criterion of type t. Value criteria check the lane
// count; compatibility criteria require equal lane counts.
func (f *Factory) Create(t CriterionType) (Criterion, error) {
	if _, ok := criterionTypeNames[t]; !ok {
		return nil, errors.InvalidArgument("unknown criterion type %d", int(t))
	}
	f.counters[t]++
	name := fmt.Sprintf("%s %d", displayName(t), f.counters[t])

	switch t {
	case CriterionCompleteness:
		return NewCompletenessCriterion(name), nil
	case CriterionValue:
		return f.NewValue(name, roadsys.AttrLaneCount)
	case CriterionCompatibility:
		return NewCompatibilityCriterion(name, roadsys.AttrLaneCount, ValidationEquals, 0)
	default:
		return NewConnectorCriterion(name), nil
	}
}

// NewValue returns a value criterion on attr bounded by the factory's
// range for it.
func (f *Factory) NewValue(name string, attr roadsys.AttributeType) (*ValueCriterion, error) {
	rng, ok := f.ranges.Lookup(attr)
	if !ok {
		return nil, errors.NotFound("no value range for attribute %s", attr)
	}
	return NewValueCriterion(name, attr, rng)
}

func displayName(t CriterionType) string {
	switch t {
	case CriterionCompleteness:
		return "Completeness"
	case CriterionValue:
		return "Value"
	case CriterionCompatibility:
		return "Compatibility"
	default:
		return "Connector"
	}
}
