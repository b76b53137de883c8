package criteria

import (
	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// ValueCriterion flags segments whose numeric attribute lies outside a
// closed range. Unset values are left to completeness criteria.
type ValueCriterion struct {
	criterion
	attr roadsys.AttributeType
	rng  geom.Range[float64]
}

// NewValueCriterion returns a value criterion on attr bounded by rng.
func NewValueCriterion(name string, attr roadsys.AttributeType, rng geom.Range[float64]) (*ValueCriterion, error) {
	if !attr.DataType().IsNumeric() {
		return nil, errors.InvalidArgument("attribute %s is not numeric", attr)
	}
	c := &ValueCriterion{attr: attr, rng: rng}
	c.init(c, CriterionValue, name, c.offenders)
	return c, nil
}

// Attribute returns the checked attribute.
func (c *ValueCriterion) Attribute() roadsys.AttributeType { return c.attr }

// Range returns the plausible range.
func (c *ValueCriterion) Range() geom.Range[float64] { return c.rng }

// SetAttribute switches the checked attribute and its range.
func (c *ValueCriterion) SetAttribute(attr roadsys.AttributeType, rng geom.Range[float64]) error {
	if !attr.DataType().IsNumeric() {
		return errors.InvalidArgument("attribute %s is not numeric", attr)
	}
	c.attr = attr
	c.rng = rng
	c.reconfigured()
	return nil
}

// SetRange replaces the plausible range.
func (c *ValueCriterion) SetRange(rng geom.Range[float64]) {
	c.rng = rng
	c.reconfigured()
}

func (c *ValueCriterion) offenders(s *roadsys.Segment) [][]*roadsys.Segment {
	v, ok := asFloat(s.Attribute(c.attr))
	if !ok || c.rng.Contains(v) {
		return nil
	}
	return [][]*roadsys.Segment{{s}}
}
