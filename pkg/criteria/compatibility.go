package criteria

import (
	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// CompatibilityCriterion compares an attribute of a segment with the same
// attribute of every connected segment. A pair is compatible when the
// strategy holds in both argument orders. Neighbours the criterion does
// not apply to, and unset values, are not compared.
type CompatibilityCriterion struct {
	criterion
	attr        roadsys.AttributeType
	strategy    ValidationStrategy[any]
	discrepancy float64
}

// NewCompatibilityCriterion returns a compatibility criterion comparing attr
// with validation v. It fails if v cannot compare values of attr.
func NewCompatibilityCriterion(name string, attr roadsys.AttributeType, v ValidationType, discrepancy float64) (*CompatibilityCriterion, error) {
	strategy, err := strategyFor(attr, v)
	if err != nil {
		return nil, err
	}
	if discrepancy < 0 {
		return nil, errors.InvalidArgument("legal discrepancy %v is negative", discrepancy)
	}
	c := &CompatibilityCriterion{attr: attr, strategy: strategy, discrepancy: discrepancy}
	c.init(c, CriterionCompatibility, name, c.offenders)
	return c, nil
}

func strategyFor(attr roadsys.AttributeType, v ValidationType) (ValidationStrategy[any], error) {
	if !v.IsCompatibleWith(attr.DataType()) {
		return nil, errors.InvalidArgument("%s validation cannot compare %s values", v, attr.DataType())
	}
	return NewAttributeStrategy(v)
}

// Attribute returns the compared attribute.
func (c *CompatibilityCriterion) Attribute() roadsys.AttributeType { return c.attr }

// ValidationType returns the type of the comparison strategy.
func (c *CompatibilityCriterion) ValidationType() ValidationType { return c.strategy.Type() }

// LegalDiscrepancy returns the tolerated numeric difference.
func (c *CompatibilityCriterion) LegalDiscrepancy() float64 { return c.discrepancy }

// SetAttribute switches the compared attribute. The current validation
// type must be able to compare it.
func (c *CompatibilityCriterion) SetAttribute(attr roadsys.AttributeType) error {
	if _, err := strategyFor(attr, c.strategy.Type()); err != nil {
		return err
	}
	c.attr = attr
	c.reconfigured()
	return nil
}

// SetValidationType switches the comparison strategy.
func (c *CompatibilityCriterion) SetValidationType(v ValidationType) error {
	strategy, err := strategyFor(c.attr, v)
	if err != nil {
		return err
	}
	c.strategy = strategy
	c.reconfigured()
	return nil
}

// SetLegalDiscrepancy sets the tolerated numeric difference. Strategies
// that do not support discrepancies ignore it.
func (c *CompatibilityCriterion) SetLegalDiscrepancy(d float64) error {
	if d < 0 {
		return errors.InvalidArgument("legal discrepancy %v is negative", d)
	}
	c.discrepancy = d
	c.reconfigured()
	return nil
}

func (c *CompatibilityCriterion) offenders(s *roadsys.Segment) [][]*roadsys.Segment {
	a := s.Attribute(c.attr)
	if a == nil {
		return nil
	}
	var out [][]*roadsys.Segment
	for _, n := range c.rs.AdjacentSegments(s) {
		if !c.IsApplicable(n) {
			continue
		}
		b := n.Attribute(c.attr)
		if b == nil {
			continue
		}
		if !validateBoth(c.strategy, a, b, c.discrepancy) {
			out = append(out, []*roadsys.Segment{s, n})
		}
	}
	return out
}

// ConnectorCriterion checks that every connection joins connector types
// that accept each other in both directions.
type ConnectorCriterion struct {
	criterion
	strategy DirectionValidationStrategy
}

// NewConnectorCriterion returns a connector criterion applying to no
// segment types.
func NewConnectorCriterion(name string) *ConnectorCriterion {
	c := &ConnectorCriterion{}
	c.init(c, CriterionConnector, name, c.offenders)
	return c
}

// ValidationType returns ValidationDirection.
func (c *ConnectorCriterion) ValidationType() ValidationType { return c.strategy.Type() }

func (c *ConnectorCriterion) offenders(s *roadsys.Segment) [][]*roadsys.Segment {
	var out [][]*roadsys.Segment
	for _, conn := range c.rs.ConnectionsOf(s) {
		own, err := conn.ConnectorOf(s)
		if err != nil {
			continue
		}
		other, err := conn.Other(own)
		if err != nil || !c.IsApplicable(other.Segment()) {
			continue
		}
		if !validateBoth[roadsys.ConnectorType](c.strategy, own.Type(), other.Type(), 0) {
			out = append(out, []*roadsys.Segment{s, other.Segment()})
		}
	}
	return out
}
