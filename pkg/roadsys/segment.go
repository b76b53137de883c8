package roadsys

import (
	"fmt"
	"slices"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/observable"
)

// Segment is a road piece. Its connectors are fixed at construction by the
// segment type and positioned relative to the segment's center, so moving
// the segment never rewrites connector state.
type Segment struct {
	element

	typ        SegmentType
	center     geom.Position
	rotation   float64
	attributes map[AttributeType]any
	connectors []*Connector
}

func newSegment(typ SegmentType, name string, layout map[ConnectorType]geom.Position) *Segment {
	s := &Segment{
		typ:        typ,
		attributes: make(map[AttributeType]any),
	}
	s.init(s, name)
	for _, ct := range typ.ConnectorTypes() {
		s.connectors = append(s.connectors, &Connector{typ: ct, segment: s, relative: layout[ct]})
	}
	return s
}

// Kind returns KindSegment.
func (s *Segment) Kind() ElementKind { return KindSegment }

// Type returns the segment type.
func (s *Segment) Type() SegmentType { return s.typ }

// Center returns the absolute center position.
func (s *Segment) Center() geom.Position { return s.center }

// Rotation returns the rotation in degrees, always within [0, 360).
func (s *Segment) Rotation() float64 { return s.rotation }

func (s *Segment) String() string {
	return fmt.Sprintf("%s %q", s.typ, s.name)
}

// Connectors returns the segment's connectors in layout order.
func (s *Segment) Connectors() []*Connector { return slices.Clone(s.connectors) }

// Connector returns the connector of the given type, if the segment has one.
func (s *Segment) Connector(ct ConnectorType) (*Connector, bool) {
	for _, c := range s.connectors {
		if c.typ == ct {
			return c, true
		}
	}
	return nil, false
}

// ConnectorAt returns the connector at layout index i.
func (s *Segment) ConnectorAt(i int) (*Connector, error) {
	if i < 0 || i >= len(s.connectors) {
		return nil, errors.NotFound("segment %s has no connector %d", s.id, i)
	}
	return s.connectors[i], nil
}

// ConnectorIndex returns the layout index of c.
func (s *Segment) ConnectorIndex(c *Connector) (int, error) {
	if i := slices.Index(s.connectors, c); i >= 0 {
		return i, nil
	}
	return -1, errors.NotFound("connector does not belong to segment %s", s.id)
}

// HasAttribute reports whether the segment carries attribute t at all.
func (s *Segment) HasAttribute(t AttributeType) bool {
	return slices.Contains(elementAttributes, t) || slices.Contains(SegmentAttributeTypes(s.typ), t)
}

// Attribute returns the value of t, or nil if unset or not carried.
func (s *Segment) Attribute(t AttributeType) any {
	switch t {
	case AttrName:
		return s.name
	case AttrComment:
		if s.comment == "" {
			return nil
		}
		return s.comment
	}
	return s.attributes[t]
}

// SetAttribute stores v for t and notifies observers. v is converted to the
// attribute's data type; nil unsets the attribute.
func (s *Segment) SetAttribute(t AttributeType, v any) error {
	if !s.HasAttribute(t) {
		return errors.InvalidArgument("%s segments have no attribute %s", s.typ, t)
	}
	cv, err := CoerceValue(t.DataType(), v)
	if err != nil {
		return err
	}
	switch t {
	case AttrName:
		if cv == nil {
			return errors.InvalidArgument("name cannot be unset")
		}
		return s.SetName(cv.(string))
	case AttrComment:
		c, _ := cv.(string)
		s.SetComment(c)
		return nil
	}
	if cv == nil {
		delete(s.attributes, t)
	} else {
		s.attributes[t] = cv
	}
	s.NotifyChange()
	return nil
}

// AttributeAccessors returns accessors for name, comment and every data
// attribute of the segment type.
func (s *Segment) AttributeAccessors() []*AttributeAccessor {
	accessors := s.commonAccessors()
	for _, t := range SegmentAttributeTypes(s.typ) {
		accessors = append(accessors, NewAttributeAccessor(t,
			func() any { return s.attributes[t] },
			func(v any) error { return s.SetAttribute(t, v) }))
	}
	return accessors
}

// Move translates the segment. Every connector announces its move, so a
// road system in auto-break mode severs the segment's connections.
func (s *Segment) Move(m geom.Movement) {
	s.center = s.center.Translate(m)
	s.connectorsMoved()
}

func (s *Segment) rotateAround(pivot geom.Position, degrees float64) {
	s.center = s.center.Rotate(pivot, degrees)
	s.rotation = geom.NormalizeDegrees(s.rotation + degrees)
	s.connectorsMoved()
}

func (s *Segment) connectorsMoved() {
	for _, c := range s.connectors {
		c.observers.NotifyChange(c)
	}
	s.NotifyChange()
}

// Connector is an endpoint of a segment that may take part in at most one
// connection.
type Connector struct {
	typ       ConnectorType
	segment   *Segment
	relative  geom.Position
	observers observable.Unit[*Connector]
}

// Type returns the connector type.
func (c *Connector) Type() ConnectorType { return c.typ }

// Segment returns the owning segment.
func (c *Connector) Segment() *Segment { return c.segment }

// RelativePosition returns the unrotated offset from the segment center.
func (c *Connector) RelativePosition() geom.Position { return c.relative }

// Position returns the absolute position, derived from the segment's
// center and rotation at call time.
func (c *Connector) Position() geom.Position {
	s := c.segment
	abs := s.center.Translate(geom.Origin.To(c.relative))
	return abs.Rotate(s.center, s.rotation)
}

func (c *Connector) String() string {
	return fmt.Sprintf("%s of %s", c.typ, c.segment)
}

// Subscribe registers o for move notifications.
func (c *Connector) Subscribe(o observable.UnitObserver[*Connector]) { c.observers.Subscribe(o) }

// Unsubscribe removes o.
func (c *Connector) Unsubscribe(o observable.UnitObserver[*Connector]) { c.observers.Unsubscribe(o) }
