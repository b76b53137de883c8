package io

import (
	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

type document struct {
	Segments    []segment    `json:"segments" yaml:"segments"`
	Groups      []group      `json:"groups,omitempty" yaml:"groups,omitempty"`
	Connections []connection `json:"connections" yaml:"connections"`
}

type segment struct {
	ID         string         `json:"id" yaml:"id"`
	Type       string         `json:"type" yaml:"type"`
	Name       string         `json:"name" yaml:"name"`
	Comment    string         `json:"comment,omitempty" yaml:"comment,omitempty"`
	Center     geom.Position  `json:"center" yaml:"center"`
	Rotation   float64        `json:"rotation" yaml:"rotation"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

type group struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Members []string `json:"members" yaml:"members"`
}

type endpoint struct {
	Segment   string `json:"segment" yaml:"segment"`
	Connector int    `json:"connector" yaml:"connector"`
}

type connection struct {
	From endpoint `json:"from" yaml:"from"`
	To   endpoint `json:"to" yaml:"to"`
}

func toDocument(rs *roadsys.RoadSystem) (document, error) {
	var doc document
	for _, s := range rs.Segments() {
		seg := segment{
			ID:       s.ID().String(),
			Type:     s.Type().String(),
			Name:     s.Name(),
			Comment:  s.Comment(),
			Center:   s.Center(),
			Rotation: s.Rotation(),
		}
		for _, t := range roadsys.SegmentAttributeTypes(s.Type()) {
			if v := s.Attribute(t); v != nil {
				if seg.Attributes == nil {
					seg.Attributes = make(map[string]any)
				}
				seg.Attributes[t.String()] = v
			}
		}
		doc.Segments = append(doc.Segments, seg)
	}

	for _, g := range rs.Groups() {
		gr := group{ID: g.ID().String(), Name: g.Name(), Comment: g.Comment(), Members: []string{}}
		for _, e := range g.Elements() {
			gr.Members = append(gr.Members, e.ID().String())
		}
		doc.Groups = append(doc.Groups, gr)
	}

	doc.Connections = []connection{}
	for _, conn := range rs.Connections() {
		a, b := conn.Connectors()
		from, err := toEndpoint(a)
		if err != nil {
			return document{}, err
		}
		to, err := toEndpoint(b)
		if err != nil {
			return document{}, err
		}
		doc.Connections = append(doc.Connections, connection{From: from, To: to})
	}
	return doc, nil
}

func toEndpoint(c *roadsys.Connector) (endpoint, error) {
	i, err := c.Segment().ConnectorIndex(c)
	if err != nil {
		return endpoint{}, err
	}
	return endpoint{Segment: c.Segment().ID().String(), Connector: i}, nil
}

// apply replays doc into rs. Elements are created in document order;
// document IDs are only used to resolve references.
func (doc document) apply(rs *roadsys.RoadSystem) error {
	elements := make(map[string]roadsys.Element, len(doc.Segments)+len(doc.Groups))
	segments := make(map[string]*roadsys.Segment, len(doc.Segments))

	for i, sd := range doc.Segments {
		s, err := sd.create(rs)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "segments[%d]", i)
		}
		if _, dup := elements[sd.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "segments[%d]: duplicate id %q", i, sd.ID)
		}
		elements[sd.ID] = s
		segments[sd.ID] = s
	}

	for i, gd := range doc.Groups {
		members := make([]roadsys.Element, 0, len(gd.Members))
		for _, id := range gd.Members {
			e, ok := elements[id]
			if !ok {
				return errors.New(errors.ErrCodeInvalidInput, "groups[%d]: unknown member %q", i, id)
			}
			members = append(members, e)
		}
		g, err := rs.CreateGroup(members...)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "groups[%d]", i)
		}
		if gd.Name != "" {
			if err := g.SetName(gd.Name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "groups[%d]", i)
			}
		}
		g.SetComment(gd.Comment)
		if _, dup := elements[gd.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "groups[%d]: duplicate id %q", i, gd.ID)
		}
		elements[gd.ID] = g
	}

	for i, cd := range doc.Connections {
		a, err := cd.From.resolve(segments)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "connections[%d].from", i)
		}
		b, err := cd.To.resolve(segments)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "connections[%d].to", i)
		}
		if _, err := rs.ConnectConnectors(a, b); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "connections[%d]", i)
		}
	}
	return nil
}

func (sd segment) create(rs *roadsys.RoadSystem) (*roadsys.Segment, error) {
	st, err := roadsys.ParseSegmentType(sd.Type)
	if err != nil {
		return nil, err
	}
	s, err := rs.CreateSegment(st)
	if err != nil {
		return nil, err
	}
	if sd.Name != "" {
		if err := s.SetName(sd.Name); err != nil {
			return nil, err
		}
	}
	if sd.Comment != "" {
		s.SetComment(sd.Comment)
	}

	// Attributes absent from the document are unset, not defaulted.
	present := make(map[roadsys.AttributeType]any, len(sd.Attributes))
	for name, v := range sd.Attributes {
		t, err := roadsys.ParseAttributeType(name)
		if err != nil {
			return nil, err
		}
		present[t] = v
	}
	for _, t := range roadsys.SegmentAttributeTypes(st) {
		if err := s.SetAttribute(t, present[t]); err != nil {
			return nil, err
		}
		delete(present, t)
	}
	for t := range present {
		return nil, errors.InvalidArgument("%s segments have no attribute %s", st, t)
	}

	if sd.Center != geom.Origin {
		if err := rs.MoveSegments([]*roadsys.Segment{s}, geom.Origin.To(sd.Center)); err != nil {
			return nil, err
		}
	}
	if sd.Rotation != 0 {
		if err := rs.RotateSegment(s, sd.Rotation); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (ep endpoint) resolve(segments map[string]*roadsys.Segment) (*roadsys.Connector, error) {
	s, ok := segments[ep.Segment]
	if !ok {
		return nil, errors.NotFound("unknown segment %q", ep.Segment)
	}
	return s.ConnectorAt(ep.Connector)
}
