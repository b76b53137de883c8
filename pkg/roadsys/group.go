package roadsys

import "slices"

// Group organizes elements hierarchically. Groups take no part in
// connectivity.
type Group struct {
	element
	elements []Element
}

// Kind returns KindGroup.
func (g *Group) Kind() ElementKind { return KindGroup }

// Elements returns the direct members in insertion order.
func (g *Group) Elements() []Element { return slices.Clone(g.elements) }

// Contains reports whether e is a direct member.
func (g *Group) Contains(e Element) bool { return slices.Contains(g.elements, e) }

// Segments returns every segment in the group, descending into nested groups.
func (g *Group) Segments() []*Segment {
	var out []*Segment
	for _, e := range g.elements {
		switch v := e.(type) {
		case *Segment:
			out = append(out, v)
		case *Group:
			out = append(out, v.Segments()...)
		}
	}
	return out
}

// AttributeAccessors returns accessors for name and comment.
func (g *Group) AttributeAccessors() []*AttributeAccessor { return g.commonAccessors() }

func (g *Group) remove(e Element) {
	g.elements = slices.DeleteFunc(g.elements, func(x Element) bool { return x == e })
}
