package roadsys

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/observability"
	"github.com/matzehuels/roadnet/pkg/observable"
)

// Observer is notified about elements and connections entering, changing
// in and leaving a road system.
type Observer = observable.DualSetObserver[Element, *Connection]

// ObserverSource supplies the observers every new segment is subscribed to
// on creation. A criteria manager is the usual source.
type ObserverSource interface {
	ElementObservers() []ElementObserver
}

// RoadSystem owns the segments, groups and connections of one diagram.
//
// Segments are the vertices and connections the edges of an undirected
// multigraph. Two indices are derived from it and kept in sync with every
// structural edit:
//
//   - connector -> owning segment, for every connector of every registered segment
//   - connector -> connection, for every connector currently connected
//
// An edge exists exactly when both of its connectors map to it.
//
// RoadSystem is not safe for concurrent use. Every operation runs to
// completion, including all observer notifications it triggers, before it
// returns. Structural bookkeeping always completes before the first
// notification of an operation is dispatched, so observers querying the
// road system see a consistent graph.
type RoadSystem struct {
	factory *SegmentFactory
	logger  *log.Logger

	elements []Element
	byID     map[ID]Element
	parent   map[ID]*Group

	connections []*Connection
	incident    map[ID][]*Connection

	connectorOwner      map[*Connector]*Segment
	connectorConnection map[*Connector]*Connection

	noBreak   bool
	source    ObserverSource
	observers observable.DualSet[Element, *Connection]
}

// New creates an empty road system. A nil factory uses
// DefaultSegmentDefaults; a nil logger uses log.Default().
func New(factory *SegmentFactory, logger *log.Logger) *RoadSystem {
	if factory == nil {
		factory = NewSegmentFactory(DefaultSegmentDefaults())
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RoadSystem{
		factory:             factory,
		logger:              logger,
		byID:                make(map[ID]Element),
		parent:              make(map[ID]*Group),
		incident:            make(map[ID][]*Connection),
		connectorOwner:      make(map[*Connector]*Segment),
		connectorConnection: make(map[*Connector]*Connection),
	}
}

// Factory returns the segment factory used by CreateSegment.
func (rs *RoadSystem) Factory() *SegmentFactory { return rs.factory }

// SetObserverSource sets the source of observers subscribed to every newly
// created segment. It does not touch existing segments.
func (rs *RoadSystem) SetObserverSource(src ObserverSource) { rs.source = src }

// Subscribe registers o for element and connection notifications.
func (rs *RoadSystem) Subscribe(o Observer) { rs.observers.Subscribe(o) }

// Unsubscribe removes o.
func (rs *RoadSystem) Unsubscribe(o Observer) { rs.observers.Unsubscribe(o) }

// =============================================================================
// Creation and removal
// =============================================================================

// CreateSegment creates a segment of type t with default geometry, registers
// it and subscribes every observer of the observer source to it. Observers
// of the road system are told about the addition, then the segment's own
// observers run one check pass so criteria evaluate it immediately.
func (rs *RoadSystem) CreateSegment(t SegmentType) (*Segment, error) {
	s, err := rs.factory.Create(t)
	if err != nil {
		return nil, err
	}

	rs.register(s)
	rs.incident[s.id] = nil
	for _, c := range s.connectors {
		rs.connectorOwner[c] = s
		c.Subscribe(rs)
	}
	if rs.source != nil {
		for _, o := range rs.source.ElementObservers() {
			s.Subscribe(o)
		}
	}

	rs.logger.Debug("segment created", "id", s.id, "type", t, "name", s.name)
	observability.RoadSystem().OnSegmentCreated(t.String())

	rs.observers.NotifyAddition(s)
	s.notifyAddition()
	return s, nil
}

// CreateGroup wraps elements in a new group. Members of another group are
// moved out of it.
func (rs *RoadSystem) CreateGroup(elements ...Element) (*Group, error) {
	for _, e := range elements {
		if !rs.Contains(e) {
			return nil, errors.InvalidArgument("element %v is not part of the road system", e)
		}
	}

	g := &Group{}
	g.init(g, rs.factory.nextGroupName())
	for _, e := range elements {
		if old, ok := rs.parent[e.ID()]; ok {
			old.remove(e)
		}
		rs.parent[e.ID()] = g
		g.elements = append(g.elements, e)
	}
	rs.register(g)

	rs.logger.Debug("group created", "id", g.id, "members", len(elements))
	rs.observers.NotifyAddition(g)
	return g, nil
}

func (rs *RoadSystem) register(e Element) {
	rs.elements = append(rs.elements, e)
	rs.byID[e.ID()] = e
}

func (rs *RoadSystem) unregister(e Element) {
	rs.elements = slices.DeleteFunc(rs.elements, func(x Element) bool { return x == e })
	delete(rs.byID, e.ID())
	if g, ok := rs.parent[e.ID()]; ok {
		g.remove(e)
		delete(rs.parent, e.ID())
	}
}

// RemoveElement removes e. Groups are removed after all their members,
// recursively. Segments lose every connection first; the neighbours of a
// removed segment are re-announced as changed so that observers re-evaluate
// them.
func (rs *RoadSystem) RemoveElement(e Element) error {
	if !rs.Contains(e) {
		return errors.NotFound("element %v is not part of the road system", e)
	}
	switch v := e.(type) {
	case *Group:
		return rs.removeGroup(v)
	case *Segment:
		rs.removeSegment(v)
	}
	return nil
}

func (rs *RoadSystem) removeGroup(g *Group) error {
	for _, member := range g.Elements() {
		if err := rs.RemoveElement(member); err != nil {
			return err
		}
	}
	rs.unregister(g)

	rs.logger.Debug("group removed", "id", g.id)
	observability.RoadSystem().OnElementRemoved(KindGroup.String())

	g.notifyRemoval()
	g.observers.UnsubscribeAll()
	rs.observers.NotifyRemoval(g)
	return nil
}

func (rs *RoadSystem) removeSegment(s *Segment) {
	conns := slices.Clone(rs.incident[s.id])
	for _, c := range conns {
		rs.unlink(c)
	}
	rs.unregister(s)
	delete(rs.incident, s.id)
	for _, c := range s.connectors {
		delete(rs.connectorOwner, c)
		c.Unsubscribe(rs)
	}

	rs.logger.Debug("segment removed", "id", s.id, "connections", len(conns))
	observability.RoadSystem().OnElementRemoved(KindSegment.String())

	for _, c := range conns {
		observability.RoadSystem().OnDisconnect(false)
		rs.observers.NotifyRemovalSecond(c)
		if other, err := c.OtherSegment(s); err == nil && other != s {
			other.NotifyChange()
		}
	}
	s.notifyRemoval()
	s.observers.UnsubscribeAll()
	rs.observers.NotifyRemoval(s)
}

// =============================================================================
// Connections
// =============================================================================

// ConnectConnectors links a and b. It fails with an invalid-argument error
// if a and b are the same connector, belong to the same segment, are not
// part of this road system, or either is already connected.
func (rs *RoadSystem) ConnectConnectors(a, b *Connector) (*Connection, error) {
	if a == nil || b == nil {
		return nil, errors.InvalidArgument("cannot connect a nil connector")
	}
	if a == b {
		return nil, errors.InvalidArgument("cannot connect %v to itself", a)
	}
	sa, okA := rs.connectorOwner[a]
	sb, okB := rs.connectorOwner[b]
	if !okA || !okB {
		return nil, errors.InvalidArgument("connector is not part of the road system")
	}
	if sa == sb {
		return nil, errors.InvalidArgument("cannot connect two connectors of %v", sa)
	}
	if _, ok := rs.connectorConnection[a]; ok {
		return nil, errors.InvalidArgument("%v is already connected", a)
	}
	if _, ok := rs.connectorConnection[b]; ok {
		return nil, errors.InvalidArgument("%v is already connected", b)
	}

	conn, err := newConnection(a, b)
	if err != nil {
		return nil, err
	}
	rs.connections = append(rs.connections, conn)
	rs.incident[sa.id] = append(rs.incident[sa.id], conn)
	rs.incident[sb.id] = append(rs.incident[sb.id], conn)
	rs.connectorConnection[a] = conn
	rs.connectorConnection[b] = conn

	rs.logger.Debug("connected", "from", a, "to", b)
	observability.RoadSystem().OnConnect()

	rs.observers.NotifyAdditionSecond(conn)
	sa.NotifyChange()
	sb.NotifyChange()
	return conn, nil
}

// DisconnectConnection removes conn from the graph.
func (rs *RoadSystem) DisconnectConnection(conn *Connection) error {
	return rs.disconnect(conn, false)
}

func (rs *RoadSystem) disconnect(conn *Connection, auto bool) error {
	if conn == nil || !slices.Contains(rs.connections, conn) {
		return errors.NotFound("connection is not part of the road system")
	}
	rs.unlink(conn)

	rs.logger.Debug("disconnected", "connection", conn, "auto", auto)
	observability.RoadSystem().OnDisconnect(auto)

	sa, sb := conn.Segments()
	rs.observers.NotifyRemovalSecond(conn)
	sa.NotifyChange()
	sb.NotifyChange()
	return nil
}

func (rs *RoadSystem) unlink(conn *Connection) {
	rs.connections = slices.DeleteFunc(rs.connections, func(c *Connection) bool { return c == conn })
	sa, sb := conn.Segments()
	drop := func(c *Connection) bool { return c == conn }
	rs.incident[sa.id] = slices.DeleteFunc(rs.incident[sa.id], drop)
	rs.incident[sb.id] = slices.DeleteFunc(rs.incident[sb.id], drop)
	delete(rs.connectorConnection, conn.first)
	delete(rs.connectorConnection, conn.second)
}

// DisconnectFromAll removes every connection incident to s.
func (rs *RoadSystem) DisconnectFromAll(s *Segment) error {
	if !rs.Contains(s) {
		return errors.NotFound("segment %v is not part of the road system", s)
	}
	for _, c := range slices.Clone(rs.incident[s.id]) {
		if err := rs.DisconnectConnection(c); err != nil {
			return err
		}
	}
	return nil
}

// NotifyChange implements observable.UnitObserver for connectors: a moved
// connector loses its connection unless auto-break is suspended.
func (rs *RoadSystem) NotifyChange(c *Connector) {
	if rs.noBreak {
		return
	}
	conn, ok := rs.connectorConnection[c]
	if !ok {
		return
	}
	if err := rs.disconnect(conn, true); err != nil {
		rs.logger.Warn("auto-break failed", "connector", c, "err", err)
	}
}

// =============================================================================
// Queries
// =============================================================================

// Contains reports whether e is registered in the road system.
func (rs *RoadSystem) Contains(e Element) bool {
	if e == nil {
		return false
	}
	got, ok := rs.byID[e.ID()]
	return ok && got == e
}

// Element returns the element with the given ID.
func (rs *RoadSystem) Element(id ID) (Element, bool) {
	e, ok := rs.byID[id]
	return e, ok
}

// Elements returns every element in creation order.
func (rs *RoadSystem) Elements() []Element { return slices.Clone(rs.elements) }

// Segments returns every segment in creation order.
func (rs *RoadSystem) Segments() []*Segment {
	var out []*Segment
	for _, e := range rs.elements {
		if s, ok := e.(*Segment); ok {
			out = append(out, s)
		}
	}
	return out
}

// Groups returns every group in creation order.
func (rs *RoadSystem) Groups() []*Group {
	var out []*Group
	for _, e := range rs.elements {
		if g, ok := e.(*Group); ok {
			out = append(out, g)
		}
	}
	return out
}

// ElementsByName returns the elements whose name starts with prefix.
func (rs *RoadSystem) ElementsByName(prefix string) []Element {
	var out []Element
	for _, e := range rs.elements {
		if strings.HasPrefix(e.Name(), prefix) {
			out = append(out, e)
		}
	}
	return out
}

// RootElements returns the elements that are not members of any group.
func (rs *RoadSystem) RootElements() []Element {
	var out []Element
	for _, e := range rs.elements {
		if _, ok := rs.parent[e.ID()]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// Parent returns the group that directly contains e.
func (rs *RoadSystem) Parent(e Element) (*Group, bool) {
	g, ok := rs.parent[e.ID()]
	return g, ok
}

// Connections returns every connection in creation order.
func (rs *RoadSystem) Connections() []*Connection { return slices.Clone(rs.connections) }

// ConnectionsOf returns the connections incident to s.
func (rs *RoadSystem) ConnectionsOf(s *Segment) []*Connection {
	return slices.Clone(rs.incident[s.id])
}

// ConnectionsBetween returns the connections linking s1 and s2.
func (rs *RoadSystem) ConnectionsBetween(s1, s2 *Segment) []*Connection {
	var out []*Connection
	for _, c := range rs.incident[s1.id] {
		if other, err := c.OtherSegment(s1); err == nil && other == s2 {
			out = append(out, c)
		}
	}
	return out
}

// Connection returns the connection c takes part in, if any.
func (rs *RoadSystem) Connection(c *Connector) (*Connection, bool) {
	conn, ok := rs.connectorConnection[c]
	return conn, ok
}

// AdjacentSegments returns the distinct segments connected to s, in
// connection order.
func (rs *RoadSystem) AdjacentSegments(s *Segment) []*Segment {
	var out []*Segment
	for _, c := range rs.incident[s.id] {
		other, err := c.OtherSegment(s)
		if err != nil || slices.Contains(out, other) {
			continue
		}
		out = append(out, other)
	}
	return out
}

// SharedAttributeAccessors returns one accessor per attribute type carried
// by every given element. Each accessor reads the common value (nil when
// the elements disagree) and writes all elements at once.
func (rs *RoadSystem) SharedAttributeAccessors(elements ...Element) []*AttributeAccessor {
	if len(elements) == 0 {
		return nil
	}
	byType := make(map[AttributeType][]*AttributeAccessor)
	for _, e := range elements {
		for _, a := range e.AttributeAccessors() {
			byType[a.Type()] = append(byType[a.Type()], a)
		}
	}
	var out []*AttributeAccessor
	for _, t := range AttributeTypes {
		members := byType[t]
		if len(members) != len(elements) {
			continue
		}
		out = append(out, sharedAccessor(t, members))
	}
	return out
}

// Validate checks that the graph and both connector indices agree. It
// returns an internal error describing the first inconsistency found.
func (rs *RoadSystem) Validate() error {
	for c, s := range rs.connectorOwner {
		if c.segment != s || !rs.Contains(s) {
			return errors.New(errors.ErrCodeInternal, "connector %v maps to the wrong segment", c)
		}
	}
	for _, conn := range rs.connections {
		for _, c := range []*Connector{conn.first, conn.second} {
			if rs.connectorConnection[c] != conn {
				return errors.New(errors.ErrCodeInternal, "connector %v does not map to %v", c, conn)
			}
			if !slices.Contains(rs.incident[c.segment.id], conn) {
				return errors.New(errors.ErrCodeInternal, "segment %v misses incident %v", c.segment, conn)
			}
		}
	}
	for c, conn := range rs.connectorConnection {
		if !conn.Contains(c) || !slices.Contains(rs.connections, conn) {
			return errors.New(errors.ErrCodeInternal, "connector %v maps to a stale connection", c)
		}
	}
	for id, conns := range rs.incident {
		if _, ok := rs.byID[id]; !ok {
			return errors.New(errors.ErrCodeInternal, "incidence entry for unknown segment %s", id)
		}
		for _, conn := range conns {
			if !slices.Contains(rs.connections, conn) {
				return errors.New(errors.ErrCodeInternal, "segment %s lists stale %v", id, conn)
			}
		}
	}
	return nil
}

// =============================================================================
// Movement
// =============================================================================

// AutoBreak reports whether moving a connector currently severs its
// connection.
func (rs *RoadSystem) AutoBreak() bool { return !rs.noBreak }

// suspendAutoBreak disables auto-break and returns the function restoring
// the previous mode. Callers defer the restore so that it runs on every
// path, panics included.
func (rs *RoadSystem) suspendAutoBreak() (restore func()) {
	prev := rs.noBreak
	rs.noBreak = true
	return func() { rs.noBreak = prev }
}

// WithoutAutoBreak runs fn with auto-break suspended. The previous mode is
// restored when fn returns or panics.
func (rs *RoadSystem) WithoutAutoBreak(fn func() error) error {
	defer rs.suspendAutoBreak()()
	return fn()
}

// MoveSegments translates segments by m. Connections between two moved
// segments survive; connections from a moved segment to one outside the
// set are severed after the move.
func (rs *RoadSystem) MoveSegments(segments []*Segment, m geom.Movement) error {
	return rs.transform(segments, func(s *Segment) { s.Move(m) })
}

// RotateSegment rotates s by degrees around its own center.
func (rs *RoadSystem) RotateSegment(s *Segment, degrees float64) error {
	return rs.RotateSegments([]*Segment{s}, degrees)
}

// RotateSegments rotates segments by degrees around the average of their
// centers. Connections leaving the set are severed, as with MoveSegments.
func (rs *RoadSystem) RotateSegments(segments []*Segment, degrees float64) error {
	segments = uniqueSegments(segments)
	centers := make([]geom.Position, len(segments))
	for i, s := range segments {
		centers[i] = s.center
	}
	pivot := geom.Centroid(centers...)
	return rs.transform(segments, func(s *Segment) { s.rotateAround(pivot, degrees) })
}

// uniqueSegments drops repeated segments, keeping first occurrences in
// order. A selection holding a group and one of its members lists that
// member twice.
func uniqueSegments(segments []*Segment) []*Segment {
	out := make([]*Segment, 0, len(segments))
	for _, s := range segments {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// transform applies fn to every segment in two phases: the connections
// crossing the set boundary are snapshotted first, then fn runs with
// auto-break suspended, and finally the snapshotted connections are
// severed. Connector moves would otherwise break connections based on a
// connector set that changes mid-operation.
func (rs *RoadSystem) transform(segments []*Segment, fn func(*Segment)) error {
	segments = uniqueSegments(segments)
	inside := make(map[*Segment]bool, len(segments))
	for _, s := range segments {
		if !rs.Contains(s) {
			return errors.NotFound("segment %v is not part of the road system", s)
		}
		inside[s] = true
	}

	var outside, internal []*Connection
	for _, s := range segments {
		for _, c := range rs.incident[s.id] {
			a, b := c.Segments()
			switch {
			case inside[a] && inside[b]:
				if !slices.Contains(internal, c) {
					internal = append(internal, c)
				}
			case !slices.Contains(outside, c):
				outside = append(outside, c)
			}
		}
	}

	func() {
		defer rs.suspendAutoBreak()()
		for _, s := range segments {
			fn(s)
		}
		for _, c := range internal {
			c.updateCenter()
		}
	}()

	for _, c := range outside {
		if !slices.Contains(rs.connections, c) {
			continue
		}
		if err := rs.disconnect(c, true); err != nil {
			return err
		}
	}
	return nil
}
