package roadsys

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/roadnet/pkg/geom"
)

// probe records notifications and checks the road system is consistent
// whenever one arrives.
type probe struct {
	t      *testing.T
	rs     *RoadSystem
	events []string
}

func (p *probe) check() {
	if err := p.rs.Validate(); err != nil {
		p.t.Errorf("inconsistent road system during notification: %v", err)
	}
}

func (p *probe) record(format string, args ...any) {
	p.check()
	p.events = append(p.events, fmt.Sprintf(format, args...))
}

func (p *probe) NotifyChange(e Element)   { p.record("change %s", e.Name()) }
func (p *probe) NotifyAddition(e Element) { p.record("add %s", e.Name()) }
func (p *probe) NotifyRemoval(e Element) {
	p.record("remove %s", e.Name())
	if p.rs.Contains(e) {
		p.t.Errorf("%s still registered when its removal is announced", e.Name())
	}
}
func (p *probe) NotifyChangeSecond(c *Connection)   { p.record("change connection") }
func (p *probe) NotifyAdditionSecond(c *Connection) { p.record("connect") }
func (p *probe) NotifyRemovalSecond(c *Connection) {
	p.record("disconnect")
	a, b := c.Connectors()
	if _, ok := p.rs.Connection(a); ok {
		p.t.Error("connector still mapped when disconnect is announced")
	}
	if _, ok := p.rs.Connection(b); ok {
		p.t.Error("connector still mapped when disconnect is announced")
	}
}

type sourceFunc func() []ElementObserver

func (f sourceFunc) ElementObservers() []ElementObserver { return f() }

func TestRoadSystemNotifications(t *testing.T) {
	rs := newTestSystem(t)
	sys := &probe{t: t, rs: rs}
	seg := &probe{t: t, rs: rs}
	rs.Subscribe(sys)
	rs.SetObserverSource(sourceFunc(func() []ElementObserver { return []ElementObserver{seg} }))

	a := mustSegment(t, rs, SegmentBase)
	b := mustSegment(t, rs, SegmentBase)
	conn := chain(t, rs, a, b)

	wantSys := []string{"add Segment 1", "add Segment 2", "connect"}
	if !slices.Equal(sys.events, wantSys) {
		t.Errorf("road system events = %v, want %v", sys.events, wantSys)
	}
	wantSeg := []string{"add Segment 1", "add Segment 2", "change Segment 1", "change Segment 2"}
	if !slices.Equal(seg.events, wantSeg) {
		t.Errorf("segment events = %v, want %v", seg.events, wantSeg)
	}

	sys.events, seg.events = nil, nil
	if err := rs.RemoveElement(a); err != nil {
		t.Fatal(err)
	}
	wantSys = []string{"disconnect", "remove Segment 1"}
	if !slices.Equal(sys.events, wantSys) {
		t.Errorf("road system events = %v, want %v", sys.events, wantSys)
	}
	wantSeg = []string{"change Segment 2", "remove Segment 1"}
	if !slices.Equal(seg.events, wantSeg) {
		t.Errorf("segment events = %v, want %v", seg.events, wantSeg)
	}
	if len(a.Observers()) != 0 {
		t.Error("removed segment keeps its observers")
	}
	if _, err := conn.ConnectorOf(b); err != nil {
		t.Errorf("removed connection lost its endpoints: %v", err)
	}
}

type connectionCounter struct{ changes int }

func (c *connectionCounter) NotifyChange(*Connection) { c.changes++ }

func TestConnectionCenterFollowsGroupMove(t *testing.T) {
	rs := newTestSystem(t)
	a := mustSegment(t, rs, SegmentBase)
	b := mustSegment(t, rs, SegmentBase)
	conn := chain(t, rs, a, b)
	counter := &connectionCounter{}
	conn.Subscribe(counter)

	before := conn.Center()
	if err := rs.MoveSegments([]*Segment{a, b}, geom.Move(3, 4)); err != nil {
		t.Fatal(err)
	}
	if conn.Center() != before.Translate(geom.Move(3, 4)) {
		t.Errorf("Center = %v, want %v", conn.Center(), before.Translate(geom.Move(3, 4)))
	}
	if counter.changes != 1 {
		t.Errorf("connection change notifications = %d, want 1", counter.changes)
	}
}
