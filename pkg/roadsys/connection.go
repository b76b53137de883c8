package roadsys

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/observable"
)

// Connection is an unordered link between two connectors of different
// segments. Connections are created and destroyed only by a RoadSystem.
type Connection struct {
	id        ID
	first     *Connector
	second    *Connector
	center    geom.Position
	observers observable.Unit[*Connection]
}

func newConnection(a, b *Connector) (*Connection, error) {
	if a == nil || b == nil {
		return nil, errors.InvalidArgument("connection endpoints must not be nil")
	}
	c := &Connection{id: uuid.New(), first: a, second: b}
	c.center = geom.Midpoint(a.Position(), b.Position())
	return c, nil
}

// ID returns the connection's identity.
func (c *Connection) ID() ID { return c.id }

// Connectors returns both endpoints in creation order.
func (c *Connection) Connectors() (*Connector, *Connector) { return c.first, c.second }

// Segments returns the owning segments of both endpoints.
func (c *Connection) Segments() (*Segment, *Segment) { return c.first.segment, c.second.segment }

// Center returns the cached anchor position used by views.
func (c *Connection) Center() geom.Position { return c.center }

// Contains reports whether con is one of the endpoints.
func (c *Connection) Contains(con *Connector) bool { return con == c.first || con == c.second }

// Other returns the endpoint that is not con.
func (c *Connection) Other(con *Connector) (*Connector, error) {
	switch con {
	case c.first:
		return c.second, nil
	case c.second:
		return c.first, nil
	}
	return nil, errors.NotFound("connector %v is not part of connection %s", con, c.id)
}

// ConnectorOf returns the endpoint owned by s.
func (c *Connection) ConnectorOf(s *Segment) (*Connector, error) {
	switch s {
	case c.first.segment:
		return c.first, nil
	case c.second.segment:
		return c.second, nil
	}
	return nil, errors.NotFound("segment %s is not part of connection %s", s.ID(), c.id)
}

// OtherSegment returns the segment at the far end from s.
func (c *Connection) OtherSegment(s *Segment) (*Segment, error) {
	con, err := c.ConnectorOf(s)
	if err != nil {
		return nil, err
	}
	other, err := c.Other(con)
	if err != nil {
		return nil, err
	}
	return other.segment, nil
}

func (c *Connection) String() string {
	return fmt.Sprintf("%v <-> %v", c.first, c.second)
}

// Subscribe registers o for change notifications.
func (c *Connection) Subscribe(o observable.UnitObserver[*Connection]) { c.observers.Subscribe(o) }

// Unsubscribe removes o.
func (c *Connection) Unsubscribe(o observable.UnitObserver[*Connection]) { c.observers.Unsubscribe(o) }

func (c *Connection) updateCenter() {
	c.center = geom.Midpoint(c.first.Position(), c.second.Position())
	c.observers.NotifyChange(c)
}
