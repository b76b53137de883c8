// Package roadsys provides the topology-aware model of a highway network
// diagram: segments, the connectors on them, the connections between those
// connectors, and groups organizing segments hierarchically.
//
// # Overview
//
// A [RoadSystem] is the single owner of every element it creates. Segments
// are the vertices and connections the edges of an undirected multigraph;
// the road system keeps adjacency and connector indices consistent through
// every structural edit, so queries such as [RoadSystem.AdjacentSegments]
// and [RoadSystem.Connection] cost O(degree) rather than O(elements).
//
// # Basic Usage
//
//	rs := roadsys.New(nil, nil)
//	a, _ := rs.CreateSegment(roadsys.SegmentBase)
//	b, _ := rs.CreateSegment(roadsys.SegmentBase)
//	exit, _ := a.Connector(roadsys.ConnectorExit)
//	entry, _ := b.Connector(roadsys.ConnectorEntry)
//	conn, err := rs.ConnectConnectors(exit, entry)
//
// # Segment Types
//
//   - [SegmentBase]: entry and exit connectors
//   - [SegmentEntrance]: entry, exit and an on-ramp ([ConnectorRampEntry])
//   - [SegmentExit]: entry, exit and an off-ramp ([ConnectorRampExit])
//
// Connector positions are stored relative to the segment center and rotated
// on read, so moving or rotating a segment never rewrites connector state.
//
// # Movement and Auto-Break
//
// The road system observes every connector. When a connector moves, its
// connection is severed; this is how dragging a segment away from its
// neighbour detaches it. [RoadSystem.MoveSegments] and
// [RoadSystem.RotateSegments] suspend that behaviour while they move a set
// of segments, so connections inside the set survive, and sever only the
// connections that crossed the set boundary before the move.
//
// # Observation
//
// Elements notify [ElementObserver]s (criteria, views) when they are added,
// changed or removed. The road system itself notifies [Observer]s about
// both elements and connections. Notifications are synchronous and fire in
// subscription order; bookkeeping for an operation is finished before its
// first notification is dispatched.
//
// # Errors
//
// Collaborator mistakes fail fast with codes from the errors package:
// ErrCodeInvalidArgument for bad connect requests and wrongly typed
// attribute values, ErrCodeNotFound for lookups with unrelated keys.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use. Embedding
// applications serialize access externally.
package roadsys
