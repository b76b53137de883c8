// Package pkg provides the core libraries for roadnet highway network
// diagrams.
//
// # Overview
//
// A diagram is a graph of road segments joined through typed connectors.
// Plain segments have an entry and an exit; entrance and exit segments add
// an on-ramp or off-ramp. Plausibility criteria watch the graph and keep an
// up-to-date list of violations as it is edited.
//
//  1. [roadsys] - The graph engine: segments, groups, connections, geometry
//  2. [criteria] - Plausibility criteria and the violations they report
//  3. [io] - JSON and YAML persistence, GeoJSON export
//  4. [render] - Graphviz diagrams with violations highlighted
//  5. [config] - TOML settings for segment defaults, ranges and criteria
//
// # Architecture
//
// Every change to the graph is pushed synchronously to the criteria:
//
//	RoadSystem edit (create, connect, move, set attribute)
//	         ↓
//	    element observers (one per active criterion)
//	         ↓
//	    Criterion.Check (re-evaluates the changed segment)
//	         ↓
//	    ViolationManager (ordered, observable list)
//
// # Quick Start
//
//	logger := log.Default()
//	rs := roadsys.New(nil, logger)
//	m := criteria.NewCriteriaManager(rs, nil, nil, logger)
//
//	c, _ := m.CreateCriterionOfType(criteria.CriterionConnector)
//	c.SetSegmentTypes(roadsys.SegmentTypes...)
//
//	a, _ := rs.CreateSegment(roadsys.SegmentBase)
//	b, _ := rs.CreateSegment(roadsys.SegmentBase)
//	exitA, _ := a.Connector(roadsys.ConnectorExit)
//	exitB, _ := b.Connector(roadsys.ConnectorExit)
//	rs.ConnectConnectors(exitA, exitB)
//
//	for _, v := range m.ViolationManager().Violations() {
//	    fmt.Println(v) // Connector 1: Segment 1, Segment 2
//	}
//
// # Supporting Packages
//
// [geom] - Positions, movements and numeric ranges.
//
// [observable] - Generic observer registries used by elements, connectors,
// criteria and the violation list.
//
// [errors] - Structured error codes shared by every package.
//
// [observability] - Hooks for road-system and criteria events, with a
// Prometheus implementation in observability/promhooks.
//
// [roadsys]: https://pkg.go.dev/github.com/matzehuels/roadnet/pkg/roadsys
// [criteria]: https://pkg.go.dev/github.com/matzehuels/roadnet/pkg/criteria
// [io]: https://pkg.go.dev/github.com/matzehuels/roadnet/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/roadnet/pkg/render
// [config]: https://pkg.go.dev/github.com/matzehuels/roadnet/pkg/config
// [geom]: https://pkg.go.dev/github.com/matzehuels/roadnet/pkg/geom
// [observable]: https://pkg.go.dev/github.com/matzehuels/roadnet/pkg/observable
// [errors]: https://pkg.go.dev/github.com/matzehuels/roadnet/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/roadnet/pkg/observability
package pkg
