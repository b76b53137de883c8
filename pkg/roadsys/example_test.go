package roadsys_test

import (
	"fmt"

	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

func ExampleRoadSystem_ConnectConnectors() {
	rs := roadsys.New(nil, nil)
	a, _ := rs.CreateSegment(roadsys.SegmentBase)
	b, _ := rs.CreateSegment(roadsys.SegmentEntrance)

	exit, _ := a.Connector(roadsys.ConnectorExit)
	entry, _ := b.Connector(roadsys.ConnectorEntry)
	conn, err := rs.ConnectConnectors(exit, entry)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("Connections:", len(rs.Connections()))
	fmt.Println("Neighbour of a:", rs.AdjacentSegments(a)[0].Name())
	other, _ := conn.Other(exit)
	fmt.Println("Other end:", other.Type())

	_, err = rs.ConnectConnectors(exit, exit)
	fmt.Println("Self connect:", err)
	// Output:
	// Connections: 1
	// Neighbour of a: Entrance 1
	// Other end: entry
	// Self connect: INVALID_ARGUMENT: cannot connect exit of base "Segment 1" to itself
}

func ExampleRoadSystem_MoveSegments() {
	rs := roadsys.New(nil, nil)
	s1, _ := rs.CreateSegment(roadsys.SegmentBase)
	s2, _ := rs.CreateSegment(roadsys.SegmentBase)
	s3, _ := rs.CreateSegment(roadsys.SegmentBase)

	connect := func(from, to *roadsys.Segment) {
		exit, _ := from.Connector(roadsys.ConnectorExit)
		entry, _ := to.Connector(roadsys.ConnectorEntry)
		_, _ = rs.ConnectConnectors(exit, entry)
	}
	connect(s1, s2)
	connect(s3, s1)

	// Moving s1 and s2 together keeps their link but detaches s3.
	_ = rs.MoveSegments([]*roadsys.Segment{s1, s2}, geom.Move(0, 50))
	fmt.Println("s1-s2:", len(rs.ConnectionsBetween(s1, s2)))
	fmt.Println("s1-s3:", len(rs.ConnectionsBetween(s1, s3)))
	// Output:
	// s1-s2: 1
	// s1-s3: 0
}
