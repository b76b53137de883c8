// Package io reads and writes road systems.
//
// # Formats
//
// JSON and YAML share one document layout:
//
//	{
//	  "segments": [
//	    {"id": "9b2f...", "type": "base", "name": "Segment 1",
//	     "center": {"x": 0, "y": 0}, "rotation": 0,
//	     "attributes": {"length": 100, "lane_count": 2}}
//	  ],
//	  "groups": [
//	    {"id": "c01d...", "name": "Group 1", "members": ["9b2f..."]}
//	  ],
//	  "connections": [
//	    {"from": {"segment": "9b2f...", "connector": 1},
//	     "to":   {"segment": "a7e4...", "connector": 0}}
//	  ]
//	}
//
// Connection endpoints name a segment by its ID and a connector by its
// index within the segment. IDs only link entries within one document:
// imported elements receive fresh IDs. Groups are listed after their
// members.
//
// GeoJSON export is one-way. Segments become LineStrings from their entry
// to their exit connector and connections become Points at their center.
//
// # Import
//
// Importing replays the document through the road-system API into an
// existing road system, so every invariant is enforced and every observer,
// criteria included, sees the segments and connections arrive:
//
//	rs := roadsys.New(nil, nil)
//	m := criteria.NewCriteriaManager(rs, nil, nil, nil)
//	...
//	if err := io.Import("network.yaml", rs); err != nil {
//	    return err
//	}
package io
