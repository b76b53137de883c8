// Package render draws road systems as Graphviz diagrams.
//
// # Overview
//
// [ToDOT] turns a road system into an undirected Graphviz graph: segments
// are nodes, connections are edges labelled with the connector types they
// join, and groups are clusters. Segments named by a violation are filled
// red so that a check run can be reviewed visually.
//
//	dot := render.ToDOT(rs, vm.Violations(), render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels list every set attribute
//   - Positions: pin nodes to their canvas coordinates instead of letting
//     Graphviz lay them out
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package render
