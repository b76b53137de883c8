package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/roadnet/pkg/criteria"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the segment type and all set attributes to node labels.
	Detailed bool

	// Positions pins every node to its segment's canvas center.
	Positions bool
}

// ToDOT converts rs to Graphviz DOT source. Segments named by any of the
// violations are highlighted.
func ToDOT(rs *roadsys.RoadSystem, violations []*criteria.Violation, opts Options) string {
	violating := make(map[*roadsys.Segment][]string)
	for _, v := range violations {
		for _, s := range v.Segments() {
			violating[s] = append(violating[s], v.Criterion().Name())
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	if opts.Positions {
		buf.WriteString("  layout=neato;\n")
		// pos values are canvas units, one per point.
		buf.WriteString("  inputscale=72;\n")
	} else {
		buf.WriteString("  rankdir=LR;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10, fontcolor=grey40];\n")
	buf.WriteString("\n")

	grouped := make(map[roadsys.ID]bool)
	for _, e := range rs.RootElements() {
		if g, ok := e.(*roadsys.Group); ok {
			writeCluster(&buf, g, violating, opts, grouped, "  ")
		}
	}
	for _, s := range rs.Segments() {
		if !grouped[s.ID()] {
			writeNode(&buf, s, violating[s], opts, "  ")
		}
	}

	buf.WriteString("\n")
	for _, conn := range rs.Connections() {
		a, b := conn.Connectors()
		fmt.Fprintf(&buf, "  %q -- %q [taillabel=%q, headlabel=%q];\n",
			a.Segment().ID().String(), b.Segment().ID().String(), a.Type().String(), b.Type().String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeCluster(buf *bytes.Buffer, g *roadsys.Group, violating map[*roadsys.Segment][]string, opts Options, grouped map[roadsys.ID]bool, indent string) {
	fmt.Fprintf(buf, "%ssubgraph %q {\n", indent, "cluster_"+g.ID().String())
	fmt.Fprintf(buf, "%s  label=%q;\n", indent, g.Name())
	fmt.Fprintf(buf, "%s  style=\"rounded,dashed\";\n", indent)
	for _, e := range g.Elements() {
		switch v := e.(type) {
		case *roadsys.Group:
			writeCluster(buf, v, violating, opts, grouped, indent+"  ")
		case *roadsys.Segment:
			writeNode(buf, v, violating[v], opts, indent+"  ")
			grouped[v.ID()] = true
		}
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

func writeNode(buf *bytes.Buffer, s *roadsys.Segment, violated []string, opts Options, indent string) {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(s, opts.Detailed))}
	if len(violated) > 0 {
		attrs = append(attrs, "fillcolor=\"#f8d7da\"", "color=red", fmt.Sprintf("tooltip=%q", strings.Join(violated, "\n")))
	}
	if s.Type().IsRamp() {
		attrs = append(attrs, "peripheries=2")
	}
	if opts.Positions {
		// Graphviz's y axis points up.
		c := s.Center()
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", c.X, 0-c.Y))
	}
	fmt.Fprintf(buf, "%s%q [%s];\n", indent, s.ID().String(), strings.Join(attrs, ", "))
}

func fmtLabel(s *roadsys.Segment, detailed bool) string {
	if !detailed {
		return s.Name()
	}
	parts := []string{s.Name(), s.Type().String()}
	for _, t := range roadsys.SegmentAttributeTypes(s.Type()) {
		if v := s.Attribute(t); v != nil {
			parts = append(parts, fmt.Sprintf("%s: %v", t, v))
		}
	}
	return strings.Join(parts, "\n")
}
