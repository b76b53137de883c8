package render

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadnet/pkg/criteria"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

func violatingNetwork(t *testing.T) (*roadsys.RoadSystem, *criteria.CriteriaManager, []*roadsys.Segment) {
	t.Helper()
	logger := log.New(io.Discard)
	rs := roadsys.New(nil, logger)
	m := criteria.NewCriteriaManager(rs, nil, nil, logger)
	c, err := m.CreateCriterionOfType(criteria.CriterionConnector)
	if err != nil {
		t.Fatal(err)
	}
	c.SetSegmentTypes(roadsys.SegmentTypes...)

	a, _ := rs.CreateSegment(roadsys.SegmentBase)
	b, _ := rs.CreateSegment(roadsys.SegmentBase)
	d, _ := rs.CreateSegment(roadsys.SegmentExit)
	exitA, _ := a.Connector(roadsys.ConnectorExit)
	exitB, _ := b.Connector(roadsys.ConnectorExit)
	if _, err := rs.ConnectConnectors(exitA, exitB); err != nil {
		t.Fatal(err)
	}
	if _, err := rs.CreateGroup(a, b); err != nil {
		t.Fatal(err)
	}
	return rs, m, []*roadsys.Segment{a, b, d}
}

func TestToDOT(t *testing.T) {
	rs, m, segs := violatingNetwork(t)
	a, b, d := segs[0], segs[1], segs[2]

	dot := ToDOT(rs, m.ViolationManager().Violations(), Options{})

	for _, want := range []string{
		"graph G {",
		"rankdir=LR;",
		`subgraph "cluster_` + rs.Groups()[0].ID().String() + `"`,
		`label="Group 1";`,
		`"` + a.ID().String() + `" -- "` + b.ID().String() + `" [taillabel="exit", headlabel="exit"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT misses %q:\n%s", want, dot)
		}
	}

	for _, s := range []*roadsys.Segment{a, b} {
		line := nodeLine(t, dot, s)
		if !strings.Contains(line, "color=red") || !strings.Contains(line, `tooltip="Connector 1"`) {
			t.Errorf("violating node %s not highlighted: %s", s.Name(), line)
		}
	}
	if line := nodeLine(t, dot, d); strings.Contains(line, "color=red") || !strings.Contains(line, "peripheries=2") {
		t.Errorf("ramp node %s rendered as %s", d.Name(), line)
	}
}

func TestToDOTOptions(t *testing.T) {
	rs, _, segs := violatingNetwork(t)

	dot := ToDOT(rs, nil, Options{Detailed: true, Positions: true})
	if !strings.Contains(dot, "layout=neato;") || strings.Contains(dot, "rankdir") {
		t.Errorf("positioned DOT has wrong layout header:\n%s", dot)
	}
	line := nodeLine(t, dot, segs[0])
	if !strings.Contains(line, `pos="0,0!"`) {
		t.Errorf("node not pinned: %s", line)
	}
	if !strings.Contains(line, `label="Segment 1\nbase\nlength: 100`) {
		t.Errorf("detailed label missing: %s", line)
	}
	if strings.Contains(dot, "color=red") {
		t.Error("highlighting without violations")
	}
}

func nodeLine(t *testing.T, dot string, s *roadsys.Segment) string {
	t.Helper()
	prefix := `"` + s.ID().String() + `" [`
	for _, line := range strings.Split(dot, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), prefix) {
			return line
		}
	}
	t.Fatalf("no node line for %s", s.Name())
	return ""
}

func TestRenderSVG(t *testing.T) {
	rs, m, _ := violatingNetwork(t)
	svg, err := RenderSVG(context.Background(), ToDOT(rs, m.ViolationManager().Violations(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<?xml")) && !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output is not SVG: %.100s", svg)
	}
	if !bytes.Contains(svg, []byte(`xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("viewBox not normalized: %.300s", svg)
	}

	if _, err := RenderSVG(context.Background(), "graph {"); err == nil {
		t.Error("RenderSVG accepted broken DOT")
	}
}
