package io

import (
	"io"

	geojson "github.com/paulmach/go.geojson"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// WriteGeoJSON writes rs as a GeoJSON FeatureCollection in canvas
// coordinates. Segment features carry their id, type, name and set
// attributes as properties; connection features carry the connector types
// they join.
func WriteGeoJSON(rs *roadsys.RoadSystem, w io.Writer) error {
	fc := geojson.NewFeatureCollection()

	for _, s := range rs.Segments() {
		entry, _ := s.Connector(roadsys.ConnectorEntry)
		exit, _ := s.Connector(roadsys.ConnectorExit)
		f := geojson.NewLineStringFeature([][]float64{coords(entry.Position()), coords(exit.Position())})
		f.ID = s.ID().String()
		f.SetProperty("kind", roadsys.KindSegment.String())
		f.SetProperty("type", s.Type().String())
		f.SetProperty("name", s.Name())
		for _, t := range roadsys.SegmentAttributeTypes(s.Type()) {
			if v := s.Attribute(t); v != nil {
				f.SetProperty(t.String(), v)
			}
		}
		fc.AddFeature(f)

		for _, c := range s.Connectors() {
			if c.Type().IsRamp() {
				ramp := geojson.NewLineStringFeature([][]float64{coords(s.Center()), coords(c.Position())})
				ramp.SetProperty("kind", "ramp")
				ramp.SetProperty("segment", s.ID().String())
				ramp.SetProperty("connector", c.Type().String())
				fc.AddFeature(ramp)
			}
		}
	}

	for _, conn := range rs.Connections() {
		a, b := conn.Connectors()
		f := geojson.NewPointFeature(coords(conn.Center()))
		f.ID = conn.ID().String()
		f.SetProperty("kind", "connection")
		f.SetProperty("from", a.Segment().ID().String())
		f.SetProperty("from_connector", a.Type().String())
		f.SetProperty("to", b.Segment().ID().String())
		f.SetProperty("to_connector", b.Type().String())
		fc.AddFeature(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode geojson")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write geojson")
	}
	return nil
}

func coords(p geom.Position) []float64 {
	return []float64{p.X, p.Y}
}
