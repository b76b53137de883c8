package io

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// WriteJSON encodes rs as indented JSON.
func WriteJSON(rs *roadsys.RoadSystem, w io.Writer) error {
	doc, err := toDocument(rs)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// ReadJSON decodes a JSON document from r and replays it into rs.
func ReadJSON(r io.Reader, rs *roadsys.RoadSystem) error {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return doc.apply(rs)
}
