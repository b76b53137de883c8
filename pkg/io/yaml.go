package io

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// WriteYAML encodes rs as YAML.
func WriteYAML(rs *roadsys.RoadSystem, w io.Writer) error {
	doc, err := toDocument(rs)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
	}
	return nil
}

// ReadYAML decodes a YAML document from r and replays it into rs.
func ReadYAML(r io.Reader, rs *roadsys.RoadSystem) error {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return doc.apply(rs)
}
