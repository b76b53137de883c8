package io

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// Supported format names.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatGeoJSON = "geojson"
)

// FormatOf derives the format name from the extension of path.
func FormatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "yml" {
		ext = FormatYAML
	}
	if err := errors.ValidateFormat(ext, FormatJSON, FormatYAML, FormatGeoJSON); err != nil {
		return "", err
	}
	return ext, nil
}

// Import reads the JSON or YAML file at path into rs.
func Import(path string, rs *roadsys.RoadSystem) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format, rs)
}

// Read decodes r in the named format into rs. GeoJSON cannot be read.
func Read(r io.Reader, format string, rs *roadsys.RoadSystem) error {
	switch format {
	case FormatJSON:
		return ReadJSON(r, rs)
	case FormatYAML:
		return ReadYAML(r, rs)
	}
	return errors.New(errors.ErrCodeUnsupported, "cannot import %s", format)
}

// Export writes rs to path in the format given by its extension.
func Export(rs *roadsys.RoadSystem, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := Write(rs, format, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes rs in the named format.
func Write(rs *roadsys.RoadSystem, format string, w io.Writer) error {
	switch format {
	case FormatJSON:
		return WriteJSON(rs, w)
	case FormatYAML:
		return WriteYAML(rs, w)
	case FormatGeoJSON:
		return WriteGeoJSON(rs, w)
	}
	return errors.New(errors.ErrCodeUnsupported, "cannot export %s", format)
}
