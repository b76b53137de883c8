package roadsys

import (
	"slices"
	"strings"

	"github.com/matzehuels/roadnet/pkg/errors"
)

// SegmentType distinguishes plain road pieces from ramp pieces.
type SegmentType int

const (
	// SegmentBase is a plain road piece with an entry and an exit.
	SegmentBase SegmentType = iota
	// SegmentEntrance is a road piece with an additional on-ramp.
	SegmentEntrance
	// SegmentExit is a road piece with an additional off-ramp.
	SegmentExit
)

// SegmentTypes lists every segment type in declaration order.
var SegmentTypes = []SegmentType{SegmentBase, SegmentEntrance, SegmentExit}

var segmentTypeNames = map[SegmentType]string{
	SegmentBase:     "base",
	SegmentEntrance: "entrance",
	SegmentExit:     "exit",
}

func (t SegmentType) String() string {
	if s, ok := segmentTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether t is one of the declared segment types.
func (t SegmentType) Valid() bool {
	_, ok := segmentTypeNames[t]
	return ok
}

// IsRamp reports whether segments of this type carry a ramp connector.
func (t SegmentType) IsRamp() bool { return t == SegmentEntrance || t == SegmentExit }

// ConnectorTypes returns the fixed connector layout of the segment type.
func (t SegmentType) ConnectorTypes() []ConnectorType {
	switch t {
	case SegmentEntrance:
		return []ConnectorType{ConnectorEntry, ConnectorExit, ConnectorRampEntry}
	case SegmentExit:
		return []ConnectorType{ConnectorEntry, ConnectorExit, ConnectorRampExit}
	default:
		return []ConnectorType{ConnectorEntry, ConnectorExit}
	}
}

// ParseSegmentType converts a name such as "entrance" into a SegmentType.
func ParseSegmentType(s string) (SegmentType, error) {
	for t, name := range segmentTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, errors.InvalidArgument("unknown segment type %q", s)
}

// ConnectorType identifies the role of a connector on its segment.
type ConnectorType int

const (
	ConnectorEntry ConnectorType = iota
	ConnectorExit
	ConnectorRampEntry
	ConnectorRampExit
)

// ConnectorTypes lists every connector type in declaration order.
var ConnectorTypes = []ConnectorType{ConnectorEntry, ConnectorExit, ConnectorRampEntry, ConnectorRampExit}

var connectorTypeNames = map[ConnectorType]string{
	ConnectorEntry:     "entry",
	ConnectorExit:      "exit",
	ConnectorRampEntry: "ramp_entry",
	ConnectorRampExit:  "ramp_exit",
}

// connectorCompatibility is the directed table of connector types that
// traffic may flow between. Both the direction validation strategy and the
// connector criterion read it through CompatibleTypes.
var connectorCompatibility = map[ConnectorType][]ConnectorType{
	ConnectorEntry:     {ConnectorExit, ConnectorRampExit},
	ConnectorExit:      {ConnectorEntry, ConnectorRampEntry},
	ConnectorRampEntry: {ConnectorExit},
	ConnectorRampExit:  {ConnectorEntry},
}

func (t ConnectorType) String() string {
	if s, ok := connectorTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// IsRamp reports whether t belongs to a ramp.
func (t ConnectorType) IsRamp() bool { return t == ConnectorRampEntry || t == ConnectorRampExit }

// CompatibleTypes returns the connector types t may be connected to.
func (t ConnectorType) CompatibleTypes() []ConnectorType {
	return slices.Clone(connectorCompatibility[t])
}

// IsCompatibleWith reports whether other is in t's compatibility set. The
// relation is directed; callers that need symmetry check both directions.
func (t ConnectorType) IsCompatibleWith(other ConnectorType) bool {
	return slices.Contains(connectorCompatibility[t], other)
}

// ParseConnectorType converts a name such as "ramp_entry" into a ConnectorType.
func ParseConnectorType(s string) (ConnectorType, error) {
	for t, name := range connectorTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, errors.InvalidArgument("unknown connector type %q", s)
}

// ElementKind distinguishes the two element variants.
type ElementKind int

const (
	KindSegment ElementKind = iota
	KindGroup
)

func (k ElementKind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "segment"
}
