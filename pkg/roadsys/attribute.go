package roadsys

import (
	stderrors "errors"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/roadnet/pkg/errors"
)

// DataType is the value type of an attribute.
type DataType int

const (
	DataString DataType = iota
	DataInteger
	DataFractional
	DataBoolean
)

func (d DataType) String() string {
	switch d {
	case DataInteger:
		return "integer"
	case DataFractional:
		return "fractional"
	case DataBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// IsNumeric reports whether values of d are numbers.
func (d DataType) IsNumeric() bool { return d == DataInteger || d == DataFractional }

// AttributeType names a property of an element.
type AttributeType int

const (
	AttrName AttributeType = iota
	AttrComment
	AttrLength        // metres
	AttrSlope         // percent
	AttrLaneCount     // lanes
	AttrMaxSpeed      // km/h
	AttrConurbation   // inside a built-up area
	AttrRampLaneCount // lanes on the ramp
	AttrRampMaxSpeed  // km/h on the ramp
	AttrJunction      // junction name of the ramp
)

// AttributeTypes lists every attribute type in declaration order.
var AttributeTypes = []AttributeType{
	AttrName, AttrComment, AttrLength, AttrSlope, AttrLaneCount, AttrMaxSpeed,
	AttrConurbation, AttrRampLaneCount, AttrRampMaxSpeed, AttrJunction,
}

type attributeInfo struct {
	name     string
	dataType DataType
}

var attributeInfos = map[AttributeType]attributeInfo{
	AttrName:          {"name", DataString},
	AttrComment:       {"comment", DataString},
	AttrLength:        {"length", DataFractional},
	AttrSlope:         {"slope", DataFractional},
	AttrLaneCount:     {"lane_count", DataInteger},
	AttrMaxSpeed:      {"max_speed", DataInteger},
	AttrConurbation:   {"conurbation", DataBoolean},
	AttrRampLaneCount: {"ramp_lane_count", DataInteger},
	AttrRampMaxSpeed:  {"ramp_max_speed", DataInteger},
	AttrJunction:      {"junction", DataString},
}

var (
	elementAttributes = []AttributeType{AttrName, AttrComment}
	baseAttributes    = []AttributeType{AttrLength, AttrSlope, AttrLaneCount, AttrMaxSpeed, AttrConurbation}
	rampAttributes    = []AttributeType{AttrRampLaneCount, AttrRampMaxSpeed, AttrJunction}
)

func (t AttributeType) String() string {
	if info, ok := attributeInfos[t]; ok {
		return info.name
	}
	return "unknown"
}

// DataType returns the value type of t.
func (t AttributeType) DataType() DataType { return attributeInfos[t].dataType }

// ParseAttributeType converts a name such as "lane_count" into an AttributeType.
func ParseAttributeType(s string) (AttributeType, error) {
	for t, info := range attributeInfos {
		if strings.EqualFold(s, info.name) {
			return t, nil
		}
	}
	return 0, errors.InvalidArgument("unknown attribute type %q", s)
}

// SegmentAttributeTypes returns the data attributes a segment of type st
// carries, excluding name and comment.
func SegmentAttributeTypes(st SegmentType) []AttributeType {
	types := slices.Clone(baseAttributes)
	if st.IsRamp() {
		types = append(types, rampAttributes...)
	}
	return types
}

// CoerceValue converts v into the canonical Go type for d: string, int,
// float64 or bool. A nil value means "unset" and is always accepted.
func CoerceValue(d DataType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch d {
	case DataString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case DataBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case DataInteger:
		switch n := v.(type) {
		case int:
			return n, nil
		case int32:
			return int(n), nil
		case int64:
			return int(n), nil
		case uint:
			if n <= math.MaxInt {
				return int(n), nil
			}
		case float64:
			// float64(math.MaxInt) rounds up to 2^63, which int cannot hold.
			if n == math.Trunc(n) && n >= math.MinInt && n < math.MaxInt {
				return int(n), nil
			}
		}
	case DataFractional:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	}
	return nil, errors.InvalidArgument("value %v (%T) is not a valid %s", v, v, d)
}

// AttributeAccessor reads and writes one attribute of one or more elements.
//
// Accessors returned by [RoadSystem.SharedAttributeAccessors] span several
// elements: Value reports the common value (nil when the values differ) and
// SetValue writes every element.
type AttributeAccessor struct {
	attr AttributeType
	get  func() any
	set  func(any) error
}

// NewAttributeAccessor builds an accessor from a getter and a setter.
func NewAttributeAccessor(attr AttributeType, get func() any, set func(any) error) *AttributeAccessor {
	return &AttributeAccessor{attr: attr, get: get, set: set}
}

// Type returns the accessed attribute type.
func (a *AttributeAccessor) Type() AttributeType { return a.attr }

// Value returns the current value, or nil if unset or inhomogeneous.
func (a *AttributeAccessor) Value() any { return a.get() }

// SetValue writes v, converting it to the attribute's data type first.
func (a *AttributeAccessor) SetValue(v any) error {
	cv, err := CoerceValue(a.attr.DataType(), v)
	if err != nil {
		return err
	}
	return a.set(cv)
}

func sharedAccessor(attr AttributeType, members []*AttributeAccessor) *AttributeAccessor {
	get := func() any {
		var common any
		for i, m := range members {
			v := m.Value()
			if i == 0 {
				common = v
				continue
			}
			if v != common {
				return nil
			}
		}
		return common
	}
	set := func(v any) error {
		var errs []error
		for _, m := range members {
			if err := m.set(v); err != nil {
				errs = append(errs, err)
			}
		}
		return stderrors.Join(errs...)
	}
	return NewAttributeAccessor(attr, get, set)
}
