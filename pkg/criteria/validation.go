package criteria

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// ValidationType tags a validation strategy.
type ValidationType int

const (
	ValidationEquals ValidationType = iota
	ValidationNotEquals
	ValidationLessThan
	ValidationOr
	ValidationNor
	ValidationDirection
)

// ValidationTypes lists every validation type in declaration order.
var ValidationTypes = []ValidationType{
	ValidationEquals, ValidationNotEquals, ValidationLessThan,
	ValidationOr, ValidationNor, ValidationDirection,
}

type validationInfo struct {
	name        string
	dataTypes   []roadsys.DataType
	discrepancy bool
}

var allDataTypes = []roadsys.DataType{roadsys.DataString, roadsys.DataInteger, roadsys.DataFractional, roadsys.DataBoolean}

var validationInfos = map[ValidationType]validationInfo{
	ValidationEquals:    {"equals", allDataTypes, true},
	ValidationNotEquals: {"not_equals", allDataTypes, true},
	ValidationLessThan:  {"less_than", []roadsys.DataType{roadsys.DataInteger, roadsys.DataFractional}, true},
	ValidationOr:        {"or", []roadsys.DataType{roadsys.DataBoolean}, false},
	ValidationNor:       {"nor", []roadsys.DataType{roadsys.DataBoolean}, false},
	ValidationDirection: {"direction", nil, false},
}

func (v ValidationType) String() string {
	if info, ok := validationInfos[v]; ok {
		return info.name
	}
	return "unknown"
}

// SupportsDiscrepancy reports whether strategies of this type honour a
// legal discrepancy. Strategies that do not simply ignore it.
func (v ValidationType) SupportsDiscrepancy() bool { return validationInfos[v].discrepancy }

// IsCompatibleWith reports whether v can compare attributes of type d.
func (v ValidationType) IsCompatibleWith(d roadsys.DataType) bool {
	return slices.Contains(validationInfos[v].dataTypes, d)
}

// ParseValidationType converts a name such as "less_than".
func ParseValidationType(s string) (ValidationType, error) {
	for v, info := range validationInfos {
		if strings.EqualFold(s, info.name) {
			return v, nil
		}
	}
	return 0, errors.InvalidArgument("unknown validation type %q", s)
}

// ValidationStrategy is a binary predicate over values of type T. Callers
// that need a symmetric result evaluate both argument orders.
type ValidationStrategy[T any] interface {
	Type() ValidationType
	Validate(a, b T) bool
	// ValidateWithDiscrepancy is Validate with a legal numeric discrepancy.
	// Strategies whose type does not support discrepancies ignore it.
	ValidateWithDiscrepancy(a, b T, discrepancy float64) bool
}

// NewAttributeStrategy returns the strategy of type v for attribute values.
// Direction validation has no attribute form and is rejected.
func NewAttributeStrategy(v ValidationType) (ValidationStrategy[any], error) {
	switch v {
	case ValidationEquals:
		return EqualsValidationStrategy{}, nil
	case ValidationNotEquals:
		return NotEqualsValidationStrategy{}, nil
	case ValidationLessThan:
		return LessThanValidationStrategy{}, nil
	case ValidationOr:
		return OrValidationStrategy{}, nil
	case ValidationNor:
		return NorValidationStrategy{}, nil
	}
	return nil, errors.InvalidArgument("%s validation does not compare attribute values", v)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func equal(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
	}
	return a == b
}

// EqualsValidationStrategy holds when both values are equal, or for numbers
// when they differ by at most the discrepancy.
type EqualsValidationStrategy struct{}

func (EqualsValidationStrategy) Type() ValidationType   { return ValidationEquals }
func (EqualsValidationStrategy) Validate(a, b any) bool { return equal(a, b) }
func (EqualsValidationStrategy) ValidateWithDiscrepancy(a, b any, d float64) bool {
	fa, okA := asFloat(a)
	fb, okB := asFloat(b)
	if !okA || !okB {
		return equal(a, b)
	}
	return math.Abs(fa-fb) <= d
}

// NotEqualsValidationStrategy holds when the values differ, or for numbers
// when they differ by more than the discrepancy.
type NotEqualsValidationStrategy struct{}

func (NotEqualsValidationStrategy) Type() ValidationType   { return ValidationNotEquals }
func (NotEqualsValidationStrategy) Validate(a, b any) bool { return !equal(a, b) }
func (NotEqualsValidationStrategy) ValidateWithDiscrepancy(a, b any, d float64) bool {
	fa, okA := asFloat(a)
	fb, okB := asFloat(b)
	if !okA || !okB {
		return !equal(a, b)
	}
	return math.Abs(fa-fb) > d
}

// LessThanValidationStrategy holds when a < b, or a < b + discrepancy.
// Checked in both directions it bounds the absolute difference.
type LessThanValidationStrategy struct{}

func (LessThanValidationStrategy) Type() ValidationType { return ValidationLessThan }
func (s LessThanValidationStrategy) Validate(a, b any) bool {
	return s.ValidateWithDiscrepancy(a, b, 0)
}
func (LessThanValidationStrategy) ValidateWithDiscrepancy(a, b any, d float64) bool {
	fa, okA := asFloat(a)
	fb, okB := asFloat(b)
	return okA && okB && fa < fb+d
}

// OrValidationStrategy holds when at least one flag is set.
type OrValidationStrategy struct{}

func (OrValidationStrategy) Type() ValidationType   { return ValidationOr }
func (OrValidationStrategy) Validate(a, b any) bool { return asBool(a) || asBool(b) }
func (s OrValidationStrategy) ValidateWithDiscrepancy(a, b any, _ float64) bool {
	return s.Validate(a, b)
}

// NorValidationStrategy holds when neither flag is set.
type NorValidationStrategy struct{}

func (NorValidationStrategy) Type() ValidationType   { return ValidationNor }
func (NorValidationStrategy) Validate(a, b any) bool { return !(asBool(a) || asBool(b)) }
func (s NorValidationStrategy) ValidateWithDiscrepancy(a, b any, _ float64) bool {
	return s.Validate(a, b)
}

// DirectionValidationStrategy holds when connector type b is in a's
// compatibility set.
type DirectionValidationStrategy struct{}

func (DirectionValidationStrategy) Type() ValidationType { return ValidationDirection }
func (DirectionValidationStrategy) Validate(a, b roadsys.ConnectorType) bool {
	return a.IsCompatibleWith(b)
}
func (s DirectionValidationStrategy) ValidateWithDiscrepancy(a, b roadsys.ConnectorType, _ float64) bool {
	return s.Validate(a, b)
}

// validateBoth evaluates s in both argument orders, with the discrepancy if
// the strategy supports one.
func validateBoth[T any](s ValidationStrategy[T], a, b T, discrepancy float64) bool {
	if s.Type().SupportsDiscrepancy() {
		return s.ValidateWithDiscrepancy(a, b, discrepancy) && s.ValidateWithDiscrepancy(b, a, discrepancy)
	}
	return s.Validate(a, b) && s.Validate(b, a)
}
