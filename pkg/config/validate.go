package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/roadnet/pkg/criteria"
	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("attribute", parses(roadsys.ParseAttributeType))
	_ = validate.RegisterValidation("segment_type", parses(roadsys.ParseSegmentType))
	_ = validate.RegisterValidation("criterion_kind", parses(criteria.ParseCriterionType))
	_ = validate.RegisterValidation("validation_type", parses(criteria.ParseValidationType))
	validate.RegisterStructValidation(validateRange, geom.Range[float64]{})
	validate.RegisterStructValidation(validateCriterion, Criterion{})
}

func parses[T any](parse func(string) (T, error)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := parse(fl.Field().String())
		return err == nil
	}
}

func validateRange(sl validator.StructLevel) {
	r := sl.Current().Interface().(geom.Range[float64])
	if r.Min > r.Max {
		sl.ReportError(r.Max, "Max", "max", "gtefield", "Min")
	}
}

// validateCriterion rejects validation types that cannot compare the
// configured attribute.
func validateCriterion(sl validator.StructLevel) {
	cc := sl.Current().Interface().(Criterion)
	if cc.Validation == "" || cc.Attribute == "" {
		return
	}
	v, err := criteria.ParseValidationType(cc.Validation)
	if err != nil {
		return
	}
	attr, err := roadsys.ParseAttributeType(cc.Attribute)
	if err != nil {
		return
	}
	if !v.IsCompatibleWith(attr.DataType()) {
		sl.ReportError(cc.Validation, "Validation", "validation", "compatible_validation", cc.Attribute)
	}
}

// Validate checks c and reports every violated rule in one
// INVALID_CONFIG error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = describe(fe)
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "attribute", "segment_type", "criterion_kind", "validation_type":
		return fmt.Sprintf("%s: unknown %s %q", field, strings.ReplaceAll(fe.Tag(), "_", " "), fe.Value())
	case "gtefield":
		return fmt.Sprintf("%s: max must not be below min", field)
	case "compatible_validation":
		return fmt.Sprintf("%s: %v cannot compare %s", field, fe.Value(), fe.Param())
	}
	return fmt.Sprintf("%s fails %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
}
