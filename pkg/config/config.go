// Package config loads roadnet settings from TOML.
//
// A configuration has three sections: segment defaults applied by the
// segment factory, value ranges overriding [criteria.DefaultRanges], and
// the criteria instantiated for a check run:
//
//	[segment]
//	length = 100.0
//	lane_count = 2
//
//	[ranges.lane_count]
//	min = 1
//	max = 6
//
//	[[criteria]]
//	kind = "compatibility"
//	name = "Matching lane count"
//	attribute = "lane_count"
//	validation = "equals"
//	discrepancy = 1
//	segment_types = ["base", "entrance", "exit"]
//
// An empty segment_types list applies the criterion to every segment type.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/roadnet/pkg/criteria"
	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// Config is the root of a configuration file.
type Config struct {
	Segment  Segment                        `toml:"segment"`
	Ranges   map[string]geom.Range[float64] `toml:"ranges" validate:"dive,keys,attribute,endkeys"`
	Criteria []Criterion                    `toml:"criteria" validate:"dive"`
}

// Segment holds the attribute defaults of new segments.
type Segment struct {
	Length        float64 `toml:"length" validate:"gt=0"`
	Slope         float64 `toml:"slope"`
	LaneCount     int     `toml:"lane_count" validate:"gte=1"`
	MaxSpeed      *int    `toml:"max_speed" validate:"omitempty,gt=0"`
	Conurbation   bool    `toml:"conurbation"`
	RampLaneCount int     `toml:"ramp_lane_count" validate:"gte=1"`
	RampMaxSpeed  *int    `toml:"ramp_max_speed" validate:"omitempty,gt=0"`
}

// Criterion describes one criterion to instantiate. Attribute and
// Validation default to lane_count and equals where the kind needs them.
type Criterion struct {
	Kind         string   `toml:"kind" validate:"required,criterion_kind"`
	Name         string   `toml:"name,omitempty" validate:"max=256"`
	Attribute    string   `toml:"attribute,omitempty" validate:"omitempty,attribute"`
	Validation   string   `toml:"validation,omitempty" validate:"omitempty,validation_type"`
	Discrepancy  float64  `toml:"discrepancy,omitempty" validate:"gte=0"`
	SegmentTypes []string `toml:"segment_types,omitempty" validate:"dive,segment_type"`
}

// Default returns the built-in configuration: factory segment defaults,
// built-in ranges and a criteria set covering every criterion kind.
func Default() Config {
	d := roadsys.DefaultSegmentDefaults()
	return Config{
		Segment: Segment{
			Length:        d.Length,
			Slope:         d.Slope,
			LaneCount:     d.LaneCount,
			MaxSpeed:      d.MaxSpeed,
			Conurbation:   d.Conurbation,
			RampLaneCount: d.RampLaneCount,
			RampMaxSpeed:  d.RampMaxSpeed,
		},
		Criteria: []Criterion{
			{Kind: "completeness", Name: "Complete attributes"},
			{Kind: "connector", Name: "Connector directions"},
			{Kind: "value", Name: "Plausible lane count", Attribute: "lane_count"},
			{Kind: "value", Name: "Plausible length", Attribute: "length"},
			{Kind: "value", Name: "Plausible slope", Attribute: "slope"},
			{Kind: "compatibility", Name: "Lane count continuity", Attribute: "lane_count", Validation: "equals", Discrepancy: 1},
		},
	}
}

// Load reads the TOML file at path on top of Default and validates the
// result. Keys unknown to Config are rejected.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses TOML from r on top of Default. A file declaring any
// [[criteria]] replaces the default criteria set.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	cfg.Criteria = nil
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if !md.IsDefined("criteria") {
		cfg.Criteria = Default().Criteria
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}

// SegmentDefaults converts the segment section for the segment factory.
func (c Config) SegmentDefaults() roadsys.SegmentDefaults {
	s := c.Segment
	return roadsys.SegmentDefaults{
		Length:        s.Length,
		Slope:         s.Slope,
		LaneCount:     s.LaneCount,
		MaxSpeed:      s.MaxSpeed,
		Conurbation:   s.Conurbation,
		RampLaneCount: s.RampLaneCount,
		RampMaxSpeed:  s.RampMaxSpeed,
	}
}

// ValueRanges returns the built-in ranges with the configured overrides
// applied.
func (c Config) ValueRanges() (criteria.Ranges, error) {
	overrides := make(criteria.Ranges, len(c.Ranges))
	for name, rng := range c.Ranges {
		attr, err := roadsys.ParseAttributeType(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "ranges.%s", name)
		}
		overrides[attr] = rng
	}
	return criteria.DefaultRanges().With(overrides), nil
}

// BuildCriteria instantiates the configured criteria and activates them in
// m, in file order.
func (c Config) BuildCriteria(m *criteria.CriteriaManager) ([]criteria.Criterion, error) {
	out := make([]criteria.Criterion, 0, len(c.Criteria))
	for i, cc := range c.Criteria {
		crit, err := cc.build(m.Factory())
		if err != nil {
			return out, errors.Wrap(errors.ErrCodeInvalidConfig, err, "criteria[%d]", i)
		}
		if err := m.AddCriterion(crit); err != nil {
			return out, err
		}
		types, err := cc.segmentTypes()
		if err != nil {
			return out, errors.Wrap(errors.ErrCodeInvalidConfig, err, "criteria[%d]", i)
		}
		crit.SetSegmentTypes(types...)
		out = append(out, crit)
	}
	return out, nil
}

func (cc Criterion) build(f *criteria.Factory) (criteria.Criterion, error) {
	kind, err := criteria.ParseCriterionType(cc.Kind)
	if err != nil {
		return nil, err
	}
	attr := roadsys.AttrLaneCount
	if cc.Attribute != "" {
		if attr, err = roadsys.ParseAttributeType(cc.Attribute); err != nil {
			return nil, err
		}
	}
	validation := criteria.ValidationEquals
	if cc.Validation != "" {
		if validation, err = criteria.ParseValidationType(cc.Validation); err != nil {
			return nil, err
		}
	}

	name := cc.Name
	if name == "" {
		name = fmt.Sprintf("%s %s", kind, attr)
	}

	switch kind {
	case criteria.CriterionValue:
		return f.NewValue(name, attr)
	case criteria.CriterionCompatibility:
		return criteria.NewCompatibilityCriterion(name, attr, validation, cc.Discrepancy)
	}
	crit, err := f.Create(kind)
	if err != nil {
		return nil, err
	}
	if cc.Name != "" {
		if err := crit.SetName(cc.Name); err != nil {
			return nil, err
		}
	}
	return crit, nil
}

func (cc Criterion) segmentTypes() ([]roadsys.SegmentType, error) {
	if len(cc.SegmentTypes) == 0 {
		return roadsys.SegmentTypes, nil
	}
	types := make([]roadsys.SegmentType, 0, len(cc.SegmentTypes))
	for _, name := range cc.SegmentTypes {
		t, err := roadsys.ParseSegmentType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
