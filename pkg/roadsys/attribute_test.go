package roadsys

import (
	"math"
	"testing"

	"github.com/matzehuels/roadnet/pkg/errors"
)

func TestSetAttribute(t *testing.T) {
	rs := newTestSystem(t)
	base := mustSegment(t, rs, SegmentBase)
	ramp := mustSegment(t, rs, SegmentEntrance)

	tests := []struct {
		name    string
		seg     *Segment
		attr    AttributeType
		value   any
		want    any
		wantErr errors.Code
	}{
		{"int lanes", base, AttrLaneCount, 3, 3, ""},
		{"integral float lanes", base, AttrLaneCount, 4.0, 4, ""},
		{"fractional lanes", base, AttrLaneCount, 2.5, nil, errors.ErrCodeInvalidArgument},
		{"huge float lanes", base, AttrLaneCount, 1e20, nil, errors.ErrCodeInvalidArgument},
		{"negative huge float lanes", base, AttrLaneCount, -1e20, nil, errors.ErrCodeInvalidArgument},
		{"uint lanes overflow", base, AttrLaneCount, uint(math.MaxUint), nil, errors.ErrCodeInvalidArgument},
		{"int length", base, AttrLength, 250, 250.0, ""},
		{"bool conurbation", base, AttrConurbation, true, true, ""},
		{"string conurbation", base, AttrConurbation, "yes", nil, errors.ErrCodeInvalidArgument},
		{"unset speed", base, AttrMaxSpeed, nil, nil, ""},
		{"ramp attr on base", base, AttrRampLaneCount, 1, nil, errors.ErrCodeInvalidArgument},
		{"ramp attr on ramp", ramp, AttrRampLaneCount, 2, 2, ""},
		{"junction", ramp, AttrJunction, "Köln-Nord", "Köln-Nord", ""},
		{"comment", base, AttrComment, "needs survey", "needs survey", ""},
		{"empty name", base, AttrName, "", nil, errors.ErrCodeInvalidName},
		{"unset name", base, AttrName, nil, nil, errors.ErrCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.seg.SetAttribute(tt.attr, tt.value)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetAttribute: %v", err)
			}
			if got := tt.seg.Attribute(tt.attr); got != tt.want {
				t.Errorf("Attribute = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestAttributeAccessors(t *testing.T) {
	rs := newTestSystem(t)
	s := mustSegment(t, rs, SegmentExit)

	var types []AttributeType
	for _, a := range s.AttributeAccessors() {
		types = append(types, a.Type())
	}
	want := []AttributeType{AttrName, AttrComment, AttrLength, AttrSlope, AttrLaneCount, AttrMaxSpeed,
		AttrConurbation, AttrRampLaneCount, AttrRampMaxSpeed, AttrJunction}
	if len(types) != len(want) {
		t.Fatalf("accessor types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("accessor %d = %v, want %v", i, types[i], want[i])
		}
	}

	g, _ := rs.CreateGroup(s)
	if n := len(g.AttributeAccessors()); n != 2 {
		t.Errorf("group accessors = %d, want 2", n)
	}
}

func TestSharedAttributeAccessors(t *testing.T) {
	rs := newTestSystem(t)
	a := mustSegment(t, rs, SegmentBase)
	b := mustSegment(t, rs, SegmentBase)
	if err := a.SetAttribute(AttrLaneCount, 3); err != nil {
		t.Fatal(err)
	}
	if err := b.SetAttribute(AttrLaneCount, 2); err != nil {
		t.Fatal(err)
	}

	var lanes *AttributeAccessor
	for _, acc := range rs.SharedAttributeAccessors(a, b) {
		if acc.Type() == AttrLaneCount {
			lanes = acc
		}
	}
	if lanes == nil {
		t.Fatal("no shared lane count accessor")
	}
	if v := lanes.Value(); v != nil {
		t.Errorf("Value = %v, want nil for differing values", v)
	}

	if err := lanes.SetValue(4); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if a.Attribute(AttrLaneCount) != 4 || b.Attribute(AttrLaneCount) != 4 {
		t.Errorf("lane counts = %v, %v; want 4, 4", a.Attribute(AttrLaneCount), b.Attribute(AttrLaneCount))
	}
	if v := lanes.Value(); v != 4 {
		t.Errorf("Value = %v, want 4", v)
	}

	if err := lanes.SetValue("four"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("SetValue(string) err = %v", err)
	}
}

func TestSharedAttributeAccessorsIntersection(t *testing.T) {
	rs := newTestSystem(t)
	base := mustSegment(t, rs, SegmentBase)
	ramp := mustSegment(t, rs, SegmentEntrance)
	g, _ := rs.CreateGroup(ramp)

	has := func(accs []*AttributeAccessor, t AttributeType) bool {
		for _, a := range accs {
			if a.Type() == t {
				return true
			}
		}
		return false
	}

	mixed := rs.SharedAttributeAccessors(base, ramp)
	if !has(mixed, AttrLaneCount) || has(mixed, AttrRampLaneCount) {
		t.Error("base+ramp should share lane count but not ramp lane count")
	}

	withGroup := rs.SharedAttributeAccessors(base, g)
	if len(withGroup) != 2 || !has(withGroup, AttrName) || !has(withGroup, AttrComment) {
		t.Errorf("segment+group accessors = %d, want name and comment", len(withGroup))
	}

	if got := rs.SharedAttributeAccessors(); got != nil {
		t.Errorf("no elements: %v", got)
	}
}

func TestParseTypes(t *testing.T) {
	if st, err := ParseSegmentType("Entrance"); err != nil || st != SegmentEntrance {
		t.Errorf("ParseSegmentType = %v, %v", st, err)
	}
	if _, err := ParseSegmentType("bridge"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("ParseSegmentType(bridge) err = %v", err)
	}
	if at, err := ParseAttributeType("lane_count"); err != nil || at != AttrLaneCount {
		t.Errorf("ParseAttributeType = %v, %v", at, err)
	}
	if ct, err := ParseConnectorType("ramp_exit"); err != nil || ct != ConnectorRampExit {
		t.Errorf("ParseConnectorType = %v, %v", ct, err)
	}
}

func TestConnectorCompatibility(t *testing.T) {
	tests := []struct {
		a, b ConnectorType
		want bool
	}{
		{ConnectorEntry, ConnectorExit, true},
		{ConnectorEntry, ConnectorRampExit, true},
		{ConnectorExit, ConnectorRampEntry, true},
		{ConnectorExit, ConnectorExit, false},
		{ConnectorEntry, ConnectorEntry, false},
		{ConnectorRampEntry, ConnectorRampExit, false},
	}
	for _, tt := range tests {
		if got := tt.a.IsCompatibleWith(tt.b); got != tt.want {
			t.Errorf("%v.IsCompatibleWith(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
