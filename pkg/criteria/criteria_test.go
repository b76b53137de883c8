package criteria

import (
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

type fixture struct {
	rs *roadsys.RoadSystem
	m  *CriteriaManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := log.New(io.Discard)
	rs := roadsys.New(nil, logger)
	return &fixture{rs: rs, m: NewCriteriaManager(rs, nil, nil, logger)}
}

func (f *fixture) segment(t *testing.T, st roadsys.SegmentType) *roadsys.Segment {
	t.Helper()
	s, err := f.rs.CreateSegment(st)
	if err != nil {
		t.Fatalf("CreateSegment: %v", err)
	}
	return s
}

func (f *fixture) connect(t *testing.T, a *roadsys.Segment, at roadsys.ConnectorType, b *roadsys.Segment, bt roadsys.ConnectorType) *roadsys.Connection {
	t.Helper()
	ca, _ := a.Connector(at)
	cb, _ := b.Connector(bt)
	conn, err := f.rs.ConnectConnectors(ca, cb)
	if err != nil {
		t.Fatalf("ConnectConnectors: %v", err)
	}
	return conn
}

func (f *fixture) set(t *testing.T, s *roadsys.Segment, attr roadsys.AttributeType, v any) {
	t.Helper()
	if err := s.SetAttribute(attr, v); err != nil {
		t.Fatalf("SetAttribute(%s, %v): %v", attr, v, err)
	}
}

func (f *fixture) create(t *testing.T, ct CriterionType, types ...roadsys.SegmentType) Criterion {
	t.Helper()
	c, err := f.m.CreateCriterionOfType(ct)
	if err != nil {
		t.Fatalf("CreateCriterionOfType(%s): %v", ct, err)
	}
	c.SetSegmentTypes(types...)
	return c
}

func (f *fixture) violations() []*Violation { return f.m.ViolationManager().Violations() }

func TestIsolatedSegmentHasNoViolations(t *testing.T) {
	f := newFixture(t)
	f.segment(t, roadsys.SegmentBase)
	c := f.create(t, CriterionConnector, roadsys.SegmentBase)

	if n := len(c.Violations()); n != 0 {
		t.Errorf("criterion holds %d violations, want 0", n)
	}
	if n := len(f.violations()); n != 0 {
		t.Errorf("manager holds %d violations, want 0", n)
	}
}

func TestIncompatibleConnectorsRaiseOneViolation(t *testing.T) {
	f := newFixture(t)
	f.create(t, CriterionConnector, roadsys.SegmentTypes...)
	a := f.segment(t, roadsys.SegmentEntrance)
	b := f.segment(t, roadsys.SegmentEntrance)

	conn := f.connect(t, a, roadsys.ConnectorExit, b, roadsys.ConnectorExit)

	got := f.violations()
	if len(got) != 1 {
		t.Fatalf("violations = %v, want exactly 1", got)
	}
	if !got[0].Involves(a) || !got[0].Involves(b) {
		t.Errorf("violation %v does not name both segments", got[0])
	}

	if err := f.rs.DisconnectConnection(conn); err != nil {
		t.Fatalf("DisconnectConnection: %v", err)
	}
	if n := len(f.violations()); n != 0 {
		t.Errorf("violations after disconnect = %d, want 0", n)
	}

	f.connect(t, a, roadsys.ConnectorExit, b, roadsys.ConnectorEntry)
	if n := len(f.violations()); n != 0 {
		t.Errorf("violations for exit->entry = %d, want 0", n)
	}
}

func TestLessThanWithDiscrepancy(t *testing.T) {
	f := newFixture(t)
	c, err := NewCompatibilityCriterion("Length", roadsys.AttrLength, ValidationLessThan, 1)
	if err != nil {
		t.Fatalf("NewCompatibilityCriterion: %v", err)
	}
	if err := f.m.AddCriterion(c); err != nil {
		t.Fatalf("AddCriterion: %v", err)
	}
	c.SetSegmentTypes(roadsys.SegmentBase)

	a := f.segment(t, roadsys.SegmentBase)
	b := f.segment(t, roadsys.SegmentBase)
	f.set(t, a, roadsys.AttrLength, 3.0)
	f.set(t, b, roadsys.AttrLength, 1.0)
	f.connect(t, a, roadsys.ConnectorExit, b, roadsys.ConnectorEntry)

	if n := len(f.violations()); n != 1 {
		t.Fatalf("violations = %d, want 1", n)
	}

	f.set(t, a, roadsys.AttrLength, 1.0)
	if n := len(f.violations()); n != 0 {
		t.Errorf("violations after equalizing = %d, want 0", n)
	}

	// 1 and 1.9 differ by less than the discrepancy in both directions.
	f.set(t, b, roadsys.AttrLength, 1.9)
	if n := len(f.violations()); n != 0 {
		t.Errorf("violations within discrepancy = %d, want 0", n)
	}
}

func TestRemovalPurgesViolations(t *testing.T) {
	f := newFixture(t)
	f.create(t, CriterionConnector, roadsys.SegmentTypes...)
	f.create(t, CriterionCompleteness, roadsys.SegmentTypes...)

	x := f.segment(t, roadsys.SegmentEntrance)
	y := f.segment(t, roadsys.SegmentEntrance)
	z := f.segment(t, roadsys.SegmentBase)
	f.connect(t, x, roadsys.ConnectorExit, y, roadsys.ConnectorExit)
	f.connect(t, x, roadsys.ConnectorEntry, z, roadsys.ConnectorEntry)

	if len(f.m.ViolationManager().ViolationsInvolving(x)) == 0 {
		t.Fatal("expected violations naming x before removal")
	}
	if err := f.rs.RemoveElement(x); err != nil {
		t.Fatalf("RemoveElement: %v", err)
	}
	if got := f.m.ViolationManager().ViolationsInvolving(x); len(got) != 0 {
		t.Errorf("violations naming x after removal: %v", got)
	}
	for _, c := range f.m.Criteria() {
		for _, v := range c.Violations() {
			if v.Involves(x) {
				t.Errorf("%s still holds %v", c.Name(), v)
			}
		}
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, CriterionConnector, roadsys.SegmentTypes...)
	a := f.segment(t, roadsys.SegmentEntrance)
	b := f.segment(t, roadsys.SegmentEntrance)
	f.connect(t, a, roadsys.ConnectorExit, b, roadsys.ConnectorExit)

	before := f.violations()
	c.NotifyChange(a)
	c.NotifyChange(a)
	c.NotifyChange(b)
	after := f.violations()

	if !slices.Equal(before, after) {
		t.Errorf("violations changed: %v -> %v", before, after)
	}
	if len(c.Violations()) != 1 {
		t.Errorf("criterion holds %d violations, want 1", len(c.Violations()))
	}
}

func TestCheckWithoutRoadSystem(t *testing.T) {
	f := newFixture(t)
	s := f.segment(t, roadsys.SegmentBase)
	c := NewConnectorCriterion("Detached")
	c.SetSegmentTypes(roadsys.SegmentBase)

	if err := c.Check(s); !errors.Is(err, errors.ErrCodeIllegalState) {
		t.Errorf("Check err = %v, want ILLEGAL_STATE", err)
	}
	if err := c.CheckAll(); !errors.Is(err, errors.ErrCodeIllegalState) {
		t.Errorf("CheckAll err = %v, want ILLEGAL_STATE", err)
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, errors.ErrCodeIllegalState) {
			t.Errorf("NotifyChange panic = %v, want ILLEGAL_STATE error", r)
		}
	}()
	c.NotifyChange(s)
}

func TestForeignSegmentTypesAreIgnored(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, CriterionConnector, roadsys.SegmentEntrance)
	a := f.segment(t, roadsys.SegmentEntrance)
	b := f.segment(t, roadsys.SegmentBase)
	f.connect(t, a, roadsys.ConnectorExit, b, roadsys.ConnectorExit)

	if n := len(c.Violations()); n != 0 {
		t.Fatalf("violations with base neighbour excluded = %d, want 0", n)
	}

	c.AddSegmentType(roadsys.SegmentBase)
	if n := len(c.Violations()); n != 1 {
		t.Fatalf("violations after adding base = %d, want 1", n)
	}

	c.RemoveSegmentType(roadsys.SegmentEntrance)
	if n := len(c.Violations()); n != 0 {
		t.Errorf("violations after removing entrance = %d, want 0", n)
	}
}

func TestMovingBreaksViolatingConnection(t *testing.T) {
	f := newFixture(t)
	f.create(t, CriterionConnector, roadsys.SegmentTypes...)
	a := f.segment(t, roadsys.SegmentBase)
	b := f.segment(t, roadsys.SegmentBase)
	f.connect(t, a, roadsys.ConnectorEntry, b, roadsys.ConnectorEntry)

	if n := len(f.violations()); n != 1 {
		t.Fatalf("violations = %d, want 1", n)
	}
	if err := f.rs.RotateSegment(a, 90); err != nil {
		t.Fatalf("RotateSegment: %v", err)
	}
	if n := len(f.violations()); n != 0 {
		t.Errorf("violations after auto-break = %d, want 0", n)
	}
}

func TestCompletenessCriterion(t *testing.T) {
	f := newFixture(t)
	c := f.create(t, CriterionCompleteness, roadsys.SegmentBase)
	s := f.segment(t, roadsys.SegmentBase)

	if got := MissingAttributes(s); !slices.Equal(got, []roadsys.AttributeType{roadsys.AttrMaxSpeed}) {
		t.Fatalf("MissingAttributes = %v, want [max_speed]", got)
	}
	if n := len(c.Violations()); n != 1 {
		t.Fatalf("violations = %d, want 1", n)
	}

	f.set(t, s, roadsys.AttrMaxSpeed, 120)
	if n := len(c.Violations()); n != 0 {
		t.Errorf("violations after filling in max speed = %d, want 0", n)
	}

	f.set(t, s, roadsys.AttrLength, nil)
	f.set(t, s, roadsys.AttrSlope, nil)
	if n := len(c.Violations()); n != 1 {
		t.Errorf("violations with two missing attributes = %d, want 1", n)
	}
}

func TestValueCriterion(t *testing.T) {
	tests := []struct {
		name  string
		lanes any
		want  int
	}{
		{"lower bound", 1, 0},
		{"upper bound", 6, 0},
		{"too many", 7, 1},
		{"none", 0, 1},
		{"unset", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			c := f.create(t, CriterionValue, roadsys.SegmentBase)
			s := f.segment(t, roadsys.SegmentBase)
			f.set(t, s, roadsys.AttrLaneCount, tt.lanes)
			if n := len(c.Violations()); n != tt.want {
				t.Errorf("violations = %d, want %d", n, tt.want)
			}
		})
	}

	t.Run("not numeric", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.m.Factory().NewValue("Junction", roadsys.AttrJunction); !errors.Is(err, errors.ErrCodeNotFound) {
			t.Errorf("NewValue(junction) err = %v, want NOT_FOUND", err)
		}
	})
}

func TestCompatibilityConfiguration(t *testing.T) {
	if _, err := NewCompatibilityCriterion("x", roadsys.AttrConurbation, ValidationLessThan, 0); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("LESS_THAN on boolean err = %v, want INVALID_ARGUMENT", err)
	}
	if _, err := NewCompatibilityCriterion("x", roadsys.AttrLength, ValidationDirection, 0); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("DIRECTION on length err = %v, want INVALID_ARGUMENT", err)
	}
	if _, err := NewCompatibilityCriterion("x", roadsys.AttrLength, ValidationEquals, -1); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("negative discrepancy err = %v, want INVALID_ARGUMENT", err)
	}

	c, err := NewCompatibilityCriterion("Built-up", roadsys.AttrConurbation, ValidationNor, 0)
	if err != nil {
		t.Fatalf("NewCompatibilityCriterion: %v", err)
	}
	if err := c.SetAttribute(roadsys.AttrLength); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("SetAttribute(length) with NOR err = %v, want INVALID_ARGUMENT", err)
	}
	if err := c.SetValidationType(ValidationOr); err != nil || c.ValidationType() != ValidationOr {
		t.Errorf("SetValidationType(OR) = %v, type %s", err, c.ValidationType())
	}
}

func TestSetViolationManager(t *testing.T) {
	f := newFixture(t)
	f.create(t, CriterionConnector, roadsys.SegmentTypes...)
	a := f.segment(t, roadsys.SegmentEntrance)
	b := f.segment(t, roadsys.SegmentEntrance)
	f.connect(t, a, roadsys.ConnectorExit, b, roadsys.ConnectorExit)

	old := f.m.ViolationManager()
	if old.Len() != 1 {
		t.Fatalf("old manager holds %d violations, want 1", old.Len())
	}

	next := NewViolationManager()
	f.m.SetViolationManager(next)

	if old.Len() != 0 {
		t.Errorf("old manager still holds %v", old.Violations())
	}
	if next.Len() != 1 {
		t.Errorf("new manager holds %d violations, want 1", next.Len())
	}
	if f.m.ViolationManager() != next {
		t.Error("manager did not switch")
	}
}

func TestRemoveCriteria(t *testing.T) {
	f := newFixture(t)
	f.create(t, CriterionConnector, roadsys.SegmentTypes...)
	f.create(t, CriterionCompleteness, roadsys.SegmentTypes...)
	f.create(t, CriterionCompleteness, roadsys.SegmentTypes...)
	a := f.segment(t, roadsys.SegmentEntrance)
	b := f.segment(t, roadsys.SegmentEntrance)
	f.connect(t, a, roadsys.ConnectorExit, b, roadsys.ConnectorExit)

	if got := len(f.m.CriteriaOfType(CriterionCompleteness)); got != 2 {
		t.Fatalf("completeness criteria = %d, want 2", got)
	}
	f.m.RemoveAllCriteriaOfType(CriterionCompleteness)
	if got := len(f.m.Criteria()); got != 1 {
		t.Errorf("criteria left = %d, want 1", got)
	}
	if got := len(f.violations()); got != 1 {
		t.Errorf("violations left = %d, want the connector violation only", got)
	}

	c := f.m.Criteria()[0]
	if err := f.m.RemoveCriterion(c); err != nil {
		t.Fatalf("RemoveCriterion: %v", err)
	}
	if err := f.m.RemoveCriterion(c); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second RemoveCriterion err = %v, want NOT_FOUND", err)
	}
	if got := len(f.violations()); got != 0 {
		t.Errorf("violations after removing all = %d, want 0", got)
	}
	if slices.Contains(a.Observers(), roadsys.ElementObserver(c)) {
		t.Error("removed criterion still observes a segment")
	}

	f.create(t, CriterionValue)
	f.m.RemoveAllCriteria()
	if len(f.m.Criteria()) != 0 {
		t.Errorf("criteria after RemoveAllCriteria = %d", len(f.m.Criteria()))
	}
}

type criterionRecorder struct{ events []string }

func (r *criterionRecorder) NotifyChange(c Criterion) {
	r.events = append(r.events, "change "+c.Name())
}
func (r *criterionRecorder) NotifyAddition(c Criterion) { r.events = append(r.events, "add "+c.Name()) }
func (r *criterionRecorder) NotifyRemoval(c Criterion) {
	r.events = append(r.events, "remove "+c.Name())
}

func TestManagerForwardsCriterionChanges(t *testing.T) {
	f := newFixture(t)
	rec := &criterionRecorder{}
	f.m.Subscribe(rec)

	c, err := f.m.CreateCriterionOfType(CriterionValue)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetName("Lanes"); err != nil {
		t.Fatal(err)
	}
	if err := f.m.RemoveCriterion(c); err != nil {
		t.Fatal(err)
	}

	want := []string{"add Value 1", "change Lanes", "remove Lanes"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestFactoryNames(t *testing.T) {
	f := NewFactory(nil)
	var names []string
	for _, ct := range []CriterionType{CriterionCompleteness, CriterionValue, CriterionValue, CriterionCompatibility, CriterionConnector} {
		c, err := f.Create(ct)
		if err != nil {
			t.Fatalf("Create(%s): %v", ct, err)
		}
		if len(c.SegmentTypes()) != 0 {
			t.Errorf("%s applies to %v, want none", c.Name(), c.SegmentTypes())
		}
		names = append(names, c.Name())
	}
	want := []string{"Completeness 1", "Value 1", "Value 2", "Compatibility 1", "Connector 1"}
	if !slices.Equal(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
	if _, err := f.Create(CriterionType(9)); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Create(9) err = %v", err)
	}
}

func TestParseCriterionType(t *testing.T) {
	for _, ct := range CriterionTypes {
		got, err := ParseCriterionType(ct.String())
		if err != nil || got != ct {
			t.Errorf("ParseCriterionType(%q) = %v, %v", ct, got, err)
		}
	}
	if _, err := ParseCriterionType("bogus"); err == nil {
		t.Error("ParseCriterionType(bogus) succeeded")
	}
}
