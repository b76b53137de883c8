package criteria

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/roadnet/pkg/observable"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// Violation records that a set of segments fails a criterion. Violations
// are immutable: when the offending set changes the criterion retracts the
// old record and publishes a new one.
type Violation struct {
	criterion Criterion
	segments  []*roadsys.Segment
	key       string
}

func newViolation(c Criterion, segments []*roadsys.Segment) *Violation {
	return &Violation{criterion: c, segments: slices.Clone(segments), key: segmentKey(segments)}
}

// segmentKey identifies a set of segments independent of order.
func segmentKey(segments []*roadsys.Segment) string {
	ids := make([]string, len(segments))
	for i, s := range segments {
		ids[i] = s.ID().String()
	}
	slices.Sort(ids)
	return strings.Join(slices.Compact(ids), ",")
}

// Criterion returns the criterion that produced the violation.
func (v *Violation) Criterion() Criterion { return v.criterion }

// Segments returns the offending segments, the checked segment first.
func (v *Violation) Segments() []*roadsys.Segment { return slices.Clone(v.segments) }

// Involves reports whether s is one of the offending segments.
func (v *Violation) Involves(s *roadsys.Segment) bool { return slices.Contains(v.segments, s) }

func (v *Violation) String() string {
	names := make([]string, len(v.segments))
	for i, s := range v.segments {
		names[i] = s.Name()
	}
	return fmt.Sprintf("%s: %s", v.criterion.Name(), strings.Join(names, ", "))
}

// ViolationObserver is notified when violations are published or retracted.
type ViolationObserver = observable.SetObserver[*Violation]

// ViolationManager is the live, ordered set of published violations.
// Violations are compared by identity.
type ViolationManager struct {
	violations []*Violation
	observers  observable.Set[*Violation]
}

// NewViolationManager returns an empty manager.
func NewViolationManager() *ViolationManager { return &ViolationManager{} }

// AddViolation publishes v. Adding a violation twice is a no-op.
func (m *ViolationManager) AddViolation(v *Violation) {
	if slices.Contains(m.violations, v) {
		return
	}
	m.violations = append(m.violations, v)
	m.observers.NotifyAddition(v)
}

// RemoveViolation retracts v and reports whether it was published.
func (m *ViolationManager) RemoveViolation(v *Violation) bool {
	i := slices.Index(m.violations, v)
	if i < 0 {
		return false
	}
	m.violations = slices.Delete(m.violations, i, i+1)
	m.observers.NotifyRemoval(v)
	return true
}

// Violations returns the published violations in publication order.
func (m *ViolationManager) Violations() []*Violation { return slices.Clone(m.violations) }

// Len returns the number of published violations.
func (m *ViolationManager) Len() int { return len(m.violations) }

// ViolationsOf returns the published violations produced by c.
func (m *ViolationManager) ViolationsOf(c Criterion) []*Violation {
	var out []*Violation
	for _, v := range m.violations {
		if v.criterion == c {
			out = append(out, v)
		}
	}
	return out
}

// ViolationsInvolving returns the published violations naming s.
func (m *ViolationManager) ViolationsInvolving(s *roadsys.Segment) []*Violation {
	var out []*Violation
	for _, v := range m.violations {
		if v.Involves(s) {
			out = append(out, v)
		}
	}
	return out
}

// Subscribe registers o for publication and retraction notifications.
func (m *ViolationManager) Subscribe(o ViolationObserver) { m.observers.Subscribe(o) }

// Unsubscribe removes o.
func (m *ViolationManager) Unsubscribe(o ViolationObserver) { m.observers.Unsubscribe(o) }
