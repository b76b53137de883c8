package criteria

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/observability"
	"github.com/matzehuels/roadnet/pkg/observable"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// CriterionType tags the kind of a criterion.
type CriterionType int

const (
	CriterionCompleteness CriterionType = iota
	CriterionValue
	CriterionCompatibility
	CriterionConnector
)

// CriterionTypes lists every criterion type in declaration order.
var CriterionTypes = []CriterionType{
	CriterionCompleteness, CriterionValue, CriterionCompatibility, CriterionConnector,
}

var criterionTypeNames = map[CriterionType]string{
	CriterionCompleteness:  "completeness",
	CriterionValue:         "value",
	CriterionCompatibility: "compatibility",
	CriterionConnector:     "connector",
}

func (t CriterionType) String() string {
	if s, ok := criterionTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseCriterionType converts a name such as "compatibility".
func ParseCriterionType(s string) (CriterionType, error) {
	for t, name := range criterionTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, errors.InvalidArgument("unknown criterion type %q", s)
}

// CriterionObserver is notified when a criterion's configuration changes.
type CriterionObserver = observable.UnitObserver[Criterion]

// Criterion is a plausibility rule evaluated against segments.
//
// A criterion observes the segments it is subscribed to and keeps its
// violations current: a change or addition re-checks the segment, a
// removal drops every violation naming it. Notifications panic with an
// illegal-state error when no road system is attached; Check and CheckAll
// return that error instead.
type Criterion interface {
	roadsys.ElementObserver

	Name() string
	SetName(name string) error
	Type() CriterionType

	// SegmentTypes returns the segment types the criterion applies to.
	// Segments of other types never violate it.
	SegmentTypes() []roadsys.SegmentType
	SetSegmentTypes(types ...roadsys.SegmentType)
	AddSegmentType(t roadsys.SegmentType)
	RemoveSegmentType(t roadsys.SegmentType)
	IsApplicable(s *roadsys.Segment) bool

	RoadSystem() *roadsys.RoadSystem
	SetRoadSystem(rs *roadsys.RoadSystem)
	ViolationManager() *ViolationManager
	SetViolationManager(vm *ViolationManager)

	// Violations returns the violations held by the criterion in
	// publication order.
	Violations() []*Violation
	Check(s *roadsys.Segment) error
	CheckAll() error
	RetractAll()

	Subscribe(o CriterionObserver)
	Unsubscribe(o CriterionObserver)

	core() *criterion
}

// criterion holds the state shared by every criterion kind. evaluate
// returns the offending segment sets for one applicable, present segment.
type criterion struct {
	self         Criterion
	typ          CriterionType
	name         string
	segmentTypes []roadsys.SegmentType
	rs           *roadsys.RoadSystem
	vm           *ViolationManager
	logger       *log.Logger

	held      []*Violation
	byKey     map[string]*Violation
	bySegment map[roadsys.ID]map[string]bool

	observers observable.Unit[Criterion]
	evaluate  func(s *roadsys.Segment) [][]*roadsys.Segment
}

func (c *criterion) init(self Criterion, typ CriterionType, name string, evaluate func(*roadsys.Segment) [][]*roadsys.Segment) {
	c.self = self
	c.typ = typ
	c.name = name
	c.logger = log.Default()
	c.byKey = make(map[string]*Violation)
	c.bySegment = make(map[roadsys.ID]map[string]bool)
	c.evaluate = evaluate
}

func (c *criterion) core() *criterion { return c }

// Name returns the display name.
func (c *criterion) Name() string { return c.name }

// SetName renames the criterion.
func (c *criterion) SetName(name string) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	c.name = name
	c.changed()
	return nil
}

// Type returns the criterion kind.
func (c *criterion) Type() CriterionType { return c.typ }

func (c *criterion) SegmentTypes() []roadsys.SegmentType { return slices.Clone(c.segmentTypes) }

// SetSegmentTypes replaces the applicable segment types and re-checks
// every segment.
func (c *criterion) SetSegmentTypes(types ...roadsys.SegmentType) {
	var next []roadsys.SegmentType
	for _, t := range types {
		if t.Valid() && !slices.Contains(next, t) {
			next = append(next, t)
		}
	}
	c.segmentTypes = next
	c.reconfigured()
}

func (c *criterion) AddSegmentType(t roadsys.SegmentType) {
	if slices.Contains(c.segmentTypes, t) {
		return
	}
	c.SetSegmentTypes(append(slices.Clone(c.segmentTypes), t)...)
}

func (c *criterion) RemoveSegmentType(t roadsys.SegmentType) {
	if !slices.Contains(c.segmentTypes, t) {
		return
	}
	c.SetSegmentTypes(slices.DeleteFunc(slices.Clone(c.segmentTypes), func(x roadsys.SegmentType) bool { return x == t })...)
}

func (c *criterion) IsApplicable(s *roadsys.Segment) bool {
	return s != nil && slices.Contains(c.segmentTypes, s.Type())
}

func (c *criterion) RoadSystem() *roadsys.RoadSystem { return c.rs }

// SetRoadSystem attaches rs. Violations recorded against the previous road
// system are retracted.
func (c *criterion) SetRoadSystem(rs *roadsys.RoadSystem) {
	if c.rs == rs {
		return
	}
	c.RetractAll()
	c.rs = rs
}

func (c *criterion) ViolationManager() *ViolationManager { return c.vm }

// SetViolationManager retracts the criterion's violations from the current
// manager and republishes them to vm.
func (c *criterion) SetViolationManager(vm *ViolationManager) {
	c.RetractAll()
	c.vm = vm
	if c.rs == nil {
		return
	}
	if err := c.CheckAll(); err != nil {
		c.logger.Warn("re-check failed", "criterion", c.name, "err", err)
	}
}

func (c *criterion) Violations() []*Violation { return slices.Clone(c.held) }

func (c *criterion) Subscribe(o CriterionObserver)   { c.observers.Subscribe(o) }
func (c *criterion) Unsubscribe(o CriterionObserver) { c.observers.Unsubscribe(o) }

func (c *criterion) changed() { c.observers.NotifyChange(c.self) }

// reconfigured announces a configuration change and re-evaluates every
// segment if a road system is attached.
func (c *criterion) reconfigured() {
	c.changed()
	if c.rs == nil {
		return
	}
	if err := c.CheckAll(); err != nil {
		c.logger.Warn("re-check failed", "criterion", c.name, "err", err)
	}
}

// NotifyChange re-checks s.
func (c *criterion) NotifyChange(e roadsys.Element) {
	s, ok := e.(*roadsys.Segment)
	if !ok {
		return
	}
	if err := c.Check(s); err != nil {
		panic(err)
	}
}

// NotifyAddition checks a new segment.
func (c *criterion) NotifyAddition(e roadsys.Element) { c.NotifyChange(e) }

// NotifyRemoval drops every violation naming the removed segment.
func (c *criterion) NotifyRemoval(e roadsys.Element) {
	if s, ok := e.(*roadsys.Segment); ok {
		c.retractSegment(s.ID())
	}
}

// Check re-evaluates s and brings the violations naming it in line with
// the result: stale ones are retracted, new ones published. Segments of a
// foreign type, or no longer in the road system, lose all their violations.
func (c *criterion) Check(s *roadsys.Segment) error {
	if c.rs == nil {
		return errors.IllegalState("criterion %q has no road system", c.name)
	}
	start := time.Now()
	defer func() { observability.Criteria().OnCheck(c.typ.String(), time.Since(start)) }()

	if !c.IsApplicable(s) || !c.rs.Contains(s) {
		c.retractSegment(s.ID())
		return nil
	}

	var keys []string
	offenders := make(map[string][]*roadsys.Segment)
	for _, set := range c.evaluate(s) {
		key := segmentKey(set)
		if _, ok := offenders[key]; ok {
			continue
		}
		keys = append(keys, key)
		offenders[key] = set
	}

	for key := range c.bySegment[s.ID()] {
		if _, ok := offenders[key]; !ok {
			c.retract(key)
		}
	}
	for _, key := range keys {
		if _, ok := c.byKey[key]; !ok {
			c.publish(key, offenders[key])
		}
	}
	return nil
}

// CheckAll checks every segment of the road system and drops violations of
// segments that are gone.
func (c *criterion) CheckAll() error {
	if c.rs == nil {
		return errors.IllegalState("criterion %q has no road system", c.name)
	}
	for id := range c.bySegment {
		if _, ok := c.rs.Element(id); !ok {
			c.retractSegment(id)
		}
	}
	for _, s := range c.rs.Segments() {
		if err := c.Check(s); err != nil {
			return err
		}
	}
	return nil
}

// RetractAll retracts every violation the criterion holds.
func (c *criterion) RetractAll() {
	for len(c.held) > 0 {
		c.retract(c.held[0].key)
	}
}

func (c *criterion) retractSegment(id roadsys.ID) {
	for key := range c.bySegment[id] {
		c.retract(key)
	}
}

func (c *criterion) publish(key string, segments []*roadsys.Segment) {
	v := newViolation(c.self, segments)
	c.held = append(c.held, v)
	c.byKey[key] = v
	for _, s := range segments {
		keys, ok := c.bySegment[s.ID()]
		if !ok {
			keys = make(map[string]bool)
			c.bySegment[s.ID()] = keys
		}
		keys[key] = true
	}

	c.logger.Debug("violation added", "criterion", c.name, "segments", len(segments))
	observability.Criteria().OnViolationAdded(c.typ.String())
	if c.vm != nil {
		c.vm.AddViolation(v)
	}
}

func (c *criterion) retract(key string) {
	v, ok := c.byKey[key]
	if !ok {
		return
	}
	delete(c.byKey, key)
	c.held = slices.DeleteFunc(c.held, func(x *Violation) bool { return x == v })
	for _, s := range v.segments {
		if keys := c.bySegment[s.ID()]; keys != nil {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.bySegment, s.ID())
			}
		}
	}

	c.logger.Debug("violation retracted", "criterion", c.name, "segments", len(v.segments))
	observability.Criteria().OnViolationRemoved(c.typ.String())
	if c.vm != nil {
		c.vm.RemoveViolation(v)
	}
}
