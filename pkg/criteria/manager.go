package criteria

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/observable"
	"github.com/matzehuels/roadnet/pkg/roadsys"
)

// ManagerObserver is notified when criteria are added to, changed in or
// removed from a manager.
type ManagerObserver = observable.SetObserver[Criterion]

// CriteriaManager owns the active criteria of one road system. It
// subscribes every criterion to every segment, present and future, and
// routes their violations into one ViolationManager.
type CriteriaManager struct {
	rs      *roadsys.RoadSystem
	vm      *ViolationManager
	factory *Factory
	logger  *log.Logger

	criteria  []Criterion
	observers observable.Set[Criterion]
}

// NewCriteriaManager returns a manager for rs and registers it as the road
// system's observer source. A nil vm, factory or logger is replaced by a
// fresh manager, a default factory and log.Default() respectively.
func NewCriteriaManager(rs *roadsys.RoadSystem, vm *ViolationManager, factory *Factory, logger *log.Logger) *CriteriaManager {
	if vm == nil {
		vm = NewViolationManager()
	}
	if factory == nil {
		factory = NewFactory(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	m := &CriteriaManager{rs: rs, vm: vm, factory: factory, logger: logger}
	rs.SetObserverSource(m)
	return m
}

// RoadSystem returns the managed road system.
func (m *CriteriaManager) RoadSystem() *roadsys.RoadSystem { return m.rs }

// Factory returns the factory used by CreateCriterionOfType.
func (m *CriteriaManager) Factory() *Factory { return m.factory }

// ElementObservers returns the active criteria so that the road system
// subscribes them to every new segment.
func (m *CriteriaManager) ElementObservers() []roadsys.ElementObserver {
	out := make([]roadsys.ElementObserver, len(m.criteria))
	for i, c := range m.criteria {
		out[i] = c
	}
	return out
}

// CreateCriterionOfType creates a criterion of type t with the factory
// defaults and activates it.
func (m *CriteriaManager) CreateCriterionOfType(t CriterionType) (Criterion, error) {
	c, err := m.factory.Create(t)
	if err != nil {
		return nil, err
	}
	if err := m.AddCriterion(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddCriterion activates c: it is attached to the road system and the
// violation manager, subscribed to every segment and evaluated once.
func (m *CriteriaManager) AddCriterion(c Criterion) error {
	if c == nil {
		return errors.InvalidArgument("criterion is nil")
	}
	if slices.Contains(m.criteria, c) {
		return errors.InvalidArgument("criterion %q is already active", c.Name())
	}

	c.core().logger = m.logger
	c.SetRoadSystem(m.rs)
	for _, s := range m.rs.Segments() {
		s.Subscribe(c)
	}
	c.Subscribe(m)
	m.criteria = append(m.criteria, c)
	c.SetViolationManager(m.vm)

	m.logger.Debug("criterion added", "name", c.Name(), "type", c.Type(), "violations", len(c.Violations()))
	m.observers.NotifyAddition(c)
	return nil
}

// RemoveCriterion deactivates c and retracts its violations.
func (m *CriteriaManager) RemoveCriterion(c Criterion) error {
	if !slices.Contains(m.criteria, c) {
		return errors.NotFound("criterion is not active")
	}
	m.criteria = slices.DeleteFunc(m.criteria, func(x Criterion) bool { return x == c })
	for _, s := range m.rs.Segments() {
		s.Unsubscribe(c)
	}
	c.Unsubscribe(m)
	c.RetractAll()

	m.logger.Debug("criterion removed", "name", c.Name(), "type", c.Type())
	m.observers.NotifyRemoval(c)
	return nil
}

// RemoveAllCriteria deactivates every criterion.
func (m *CriteriaManager) RemoveAllCriteria() {
	for _, c := range slices.Clone(m.criteria) {
		_ = m.RemoveCriterion(c)
	}
}

// RemoveAllCriteriaOfType deactivates every criterion of type t.
func (m *CriteriaManager) RemoveAllCriteriaOfType(t CriterionType) {
	for _, c := range m.CriteriaOfType(t) {
		_ = m.RemoveCriterion(c)
	}
}

// Criteria returns the active criteria in activation order.
func (m *CriteriaManager) Criteria() []Criterion { return slices.Clone(m.criteria) }

// CriteriaOfType returns the active criteria of type t.
func (m *CriteriaManager) CriteriaOfType(t CriterionType) []Criterion {
	var out []Criterion
	for _, c := range m.criteria {
		if c.Type() == t {
			out = append(out, c)
		}
	}
	return out
}

// ViolationManager returns the manager receiving the violations.
func (m *CriteriaManager) ViolationManager() *ViolationManager { return m.vm }

// SetViolationManager moves every criterion to vm. Each criterion retracts
// its violations from the old manager before re-checking against vm.
func (m *CriteriaManager) SetViolationManager(vm *ViolationManager) {
	if vm == nil {
		vm = NewViolationManager()
	}
	m.vm = vm
	for _, c := range m.criteria {
		c.SetViolationManager(vm)
	}
}

// NotifyChange forwards a criterion change to the manager's observers.
func (m *CriteriaManager) NotifyChange(c Criterion) { m.observers.NotifyChange(c) }

// Subscribe registers o for criterion notifications.
func (m *CriteriaManager) Subscribe(o ManagerObserver) { m.observers.Subscribe(o) }

// Unsubscribe removes o.
func (m *CriteriaManager) Unsubscribe(o ManagerObserver) { m.observers.Unsubscribe(o) }
