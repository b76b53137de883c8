package observable

import "slices"

// UnitObserver receives change notifications for a single entity.
type UnitObserver[T any] interface {
	NotifyChange(entity T)
}

// SetObserver receives notifications about members of a set.
type SetObserver[T any] interface {
	UnitObserver[T]
	NotifyAddition(entity T)
	NotifyRemoval(entity T)
}

// DualSetObserver receives notifications about a set that holds two kinds
// of members.
type DualSetObserver[A, B any] interface {
	SetObserver[A]
	NotifyChangeSecond(entity B)
	NotifyAdditionSecond(entity B)
	NotifyRemovalSecond(entity B)
}

type registry[O comparable] struct {
	observers []O
}

func (r *registry[O]) subscribe(o O) {
	if slices.Contains(r.observers, o) {
		return
	}
	r.observers = append(r.observers, o)
}

func (r *registry[O]) unsubscribe(o O) {
	r.observers = slices.DeleteFunc(r.observers, func(x O) bool { return x == o })
}

func (r *registry[O]) snapshot() []O { return slices.Clone(r.observers) }

// Unit is the registry behind a single observable entity.
type Unit[T any] struct {
	r registry[UnitObserver[T]]
}

// Subscribe registers o. It is a no-op if o is already registered.
func (u *Unit[T]) Subscribe(o UnitObserver[T]) { u.r.subscribe(o) }

// Unsubscribe removes o.
func (u *Unit[T]) Unsubscribe(o UnitObserver[T]) { u.r.unsubscribe(o) }

// UnsubscribeAll removes every observer.
func (u *Unit[T]) UnsubscribeAll() { u.r.observers = nil }

// Observers returns the registered observers in subscription order.
func (u *Unit[T]) Observers() []UnitObserver[T] { return u.r.snapshot() }

// Len returns the number of registered observers.
func (u *Unit[T]) Len() int { return len(u.r.observers) }

// NotifyChange calls NotifyChange(entity) on every observer.
func (u *Unit[T]) NotifyChange(entity T) {
	for _, o := range u.r.snapshot() {
		o.NotifyChange(entity)
	}
}

// Set is the registry behind an observable set member.
type Set[T any] struct {
	r registry[SetObserver[T]]
}

// Subscribe registers o. It is a no-op if o is already registered.
func (s *Set[T]) Subscribe(o SetObserver[T]) { s.r.subscribe(o) }

// Unsubscribe removes o.
func (s *Set[T]) Unsubscribe(o SetObserver[T]) { s.r.unsubscribe(o) }

// UnsubscribeAll removes every observer.
func (s *Set[T]) UnsubscribeAll() { s.r.observers = nil }

// Observers returns the registered observers in subscription order.
func (s *Set[T]) Observers() []SetObserver[T] { return s.r.snapshot() }

// Len returns the number of registered observers.
func (s *Set[T]) Len() int { return len(s.r.observers) }

// NotifyChange calls NotifyChange(entity) on every observer.
func (s *Set[T]) NotifyChange(entity T) {
	for _, o := range s.r.snapshot() {
		o.NotifyChange(entity)
	}
}

// NotifyAddition calls NotifyAddition(entity) on every observer.
func (s *Set[T]) NotifyAddition(entity T) {
	for _, o := range s.r.snapshot() {
		o.NotifyAddition(entity)
	}
}

// NotifyRemoval calls NotifyRemoval(entity) on every observer.
func (s *Set[T]) NotifyRemoval(entity T) {
	for _, o := range s.r.snapshot() {
		o.NotifyRemoval(entity)
	}
}

// DualSet is the registry behind a set holding two kinds of members.
type DualSet[A, B any] struct {
	r registry[DualSetObserver[A, B]]
}

// Subscribe registers o. It is a no-op if o is already registered.
func (d *DualSet[A, B]) Subscribe(o DualSetObserver[A, B]) { d.r.subscribe(o) }

// Unsubscribe removes o.
func (d *DualSet[A, B]) Unsubscribe(o DualSetObserver[A, B]) { d.r.unsubscribe(o) }

// Observers returns the registered observers in subscription order.
func (d *DualSet[A, B]) Observers() []DualSetObserver[A, B] { return d.r.snapshot() }

// Len returns the number of registered observers.
func (d *DualSet[A, B]) Len() int { return len(d.r.observers) }

// NotifyChange announces a change of a first-kind member.
func (d *DualSet[A, B]) NotifyChange(entity A) {
	for _, o := range d.r.snapshot() {
		o.NotifyChange(entity)
	}
}

// NotifyAddition announces the addition of a first-kind member.
func (d *DualSet[A, B]) NotifyAddition(entity A) {
	for _, o := range d.r.snapshot() {
		o.NotifyAddition(entity)
	}
}

// NotifyRemoval announces the removal of a first-kind member.
func (d *DualSet[A, B]) NotifyRemoval(entity A) {
	for _, o := range d.r.snapshot() {
		o.NotifyRemoval(entity)
	}
}

// NotifyChangeSecond announces a change of a second-kind member.
func (d *DualSet[A, B]) NotifyChangeSecond(entity B) {
	for _, o := range d.r.snapshot() {
		o.NotifyChangeSecond(entity)
	}
}

// NotifyAdditionSecond announces the addition of a second-kind member.
func (d *DualSet[A, B]) NotifyAdditionSecond(entity B) {
	for _, o := range d.r.snapshot() {
		o.NotifyAdditionSecond(entity)
	}
}

// NotifyRemovalSecond announces the removal of a second-kind member.
func (d *DualSet[A, B]) NotifyRemovalSecond(entity B) {
	for _, o := range d.r.snapshot() {
		o.NotifyRemovalSecond(entity)
	}
}
