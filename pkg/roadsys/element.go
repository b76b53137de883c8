package roadsys

import (
	"github.com/google/uuid"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/observable"
)

// ID is the opaque identity of an element or connection. IDs are random
// and never reused, so they stay meaningful after the entity is removed.
type ID = uuid.UUID

// ParseID parses the textual form of an ID.
func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ID{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid id %q", s)
	}
	return id, nil
}

// ElementObserver is notified when an element is added, changed or removed.
// Plausibility criteria are element observers.
type ElementObserver = observable.SetObserver[Element]

// Element is the common capability of segments and groups.
type Element interface {
	ID() ID
	Kind() ElementKind
	Name() string
	SetName(name string) error
	Comment() string
	SetComment(comment string)

	// AttributeAccessors returns one accessor per attribute the element
	// carries, in AttributeTypes order.
	AttributeAccessors() []*AttributeAccessor

	Subscribe(o ElementObserver)
	Unsubscribe(o ElementObserver)
	Observers() []ElementObserver

	// NotifyChange tells every observer that the element changed.
	NotifyChange()

	base() *element
}

type element struct {
	id        ID
	name      string
	comment   string
	observers observable.Set[Element]
	self      Element
}

func (e *element) init(self Element, name string) {
	e.id = uuid.New()
	e.name = name
	e.self = self
}

func (e *element) base() *element { return e }

// ID returns the element's identity.
func (e *element) ID() ID { return e.id }

// Name returns the display name.
func (e *element) Name() string { return e.name }

// SetName renames the element and notifies observers.
func (e *element) SetName(name string) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	e.name = name
	e.NotifyChange()
	return nil
}

// Comment returns the free-form comment, empty if none.
func (e *element) Comment() string { return e.comment }

// SetComment replaces the comment and notifies observers.
func (e *element) SetComment(comment string) {
	e.comment = comment
	e.NotifyChange()
}

func (e *element) Subscribe(o ElementObserver)   { e.observers.Subscribe(o) }
func (e *element) Unsubscribe(o ElementObserver) { e.observers.Unsubscribe(o) }
func (e *element) Observers() []ElementObserver  { return e.observers.Observers() }
func (e *element) NotifyChange()                 { e.observers.NotifyChange(e.self) }

func (e *element) notifyAddition() { e.observers.NotifyAddition(e.self) }
func (e *element) notifyRemoval()  { e.observers.NotifyRemoval(e.self) }

func (e *element) commonAccessors() []*AttributeAccessor {
	return []*AttributeAccessor{
		NewAttributeAccessor(AttrName,
			func() any { return e.name },
			func(v any) error {
				s, _ := v.(string)
				return e.SetName(s)
			}),
		NewAttributeAccessor(AttrComment,
			func() any {
				if e.comment == "" {
					return nil
				}
				return e.comment
			},
			func(v any) error {
				s, _ := v.(string)
				e.SetComment(s)
				return nil
			}),
	}
}
