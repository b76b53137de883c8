package observable

import (
	"slices"
	"testing"
)

type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) NotifyChange(e string)      { *r.log = append(*r.log, r.name+":change:"+e) }
func (r *recorder) NotifyAddition(e string)    { *r.log = append(*r.log, r.name+":add:"+e) }
func (r *recorder) NotifyRemoval(e string)     { *r.log = append(*r.log, r.name+":remove:"+e) }
func (r *recorder) NotifyChangeSecond(e int)   { *r.log = append(*r.log, r.name+":change2") }
func (r *recorder) NotifyAdditionSecond(e int) { *r.log = append(*r.log, r.name+":add2") }
func (r *recorder) NotifyRemovalSecond(e int)  { *r.log = append(*r.log, r.name+":remove2") }

func TestUnitOrderAndDedup(t *testing.T) {
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}

	var u Unit[string]
	u.Subscribe(a)
	u.Subscribe(b)
	u.Subscribe(a)

	if u.Len() != 2 {
		t.Fatalf("Len = %d, want 2", u.Len())
	}

	u.NotifyChange("x")
	want := []string{"a:change:x", "b:change:x"}
	if !slices.Equal(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}

	u.Unsubscribe(a)
	u.Unsubscribe(a)
	log = nil
	u.NotifyChange("y")
	if !slices.Equal(log, []string{"b:change:y"}) {
		t.Errorf("log = %v after unsubscribe", log)
	}

	u.UnsubscribeAll()
	if u.Len() != 0 {
		t.Errorf("Len = %d after UnsubscribeAll", u.Len())
	}
}

type selfRemover struct {
	set   *Set[string]
	calls int
}

func (s *selfRemover) NotifyChange(string) {
	s.calls++
	s.set.Unsubscribe(s)
}
func (s *selfRemover) NotifyAddition(string) {}
func (s *selfRemover) NotifyRemoval(string)  {}

func TestSetUnsubscribeDuringNotify(t *testing.T) {
	var log []string
	var s Set[string]
	rm := &selfRemover{set: &s}
	after := &recorder{name: "after", log: &log}
	s.Subscribe(rm)
	s.Subscribe(after)

	s.NotifyChange("x")
	if rm.calls != 1 {
		t.Errorf("calls = %d, want 1", rm.calls)
	}
	if !slices.Equal(log, []string{"after:change:x"}) {
		t.Errorf("observer after self-removing one was skipped: %v", log)
	}

	s.NotifyChange("y")
	if rm.calls != 1 {
		t.Errorf("removed observer notified again")
	}
}

func TestSetNotifications(t *testing.T) {
	var log []string
	var s Set[string]
	s.Subscribe(&recorder{name: "r", log: &log})

	s.NotifyAddition("a")
	s.NotifyChange("a")
	s.NotifyRemoval("a")

	want := []string{"r:add:a", "r:change:a", "r:remove:a"}
	if !slices.Equal(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestDualSet(t *testing.T) {
	var log []string
	var d DualSet[string, int]
	r := &recorder{name: "r", log: &log}
	d.Subscribe(r)

	d.NotifyAddition("seg")
	d.NotifyAdditionSecond(1)
	d.NotifyChangeSecond(1)
	d.NotifyRemovalSecond(1)
	d.NotifyChange("seg")
	d.NotifyRemoval("seg")

	want := []string{"r:add:seg", "r:add2", "r:change2", "r:remove2", "r:change:seg", "r:remove:seg"}
	if !slices.Equal(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}

	d.Unsubscribe(r)
	if len(d.Observers()) != 0 {
		t.Errorf("Observers = %v after Unsubscribe", d.Observers())
	}
}
