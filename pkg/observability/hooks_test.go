package observability

import (
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	r := NoopRoadSystemHooks{}
	r.OnSegmentCreated("base")
	r.OnElementRemoved("group")
	r.OnConnect()
	r.OnDisconnect(true)

	c := NoopCriteriaHooks{}
	c.OnCheck("value", time.Millisecond)
	c.OnViolationAdded("value")
	c.OnViolationRemoved("value")
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := RoadSystem().(NoopRoadSystemHooks); !ok {
		t.Error("RoadSystem() should return NoopRoadSystemHooks by default")
	}
	if _, ok := Criteria().(NoopCriteriaHooks); !ok {
		t.Error("Criteria() should return NoopCriteriaHooks by default")
	}

	customRoad := &testRoadSystemHooks{}
	SetRoadSystemHooks(customRoad)
	if RoadSystem() != customRoad {
		t.Error("SetRoadSystemHooks should set custom hooks")
	}

	customCriteria := &testCriteriaHooks{}
	SetCriteriaHooks(customCriteria)
	if Criteria() != customCriteria {
		t.Error("SetCriteriaHooks should set custom hooks")
	}

	SetRoadSystemHooks(nil)
	if RoadSystem() != customRoad {
		t.Error("SetRoadSystemHooks(nil) should keep existing hooks")
	}

	RoadSystem().OnConnect()
	RoadSystem().OnDisconnect(false)
	if customRoad.connects != 1 || customRoad.disconnects != 1 {
		t.Errorf("connects=%d disconnects=%d, want 1/1", customRoad.connects, customRoad.disconnects)
	}

	Reset()
	if _, ok := RoadSystem().(NoopRoadSystemHooks); !ok {
		t.Error("Reset should restore NoopRoadSystemHooks")
	}
	if _, ok := Criteria().(NoopCriteriaHooks); !ok {
		t.Error("Reset should restore NoopCriteriaHooks")
	}
}

type testRoadSystemHooks struct {
	NoopRoadSystemHooks
	connects, disconnects int
}

func (h *testRoadSystemHooks) OnConnect()        { h.connects++ }
func (h *testRoadSystemHooks) OnDisconnect(bool) { h.disconnects++ }

type testCriteriaHooks struct {
	NoopCriteriaHooks
}
