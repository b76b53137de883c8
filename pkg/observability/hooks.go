// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about road-system mutations and criteria evaluation.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the engine packages free from observability frameworks
//   - Allows different backends (see the promhooks subpackage for Prometheus)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRoadSystemHooks(&myRoadSystemHooks{})
//	    observability.SetCriteriaHooks(&myCriteriaHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.RoadSystem().OnConnect()
//	observability.Criteria().OnViolationAdded("compatibility")
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Road System Hooks
// =============================================================================

// RoadSystemHooks receives events from road-system mutations.
type RoadSystemHooks interface {
	// OnSegmentCreated records the creation of a segment of the given type.
	OnSegmentCreated(segmentType string)

	// OnElementRemoved records the removal of a segment or group.
	OnElementRemoved(kind string)

	// OnConnect records a new connection.
	OnConnect()

	// OnDisconnect records a removed connection. auto is true when the
	// connection broke because one of its connectors moved.
	OnDisconnect(auto bool)
}

// =============================================================================
// Criteria Hooks
// =============================================================================

// CriteriaHooks receives events from the plausibility criteria engine.
type CriteriaHooks interface {
	// OnCheck records one evaluation of a segment by a criterion.
	OnCheck(criterionType string, duration time.Duration)

	// OnViolationAdded records a new violation.
	OnViolationAdded(criterionType string)

	// OnViolationRemoved records a retracted violation.
	OnViolationRemoved(criterionType string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRoadSystemHooks is a no-op implementation of RoadSystemHooks.
type NoopRoadSystemHooks struct{}

func (NoopRoadSystemHooks) OnSegmentCreated(string) {}
func (NoopRoadSystemHooks) OnElementRemoved(string) {}
func (NoopRoadSystemHooks) OnConnect()              {}
func (NoopRoadSystemHooks) OnDisconnect(bool)       {}

// NoopCriteriaHooks is a no-op implementation of CriteriaHooks.
type NoopCriteriaHooks struct{}

func (NoopCriteriaHooks) OnCheck(string, time.Duration) {}
func (NoopCriteriaHooks) OnViolationAdded(string)       {}
func (NoopCriteriaHooks) OnViolationRemoved(string)     {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	roadSystemHooks RoadSystemHooks = NoopRoadSystemHooks{}
	criteriaHooks   CriteriaHooks   = NoopCriteriaHooks{}
	hooksMu         sync.RWMutex
)

// SetRoadSystemHooks registers custom road-system hooks.
// This should be called once at application startup before any road system is built.
func SetRoadSystemHooks(h RoadSystemHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		roadSystemHooks = h
	}
}

// SetCriteriaHooks registers custom criteria hooks.
// This should be called once at application startup before any criterion is created.
func SetCriteriaHooks(h CriteriaHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		criteriaHooks = h
	}
}

// RoadSystem returns the registered road-system hooks.
func RoadSystem() RoadSystemHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return roadSystemHooks
}

// Criteria returns the registered criteria hooks.
func Criteria() CriteriaHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return criteriaHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	roadSystemHooks = NoopRoadSystemHooks{}
	criteriaHooks = NoopCriteriaHooks{}
}
