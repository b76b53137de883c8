// Package observable provides the publish/subscribe registries the road
// system and the criteria engine are built on.
//
// Three shapes exist:
//
//   - [Unit]: a single entity announces that it changed.
//   - [Set]: a member of a set announces its addition, removal or change.
//   - [DualSet]: one observable set holding two element kinds, e.g. a road
//     system announcing both elements and connections.
//
// Each registry is an explicit, ordered list of observers. Notifications
// fire in subscription order and run synchronously: when Notify* returns,
// every observer has run to completion, including anything it triggered.
//
// Observers are compared with ==, so they must be comparable values;
// pointers are the usual choice. Subscribing the same observer twice is a
// no-op, as is unsubscribing one that was never registered.
//
// Registries iterate over a snapshot, so an observer may subscribe or
// unsubscribe (itself or others) while a notification is being delivered.
// Changes take effect from the next notification on.
//
// The zero value of every registry is ready to use. Registries are not safe
// for concurrent use.
package observable
