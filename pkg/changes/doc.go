// Package changes decides whether a grid cell needs to re-render by comparing
// two snapshots of its derived display state.
//
// Every field is compared by deep structural equality except notifications,
// which are reduced to their ordered identifier sequence: notification bodies
// carry volatile content (timestamps, counters) that must not force a render
// while the set and order of notifications is unchanged.
package changes
