// Package nav turns grid paths and straight-line goals into motion commands
// for a vehicle that only knows how to drive forward, back, and turn in place.
//
// It exposes two entry points:
//
//   - Sequence: translate a maze.Path into commands, tracking heading per step.
//   - DirectRoute: head straight for a goal with at most one turn.
//
// Both are pure functions of their inputs and a Config.
package nav
