// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (stacks, popup overlay, view states, shell chrome)
// - cosmetic timers (toast expiry, skeleton shimmer) expressed as tea.Cmd
//
// Not allowed here:
// - data loading, sort/page ownership, or screen routing
package widgets
