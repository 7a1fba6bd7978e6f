// Package transition holds the timed state-transition primitives shared by
// doors, valves, the crouch camera and the rising water: a clock that turns
// elapsed time into progress, a tween between two values, a two-state
// toggle driven by tweens, and a bounded fill/drain level.
//
// Nothing here knows about frames, entities or side effects. Callers feed
// dt and react to the edges each Step reports.
package transition
