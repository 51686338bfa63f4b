// Package viz renders scroll trajectories to the terminal.
//
// [Plot] and [PlotRun] draw recorded runs with asciigraph. [Playground] is a
// Bubble Tea model that drives a live scrollview from the keyboard:
//
//	Up/Down, J/K   - pan vertically
//	Left/Right, H/L - pan horizontally
//	F, Enter       - fling (lift the finger)
//	Space          - interrupt (finger down)
//	S              - cycle input source
//	P              - pause the frame clock
//	R              - reset
//	?              - help
//
// A drag with no pan for [ReleaseAfterMs] is released as a fling.
package viz
