// Package viz draws a running engine in the terminal.
//
// [Model] is a Bubble Tea model: its clock issues one frame per tick of
// the configured rate and each frame advances the engine. Trails are
// drawn on a Braille [Canvas], two by four dots per cell, coloured by
// each body's tag.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart the scenario
//	T     - Cycle color themes
//	+ -   - Ticks per frame
//	?     - Show help overlay
//	Q     - Quit
package viz
