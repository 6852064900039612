// Package viz renders physics worlds in the terminal.
//
// The package implements a read-only viewer using the Bubble Tea framework:
//
//   - [Model]: live view of one scene, stepped by a [dynamo.Clock]
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Viewport]: maps world coordinates onto the canvas
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	.     - Single step while paused
//	R     - Rebuild the scene
//	+/-   - Double or halve the time scale
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
