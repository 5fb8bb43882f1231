// Package components defines ECS components for the sky scene.
package components

// Position represents an entity's screen position (y up, origin bottom-left).
type Position struct {
	X, Y float32
}
