package render

import "github.com/taigrr/x3dgl/pkg/math3d"

// TransformStack accumulates nested model transforms. The base identity
// entry is never removed.
type TransformStack struct {
	stack     []math3d.Mat4
	unmatched int
}

// NewTransformStack returns a stack holding only the identity.
func NewTransformStack() *TransformStack {
	return &TransformStack{stack: []math3d.Mat4{math3d.Identity()}}
}

// Push composes local onto the current top.
func (s *TransformStack) Push(local math3d.Mat4) {
	s.stack = append(s.stack, s.Top().Mul(local))
}

// PushTRS pushes the X3D Transform translation · rotation · scale.
func (s *TransformStack) PushTRS(translation math3d.Vec3, rotation math3d.AxisAngle, scale math3d.Vec3) {
	s.Push(math3d.TRS(translation, rotation, scale))
}

// Pop removes the top transform. Popping the base is counted and ignored.
func (s *TransformStack) Pop() {
	if len(s.stack) <= 1 {
		s.unmatched++
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// Top returns the accumulated model matrix.
func (s *TransformStack) Top() math3d.Mat4 {
	if len(s.stack) == 0 {
		return math3d.Identity()
	}
	return s.stack[len(s.stack)-1]
}

// Depth returns the number of entries including the base.
func (s *TransformStack) Depth() int {
	return len(s.stack)
}

// Unmatched returns how many pops found only the base.
func (s *TransformStack) Unmatched() int {
	return s.unmatched
}

// Reset drops everything above the base and zeroes the counter.
func (s *TransformStack) Reset() {
	s.stack = append(s.stack[:0], math3d.Identity())
	s.unmatched = 0
}
