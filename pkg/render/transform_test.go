package render

import (
	"math"
	"testing"

	"github.com/taigrr/x3dgl/pkg/math3d"
)

func TestTransformStack_Balanced(t *testing.T) {
	s := NewTransformStack()
	noRot := math3d.AxisAngle{Axis: math3d.V3(0, 0, 1)}

	s.PushTRS(math3d.V3(1, 0, 0), noRot, math3d.V3(1, 1, 1))
	s.PushTRS(math3d.Vec3{}, noRot, math3d.V3(2, 2, 2))
	if s.Depth() != 3 {
		t.Errorf("Depth = %d, want 3", s.Depth())
	}

	// Outer translate applies after the inner scale
	got := s.Top().MulPoint(math3d.V3(1, 0, 0))
	if math.Abs(got.X-3) > 1e-12 || got.Y != 0 || got.Z != 0 {
		t.Errorf("Top * (1,0,0) = %v, want (3,0,0)", got)
	}

	s.Pop()
	s.Pop()
	if s.Depth() != 1 || s.Unmatched() != 0 {
		t.Errorf("Depth = %d, Unmatched = %d, want 1, 0", s.Depth(), s.Unmatched())
	}
	if s.Top() != math3d.Identity() {
		t.Error("base is not identity after balanced pops")
	}
}

func TestTransformStack_UnmatchedPop(t *testing.T) {
	s := NewTransformStack()
	s.Pop()
	s.Pop()

	if s.Unmatched() != 2 {
		t.Errorf("Unmatched = %d, want 2", s.Unmatched())
	}
	if s.Depth() != 1 {
		t.Errorf("Depth = %d, want the base to survive", s.Depth())
	}

	s.Push(math3d.Translate(math3d.V3(0, 1, 0)))
	s.Reset()
	if s.Depth() != 1 || s.Unmatched() != 0 || s.Top() != math3d.Identity() {
		t.Error("Reset did not restore the base state")
	}
}
