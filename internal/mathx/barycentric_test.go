package mathx

import "testing"

func TestPointInTriangleInside(t *testing.T) {
	a := Vector3{0, 0, 0}
	b := Vector3{4, 0, 0}
	c := Vector3{0, 4, 0}

	if !PointInTriangle(Vector3{1, 1, 0}, a, b, c) {
		t.Errorf("expected (1,1,0) to be inside the triangle")
	}
}

func TestPointInTriangleOutside(t *testing.T) {
	a := Vector3{0, 0, 0}
	b := Vector3{4, 0, 0}
	c := Vector3{0, 4, 0}

	if PointInTriangle(Vector3{5, 5, 0}, a, b, c) {
		t.Errorf("expected (5,5,0) to be outside the triangle")
	}
}

func TestPointInTriangleReverseWound(t *testing.T) {
	a := Vector3{0, 0, 0}
	b := Vector3{0, 4, 0}
	c := Vector3{4, 0, 0}

	if !PointInTriangle(Vector3{1, 1, 0}, a, b, c) {
		t.Errorf("expected (1,1,0) to be inside the reverse-wound triangle")
	}
}

func TestPointInTriangleOnEdge(t *testing.T) {
	a := Vector3{0, 0, 0}
	b := Vector3{4, 0, 0}
	c := Vector3{0, 4, 0}

	if !PointInTriangle(Vector3{2, 0, 0}, a, b, c) {
		t.Errorf("expected a point on the edge to count as inside")
	}
}
