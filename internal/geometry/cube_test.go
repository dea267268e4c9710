package geometry

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewCube_Vertices(t *testing.T) {
	c := NewCube()
	seen := make(map[Vertex]bool)
	for i, v := range c.Vertices {
		for axis, coord := range v {
			if coord != 0.5 && coord != -0.5 {
				t.Fatalf("vertex %d axis %d = %v, want ±0.5", i, axis, coord)
			}
		}
		if seen[v] {
			t.Fatalf("vertex %d %v duplicated", i, v)
		}
		seen[v] = true
	}
}

func TestNewCube_Faces(t *testing.T) {
	c := NewCube()
	want := [6]Face{
		{0, 1, 2, 3},
		{4, 5, 6, 7},
		{0, 4, 7, 3},
		{1, 5, 6, 2},
		{0, 1, 5, 4},
		{2, 3, 7, 6},
	}
	if c.Faces != want {
		t.Fatalf("Faces = %v, want %v", c.Faces, want)
	}

	// each face is planar: all four vertices share one coordinate
	for i, f := range c.Faces {
		planar := false
		for axis := 0; axis < 3; axis++ {
			v0 := c.Vertices[f[0]][axis]
			if c.Vertices[f[1]][axis] == v0 && c.Vertices[f[2]][axis] == v0 && c.Vertices[f[3]][axis] == v0 {
				planar = true
			}
		}
		if !planar {
			t.Fatalf("face %d (%s) is not planar", i, FaceNames[i])
		}
	}
}

func TestCube_WriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := NewCube().WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("WriteTo() n = %d, wrote %d", n, buf.Len())
	}
	out := buf.String()
	for _, want := range []string{"Vertex 0: [-0.5, -0.5, -0.5]", "Face 5 (top): [2, 3, 7, 6]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
