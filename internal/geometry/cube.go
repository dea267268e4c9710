package geometry

import (
	"fmt"
	"io"
)

type Vertex [3]float64

// Face lists four vertex indices.
type Face [4]int

// Cube is an axis-aligned unit cube centred on the origin.
type Cube struct {
	Vertices [8]Vertex `json:"vertices"`
	Faces    [6]Face   `json:"faces"`
}

var FaceNames = [6]string{"front", "back", "left", "right", "bottom", "top"}

func NewCube() Cube {
	return Cube{
		Vertices: [8]Vertex{
			{-0.5, -0.5, -0.5},
			{0.5, -0.5, -0.5},
			{0.5, 0.5, -0.5},
			{-0.5, 0.5, -0.5},
			{-0.5, -0.5, 0.5},
			{0.5, -0.5, 0.5},
			{0.5, 0.5, 0.5},
			{-0.5, 0.5, 0.5},
		},
		Faces: [6]Face{
			{0, 1, 2, 3},
			{4, 5, 6, 7},
			{0, 4, 7, 3},
			{1, 5, 6, 2},
			{0, 1, 5, 4},
			{2, 3, 7, 6},
		},
	}
}

// WriteTo prints the vertex and face tables.
func (c Cube) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(format string, args ...any) error {
		n, err := fmt.Fprintf(w, format, args...)
		total += int64(n)
		return err
	}

	if err := write("Vertices:\n"); err != nil {
		return total, err
	}
	for i, v := range c.Vertices {
		if err := write("Vertex %d: [%g, %g, %g]\n", i, v[0], v[1], v[2]); err != nil {
			return total, err
		}
	}
	if err := write("\nFaces:\n"); err != nil {
		return total, err
	}
	for i, f := range c.Faces {
		if err := write("Face %d (%s): [%d, %d, %d, %d]\n", i, FaceNames[i], f[0], f[1], f[2], f[3]); err != nil {
			return total, err
		}
	}
	return total, nil
}
