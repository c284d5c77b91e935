package meshlevel

import (
	"errors"
	"fmt"
	"math"

	"github.com/fogleman/delaunay"
	"github.com/mastercactapus/gcsim/coord"
)

// ZOffsetter reports the height correction at a machine X/Y position.
type ZOffsetter interface {
	OffsetZ(x, y float64) (bool, float64)
}

type dummyOffsetter struct{}

func (dummyOffsetter) OffsetZ(x, y float64) (bool, float64) {
	return false, 0
}

// Mesh interpolates probed heights over the triangles of their Delaunay
// triangulation.
type Mesh struct {
	minX, minY, maxX, maxY float64
	triangles              []coord.Triangle
}

func NewMesh(points []coord.Point) (*Mesh, error) {
	if len(points) < 3 {
		return nil, errors.New("need at least 3 points to create a mesh")
	}

	points2d := make([]delaunay.Point, len(points))
	byPoint := make(map[delaunay.Point]coord.Point, len(points))

	mesh := &Mesh{
		minX: points[0].X,
		minY: points[0].Y,
		maxX: points[0].X,
		maxY: points[0].Y,
	}
	for i, p := range points {
		mesh.minX = math.Min(mesh.minX, p.X)
		mesh.minY = math.Min(mesh.minY, p.Y)
		mesh.maxX = math.Max(mesh.maxX, p.X)
		mesh.maxY = math.Max(mesh.maxY, p.Y)

		d := delaunay.Point{X: p.X, Y: p.Y}
		if _, ok := byPoint[d]; ok {
			return nil, fmt.Errorf("duplicate probe point at X%g Y%g", p.X, p.Y)
		}
		byPoint[d] = p
		points2d[i] = d
	}
	mesh.minX -= coord.Epsilon
	mesh.minY -= coord.Epsilon
	mesh.maxX += coord.Epsilon
	mesh.maxY += coord.Epsilon

	tri, err := delaunay.Triangulate(points2d)
	if err != nil {
		return nil, fmt.Errorf("triangulate: %w", err)
	}

	mesh.triangles = make([]coord.Triangle, 0, len(tri.Triangles)/3)
	for i := 0; i < len(tri.Triangles); i += 3 {
		mesh.triangles = append(mesh.triangles, coord.Triangle{
			A: byPoint[tri.Points[tri.Triangles[i]]],
			B: byPoint[tri.Points[tri.Triangles[i+1]]],
			C: byPoint[tri.Points[tri.Triangles[i+2]]],
		})
	}

	return mesh, nil
}

func (m Mesh) OffsetZ(x, y float64) (bool, float64) {
	if x < m.minX || m.maxX < x || y < m.minY || m.maxY < y {
		return false, 0
	}
	for _, t := range m.triangles {
		if !t.ContainsXY(x, y) {
			continue
		}
		return true, t.Z(x, y)
	}

	return false, 0
}

// OffsetFrom returns points with z subtracted from each height, making
// them relative to a reference level.
func OffsetFrom(z float64, points []coord.Point) []coord.Point {
	p := make([]coord.Point, len(points))
	copy(p, points)

	for i := range p {
		p[i].Z -= z
	}
	return p
}
