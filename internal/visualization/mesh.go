package visualization

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MeshVertex is a vertex in model space. U and V are texture coordinates in
// [0, 1] with V growing downward through the image.
type MeshVertex struct {
	Pos    mgl64.Vec3
	Normal mgl64.Vec3
	U, V   float64
}

// Mesh is an indexed triangle list. Closed meshes have their back faces
// culled; DoubleSided meshes are drawn from both sides.
type Mesh struct {
	Vertices    []MeshVertex
	Indices     []int
	DoubleSided bool
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// NewSphere builds a UV sphere of the given radius centred at the origin.
// The texture seam lies on the -x side and V runs from the north pole (0)
// to the south pole (1).
func NewSphere(radius float64, widthSegments, heightSegments int) (*Mesh, error) {
	if radius <= 0 || widthSegments < 3 || heightSegments < 2 {
		return nil, fmt.Errorf("invalid sphere: radius %.3f, segments %dx%d", radius, widthSegments, heightSegments)
	}
	m := &Mesh{}
	grid := make([][]int, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]int, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			n := mgl64.Vec3{
				-math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				math.Cos(v * math.Pi),
				math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			}
			row[ix] = len(m.Vertices)
			m.Vertices = append(m.Vertices, MeshVertex{Pos: n.Mul(radius), Normal: n, U: u, V: v})
		}
		grid[iy] = row
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			// the pole rows collapse into a single point, skip their empty halves
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	return m, nil
}

// NewTorus builds a torus lying in the xy plane around the z axis. radius is
// the distance from the centre to the middle of the tube.
func NewTorus(radius, tube float64, radialSegments, tubularSegments int) (*Mesh, error) {
	if radius <= 0 || tube <= 0 || radialSegments < 2 || tubularSegments < 3 {
		return nil, fmt.Errorf("invalid torus: radius %.3f, tube %.3f, segments %dx%d", radius, tube, radialSegments, tubularSegments)
	}
	m := &Mesh{DoubleSided: true}
	for j := 0; j <= radialSegments; j++ {
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			v := float64(j) / float64(radialSegments) * 2 * math.Pi
			pos := mgl64.Vec3{
				(radius + tube*math.Cos(v)) * math.Cos(u),
				(radius + tube*math.Cos(v)) * math.Sin(u),
				tube * math.Sin(v),
			}
			center := mgl64.Vec3{radius * math.Cos(u), radius * math.Sin(u), 0}
			m.Vertices = append(m.Vertices, MeshVertex{
				Pos:    pos,
				Normal: pos.Sub(center).Normalize(),
				U:      float64(i) / float64(tubularSegments),
				V:      1 - float64(j)/float64(radialSegments),
			})
		}
	}
	stride := tubularSegments + 1
	for j := 1; j <= radialSegments; j++ {
		for i := 1; i <= tubularSegments; i++ {
			a := stride*j + i - 1
			b := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	return m, nil
}
