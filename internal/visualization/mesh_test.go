package visualization

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereGeometry(t *testing.T) {
	m, err := NewSphere(4, 64, 64)
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 65*65)
	// two triangles per quad, minus one for each quad touching a pole
	assert.Equal(t, 64*64*2-2*64, m.Triangles())
	assert.False(t, m.DoubleSided)

	for _, v := range m.Vertices {
		assert.InDelta(t, 4, v.Pos.Len(), 1e-9)
		assert.InDelta(t, 1, v.Normal.Len(), 1e-9)
		assert.GreaterOrEqual(t, v.U, 0.0)
		assert.LessOrEqual(t, v.V, 1.0)
	}
	assert.InDelta(t, 4, m.Vertices[0].Pos[1], 1e-9, "first row is the north pole")
}

func TestSphereFacesPointOutward(t *testing.T) {
	m, err := NewSphere(1, 16, 16)
	require.NoError(t, err)
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Vertices[m.Indices[i]].Pos, m.Vertices[m.Indices[i+1]].Pos, m.Vertices[m.Indices[i+2]].Pos
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c)
		assert.Greater(t, n.Dot(centroid), 0.0, "triangle %d winds inward", i/3)
	}
}

func TestSphereRejectsDegenerateInput(t *testing.T) {
	_, err := NewSphere(0, 32, 32)
	assert.Error(t, err)
	_, err = NewSphere(1, 2, 32)
	assert.Error(t, err)
}

func TestTorusGeometry(t *testing.T) {
	m, err := NewTorus(3, 0.3, 2, 100)
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 3*101)
	assert.Equal(t, 2*100*2, m.Triangles())
	assert.True(t, m.DoubleSided)

	for _, v := range m.Vertices {
		planar := mgl64.Vec2{v.Pos[0], v.Pos[1]}.Len()
		assert.GreaterOrEqual(t, planar, 3-0.3-1e-9)
		assert.LessOrEqual(t, planar, 3+0.3+1e-9)
		assert.InDelta(t, 1, v.Normal.Len(), 1e-9)
	}

	_, err = NewTorus(3, 0.3, 1, 100)
	assert.Error(t, err)
}
