package scene

import (
	"math"
	"math/rand"
	"testing"

	"solar-system-sim/internal/config"
	"solar-system-sim/internal/orbit"
	"solar-system-sim/internal/simulation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBuildDefaultScene(t *testing.T) {
	sc, err := Build(config.Default(), rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.Equal(t, 10, sc.System.Len())
	assert.Len(t, sc.System.Bodies(), 9)
	require.Len(t, sc.System.Moons(), 1)
	assert.Equal(t, "Earth", sc.System.Moons()[0].Parent().Name())
	assert.Len(t, sc.Stars.Stars, 100)

	saturn, ok := sc.System.Lookup("Saturn")
	require.True(t, ok)
	ring := saturn.(*simulation.Body).Ring()
	require.NotNil(t, ring)
	assert.Equal(t, 3.0, ring.Radius)
	assert.Equal(t, math.Pi/2, ring.Tilt)

	assert.Equal(t, 100.0, sc.Light.Intensity)
	assert.Equal(t, 0.8, sc.Light.Decay)
	assert.Equal(t, r3.Vec{}, sc.Light.Position)
	assert.Equal(t, 0.5, sc.Ambient.Intensity)
	assert.Equal(t, 60.0, sc.Camera.Distance)
	assert.Equal(t, 0.8, sc.Sun.Appearance().EmissiveIntensity)
}

func TestBuildPlanetOrbits(t *testing.T) {
	sc, err := Build(config.Default(), rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	want := map[string][2]float64{
		"Mercury": {5, 0.002},
		"Venus":   {8, 0.0015},
		"Earth":   {11, 0.001},
		"Mars":    {15, 0.0008},
		"Jupiter": {25, 0.0004},
		"Saturn":  {35, 0.0003},
		"Uranus":  {45, 0.0002},
		"Neptune": {55, 0.00015},
	}
	for name, w := range want {
		obj, ok := sc.System.Lookup(name)
		require.True(t, ok, name)
		b := obj.(*simulation.Body)
		assert.Equal(t, w[0], b.Distance(), name)
		assert.Equal(t, w[1], b.Speed(), name)
	}

	sc.System.Update(1.7e12)
	earth, _ := sc.System.Lookup("Earth")
	moon, _ := sc.System.Lookup("Moon")
	assert.InDelta(t, 1.5, r3.Norm(r3.Sub(moon.Position(), earth.Position())), 1e-9)
}

func TestBuildWithoutMoonOrRing(t *testing.T) {
	cfg := config.Default()
	cfg.Moon.Name = ""
	cfg.Ring.Planet = ""
	sc, err := Build(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Empty(t, sc.System.Moons())
	saturn, _ := sc.System.Lookup("Saturn")
	assert.Nil(t, saturn.(*simulation.Body).Ring())
}

func TestBuildRejectsUnknownMoonParent(t *testing.T) {
	cfg := config.Default()
	cfg.Moon.Parent = "Pluto"
	_, err := Build(cfg, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, simulation.ErrUnknownParent)
}

func TestSurfacesAreUnique(t *testing.T) {
	cfg := config.Default()
	cfg.Planets[1].Texture = cfg.Planets[0].Texture
	sc, err := Build(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// Mercury and Venus share a file but keep their own colours.
	surfaces := sc.Surfaces()
	assert.Len(t, surfaces, 11)
	assert.Contains(t, surfaces, Surface{Texture: "saturn_ring.png", Color: config.MustColor("#c2b280")})
	assert.Contains(t, surfaces, Surface{Texture: "mercury.png", Color: config.MustColor("#e8cda2")})
	for _, sf := range surfaces {
		assert.NotEqual(t, "space.jpg", sf.Texture)
	}

	cfg.Planets[1].Color = cfg.Planets[0].Color
	sc, err = Build(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Len(t, sc.Surfaces(), 10)
}

func TestTracedOrbitsAreCircles(t *testing.T) {
	sc, err := Build(config.Default(), rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	sc.System.Update(1.7e12)

	for _, b := range sc.System.Bodies() {
		if b.Distance() == 0 {
			continue
		}
		period := orbit.Period(b.Speed())
		times := []float64{0, period / 5, 2 * period / 5, 3 * period / 5, 4 * period / 5}
		samples, err := sc.System.Trace(b.Name(), times)
		require.NoError(t, err, b.Name())
		c, err := orbit.FitCircle(samples)
		require.NoError(t, err, b.Name())
		assert.InDelta(t, b.Distance(), c.Radius, 1e-6, b.Name())
		assert.InDelta(t, 0, r3.Norm(c.Center), 1e-6, b.Name())
	}
	assert.Equal(t, 1.7e12, sc.System.LastUpdate())
}
