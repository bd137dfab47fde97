package noise

import (
	"math"
	"math/rand"
	"testing"
)

// TestPerlin2DDeterministic verifies that independently constructed engines
// with the same seed agree exactly.
func TestPerlin2DDeterministic(t *testing.T) {
	a := New(5)
	b := New(5)

	if got, want := a.Perlin2D(1.23, 4.56), b.Perlin2D(1.23, 4.56); got != want {
		t.Errorf("engines with equal seeds disagree: %v vs %v", got, want)
	}

	var results [100]float64
	for i := range results {
		results[i] = a.Perlin2D(3.7, -2.1)
	}
	first := results[0]
	for i := 1; i < len(results); i++ {
		if results[i] != first {
			t.Errorf("Perlin2D not deterministic: results[0]=%f, results[%d]=%f", first, i, results[i])
		}
	}
}

// TestPerlin2DSeedSensitivity verifies different seeds produce different fields.
func TestPerlin2DSeedSensitivity(t *testing.T) {
	a := New(1)
	b := New(2)

	// A single sample could collide; over many samples the fields must differ.
	same := true
	for i := 0; i < 32 && same; i++ {
		x := float64(i) * 0.37
		if a.Perlin2D(x, x*1.7) != b.Perlin2D(x, x*1.7) {
			same = false
		}
	}
	if same {
		t.Error("engines with different seeds produced identical fields")
	}
}

// TestPerlin2DRange samples widely and checks the advertised output bounds.
func TestPerlin2DRange(t *testing.T) {
	e := New(42)
	rng := rand.New(rand.NewSource(12345))

	for i := 0; i < 10000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100

		v := e.Perlin2D(x, y)
		if v < -1.01 || v > 1.01 {
			t.Errorf("Perlin2D(%f, %f) = %f, outside [-1.01, 1.01]", x, y, v)
		}
	}
}

func TestPerlin2DZeroAtLatticePoints(t *testing.T) {
	// Gradient noise is zero wherever the fractional offset is zero.
	e := New(7)
	for _, p := range [][2]float64{{0, 0}, {1, 0}, {5, 9}, {-3, 4}, {100, -100}} {
		if v := e.Perlin2D(p[0], p[1]); v != 0 {
			t.Errorf("Perlin2D(%v, %v) = %f, expected 0 at lattice point", p[0], p[1], v)
		}
	}
}

// TestPerlin2DContinuity verifies nearby samples stay close.
func TestPerlin2DContinuity(t *testing.T) {
	e := New(42)

	v1 := e.Perlin2D(1.0, 1.0)
	v2 := e.Perlin2D(1.01, 1.0)

	if diff := math.Abs(v1 - v2); diff >= 0.1 {
		t.Errorf("Perlin2D not continuous: f(1.0,1.0)=%f, f(1.01,1.0)=%f, diff=%f >= 0.1", v1, v2, diff)
	}
}

func TestPerlin3DDeterministic(t *testing.T) {
	a := New(5)
	b := New(5)

	if got, want := a.Perlin3D(1.5, 2.7, 3.3), b.Perlin3D(1.5, 2.7, 3.3); got != want {
		t.Errorf("engines with equal seeds disagree: %v vs %v", got, want)
	}
}

func TestPerlin3DRange(t *testing.T) {
	e := New(42)
	rng := rand.New(rand.NewSource(12345))

	for i := 0; i < 10000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100

		v := e.Perlin3D(x, y, z)
		if v < -1.01 || v > 1.01 {
			t.Errorf("Perlin3D(%f, %f, %f) = %f, outside [-1.01, 1.01]", x, y, z, v)
		}
	}
}

// TestFBM2DRange checks normalization keeps fBm bounded for every octave
// count the terrain layers use.
func TestFBM2DRange(t *testing.T) {
	e := New(42)
	rng := rand.New(rand.NewSource(99))

	for octaves := 1; octaves <= 10; octaves++ {
		for i := 0; i < 1000; i++ {
			x := rng.Float64()*100 - 50
			y := rng.Float64()*100 - 50

			v := e.FBM2D(x, y, octaves, 0.5, 2.0)
			if v < -1.01 || v > 1.01 {
				t.Errorf("FBM2D(%f, %f, %d octaves) = %f, outside [-1.01, 1.01]", x, y, octaves, v)
			}
		}
	}
}

// TestFBM2DSingleOctave verifies one octave degenerates to plain Perlin2D.
func TestFBM2DSingleOctave(t *testing.T) {
	e := New(42)

	x, y := 3.25, -1.75
	if got, want := e.FBM2D(x, y, 1, 0.5, 2.0), e.Perlin2D(x, y); got != want {
		t.Errorf("FBM2D with 1 octave = %f, want Perlin2D = %f", got, want)
	}
}

// TestTerrainHeightRange verifies heights stay within [0, heightScale].
func TestTerrainHeightRange(t *testing.T) {
	e := New(42)
	rng := rand.New(rand.NewSource(777))
	heightScale := 15.0

	for i := 0; i < 5000; i++ {
		x := rng.Float64()*400 - 200
		z := rng.Float64()*400 - 200

		h := e.TerrainHeight(x, z, 0.08, heightScale)
		if h < 0 || h > heightScale {
			t.Errorf("TerrainHeight(%f, %f) = %f, outside [0, %f]", x, z, h, heightScale)
		}
	}
}

func TestTerrainHeightDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	var results [100]float64
	for i := range results {
		results[i] = a.TerrainHeight(12.5, -7.25, 0.08, 15.0)
	}
	first := results[0]
	for i := 1; i < len(results); i++ {
		if results[i] != first {
			t.Errorf("TerrainHeight not deterministic: results[0]=%f, results[%d]=%f", first, i, results[i])
		}
	}

	if got := b.TerrainHeight(12.5, -7.25, 0.08, 15.0); got != first {
		t.Errorf("TerrainHeight differs across instances with equal seeds: %f vs %f", got, first)
	}
}

// TestReseed verifies reseeding fully reinitializes the table and that
// returning to the original seed restores the original field.
func TestReseed(t *testing.T) {
	e := New(5)
	before := e.Perlin2D(1.23, 4.56)

	e.Reseed(99)
	changed := false
	for i := 0; i < 32 && !changed; i++ {
		x := float64(i) * 0.41
		if e.Perlin2D(x, x*2.3) != New(5).Perlin2D(x, x*2.3) {
			changed = true
		}
	}
	if !changed {
		t.Error("Reseed(99) left the field identical to seed 5")
	}

	e.Reseed(5)
	if got := e.Perlin2D(1.23, 4.56); got != before {
		t.Errorf("Reseed(5) did not restore original field: %f vs %f", got, before)
	}
}

// TestZeroSeed verifies seed 0 still builds a usable engine.
func TestZeroSeed(t *testing.T) {
	e := New(0)

	for i := 0; i < 100; i++ {
		x := float64(i) * 0.13
		v := e.Perlin2D(x, -x)
		if v < -1.01 || v > 1.01 {
			t.Errorf("Perlin2D(%f, %f) = %f with time seed, outside [-1.01, 1.01]", x, -x, v)
		}
	}
}

// TestPermutationTableDoubled verifies the upper half mirrors the lower half
// and the lower half is a permutation of 0..255.
func TestPermutationTableDoubled(t *testing.T) {
	e := New(42)

	var seen [256]bool
	for i := 0; i < 256; i++ {
		if e.perm[i] != e.perm[i+256] {
			t.Errorf("perm[%d]=%d != perm[%d]=%d", i, e.perm[i], i+256, e.perm[i+256])
		}
		if e.perm[i] < 0 || e.perm[i] > 255 {
			t.Fatalf("perm[%d]=%d outside [0,255]", i, e.perm[i])
		}
		if seen[e.perm[i]] {
			t.Errorf("value %d appears twice in lower table", e.perm[i])
		}
		seen[e.perm[i]] = true
	}
}

func BenchmarkPerlin2D(b *testing.B) {
	e := New(42)
	for i := 0; i < b.N; i++ {
		e.Perlin2D(float64(i)*0.01, float64(i)*0.013)
	}
}

func BenchmarkTerrainHeight(b *testing.B) {
	e := New(42)
	for i := 0; i < b.N; i++ {
		e.TerrainHeight(float64(i)*0.1, float64(i)*0.07, 0.08, 15.0)
	}
}
