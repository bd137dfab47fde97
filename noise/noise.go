package noise

import (
	"math"
	"math/rand"
	"time"
)

// Engine produces seeded, reproducible gradient noise. The permutation table
// is fixed after construction, so Perlin2D, Perlin3D and FBM2D are pure
// functions of their inputs and an Engine is safe to share read-only.
type Engine struct {
	perm [512]int
}

// New builds a noise engine from the given seed. Seed 0 selects a seed from
// the current time; the resulting noise is not reproducible across runs.
func New(seed int64) *Engine {
	e := &Engine{}
	e.Reseed(seed)
	return e
}

// Reseed rebuilds the permutation table from the given seed, fully
// reinitializing the engine.
func (e *Engine) Reseed(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var base [256]int
	for i := range base {
		base[i] = i
	}

	// Fisher-Yates shuffle driven by the seeded source.
	for i := 255; i > 0; i-- {
		j := rng.Intn(i + 1)
		base[i], base[j] = base[j], base[i]
	}

	// Duplicate the table so corner hashing never wraps.
	for i := 0; i < 256; i++ {
		e.perm[i] = base[i]
		e.perm[i+256] = base[i]
	}
}

// fade is the quintic interpolant 6t^5 - 15t^4 + 10t^3. First and second
// derivatives vanish at t=0 and t=1, which keeps cell boundaries seam-free.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad2 picks one of four diagonal gradients from the low 2 bits of hash and
// returns its dot product with (x, y).
func grad2(hash int, x, y float64) float64 {
	h := hash & 3
	u := x
	if h >= 2 {
		u = -x
	}
	v := -y
	if h&1 != 0 {
		v = y
	}
	return u + v
}

// grad3 picks one of twelve edge-of-cube gradients from the low 4 bits of
// hash and returns its dot product with (x, y, z).
func grad3(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := z
	if h < 4 {
		v = y
	} else if h == 12 || h == 14 {
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Perlin2D returns classic 2D gradient noise in approximately [-1, 1].
func (e *Engine) Perlin2D(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)

	u := fade(x)
	v := fade(y)

	// Hash the four cell corners through the doubled table.
	a := e.perm[xi] + yi
	aa := e.perm[a]
	ab := e.perm[a+1]
	b := e.perm[xi+1] + yi
	ba := e.perm[b]
	bb := e.perm[b+1]

	return lerp(
		lerp(grad2(e.perm[aa], x, y), grad2(e.perm[ba], x-1, y), u),
		lerp(grad2(e.perm[ab], x, y-1), grad2(e.perm[bb], x-1, y-1), u),
		v)
}

// Perlin3D returns classic 3D gradient noise in approximately [-1, 1].
func (e *Engine) Perlin3D(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)

	u := fade(x)
	v := fade(y)
	w := fade(z)

	// Hash the eight cube corners; +1 on the inner index steps to z+1.
	a := e.perm[xi] + yi
	aa := e.perm[a] + zi
	ab := e.perm[a+1] + zi
	b := e.perm[xi+1] + yi
	ba := e.perm[b] + zi
	bb := e.perm[b+1] + zi

	return lerp(
		lerp(
			lerp(grad3(e.perm[aa], x, y, z), grad3(e.perm[ba], x-1, y, z), u),
			lerp(grad3(e.perm[ab], x, y-1, z), grad3(e.perm[bb], x-1, y-1, z), u),
			v),
		lerp(
			lerp(grad3(e.perm[aa+1], x, y, z-1), grad3(e.perm[ba+1], x-1, y, z-1), u),
			lerp(grad3(e.perm[ab+1], x, y-1, z-1), grad3(e.perm[bb+1], x-1, y-1, z-1), u),
			v),
		w)
}

// FBM2D sums octaves of Perlin2D at geometrically increasing frequency and
// decreasing amplitude. The result is normalized by the accumulated amplitude
// so it stays in [-1, 1] regardless of octave count.
func (e *Engine) FBM2D(x, y float64, octaves int, persistence, lacunarity float64) float64 {
	value := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxValue := 0.0

	for i := 0; i < octaves; i++ {
		value += e.Perlin2D(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}

	return value / maxValue
}

// TerrainHeight composites three fBm layers into a height in [0, heightScale].
// The base layer (6 octaves, persistence 0.5, lacunarity 2.0, at scale)
// carries weight 0.7. A ridge layer, 4-octave fBm at half scale shaped as
// (1-|fbm|)^2 for sharp ridgelines, carries weight 0.2. A 3-octave detail
// layer at 4x scale carries weight 0.1. Layer parameters and weights are
// fixed: a given seed always yields the same landscape.
func (e *Engine) TerrainHeight(x, z, scale, heightScale float64) float64 {
	sx := x * scale
	sz := z * scale

	base := e.FBM2D(sx, sz, 6, 0.5, 2.0)

	ridges := math.Abs(e.FBM2D(sx*0.5, sz*0.5, 4, 0.6, 2.1))
	ridges = 1.0 - ridges
	ridges *= ridges

	detail := e.FBM2D(sx*4.0, sz*4.0, 3, 0.3, 2.0) * 0.1

	height := base*0.7 + ridges*0.2 + detail

	// Remap [-1, 1] to [0, heightScale].
	return (height*0.5 + 0.5) * heightScale
}
