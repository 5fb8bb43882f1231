package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Billow defaults.
const (
	DefaultBillowOctaves     = 6
	DefaultBillowFrequency   = 1.0
	DefaultBillowLacunarity  = math.Pi * 2 / 3
	DefaultBillowPersistence = 0.5
	DefaultBillowGain        = 1.0
)

// Billow is layered coherent noise where every octave contributes its
// absolute value, producing puffy, cloud-like features.
// Output is roughly in [-1, 1].
type Billow struct {
	Octaves     int
	Frequency   float64
	Lacunarity  float64
	Persistence float64
	// Gain scales every simplex sample before it is folded.
	Gain float64

	sources []opensimplex.Noise
}

// NewBillow creates a billow generator with one simplex source per octave,
// seeded seed, seed+1, ...
func NewBillow(seed int64, octaves int, persistence float64) *Billow {
	if octaves < 1 {
		octaves = 1
	}
	b := &Billow{
		Octaves:     octaves,
		Frequency:   DefaultBillowFrequency,
		Lacunarity:  DefaultBillowLacunarity,
		Persistence: persistence,
		Gain:        DefaultBillowGain,
		sources:     make([]opensimplex.Noise, octaves),
	}
	for i := range b.sources {
		b.sources[i] = opensimplex.New(seed + int64(i))
	}
	return b
}

// Eval3 returns the billow value at the given point.
func (b *Billow) Eval3(x, y, z float64) float64 {
	x, y, z = x*b.Frequency, y*b.Frequency, z*b.Frequency

	var sum float64
	amp := 1.0
	for _, src := range b.sources {
		signal := math.Abs(src.Eval3(x, y, z)*b.Gain)*2 - 1
		sum += signal * amp
		amp *= b.Persistence
		x, y, z = x*b.Lacunarity, y*b.Lacunarity, z*b.Lacunarity
	}
	return sum + 0.5
}

// Eval2 returns the billow value at the given point.
func (b *Billow) Eval2(x, y float64) float64 {
	x, y = x*b.Frequency, y*b.Frequency

	var sum float64
	amp := 1.0
	for _, src := range b.sources {
		signal := math.Abs(src.Eval2(x, y)*b.Gain)*2 - 1
		sum += signal * amp
		amp *= b.Persistence
		x, y = x*b.Lacunarity, y*b.Lacunarity
	}
	return sum + 0.5
}

// Source is a coherent noise function in two and three dimensions.
type Source interface {
	Eval2(x, y float64) float64
	Eval3(x, y, z float64) float64
}

// Exponent reshapes a source: the value is moved from [-1, 1] into [0, 1],
// raised to Exponent, and moved back.
type Exponent struct {
	Source   Source
	Exponent float64
}

// NewExponent wraps src with the neutral exponent 1.
func NewExponent(src Source) *Exponent {
	return &Exponent{Source: src, Exponent: 1}
}

func (e *Exponent) reshape(v float64) float64 {
	v = math.Abs((v + 1) / 2)
	return math.Pow(v, e.Exponent)*2 - 1
}

// Eval3 returns the reshaped value at the given point.
func (e *Exponent) Eval3(x, y, z float64) float64 {
	return e.reshape(e.Source.Eval3(x, y, z))
}

// Eval2 returns the reshaped value at the given point.
func (e *Exponent) Eval2(x, y float64) float64 {
	return e.reshape(e.Source.Eval2(x, y))
}
