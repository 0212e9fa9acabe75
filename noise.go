package ants

import (
	"github.com/aquilax/go-perlin"
)

// A Noise is a smooth deterministic field sampled by the steering engine
// to make agents wander.
type Noise interface {
	// At returns the value of the field at time t for agent i, in [-1, 1].
	At(t, i float64) float64
}

// Perlin parameters: weight ratio between octaves, frequency ratio between
// octaves and number of octaves.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
)

// Perlin is a Noise backed by Perlin gradient noise.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin returns Perlin noise whose field is entirely determined by seed.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// At samples the noise field.
func (n *Perlin) At(t, i float64) float64 {
	return clamp(n.p.Noise2D(t, i), -1, 1)
}

// Silent is a Noise that is zero everywhere.
type Silent struct{}

// At returns 0.
func (Silent) At(t, i float64) float64 {
	return 0
}
