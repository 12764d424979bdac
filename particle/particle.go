// Package particle implements the line-clear explosion effect: a
// fixed-capacity pool of short-lived points integrated under gravity and
// horizontal drag. Coordinates are in pixels; rendering is the caller's
// concern.
package particle

import (
	"image/color"
	"math"
	"math/rand"
)

// PoolSize is the hard capacity of the pool. Spawn requests beyond the
// free slots are dropped silently; the effect degrades instead of failing.
const PoolSize = 4096

const (
	gravity   = 900.0 // px/s^2, downward
	dragCoeff = 0.8   // horizontal velocity decay per second
)

// Particle is a single kinematic point. Alive is the sole liveness flag;
// dead slots are recycled in place.
type Particle struct {
	Alive    bool
	X, Y     float64
	VX, VY   float64
	Age      float64
	Lifespan float64
	Color    color.NRGBA
}

// Opacity is the normalized remaining life, used by renderers for fade-out.
func (p Particle) Opacity() float64 {
	if p.Lifespan <= 0 {
		return 0
	}
	a := 1 - p.Age/p.Lifespan
	if a < 0 {
		return 0
	}
	return a
}

// Pool owns up to PoolSize particles.
type Pool struct {
	items [PoolSize]Particle
	rng   *rand.Rand
}

func NewPool(rng *rand.Rand) *Pool {
	return &Pool{rng: rng}
}

// Reset kills every particle.
func (p *Pool) Reset() {
	p.items = [PoolSize]Particle{}
}

// SpawnExplosion emits a burst of 120-199 particles around (cx, cy).
// jx and jy bound the positional jitter; launch direction is radial with
// an upward bias, color is jittered around base, lifespan is drawn from
// [0.6, 1.2) seconds.
func (p *Pool) SpawnExplosion(cx, cy, jx, jy float64, base color.NRGBA) {
	count := 120 + p.rng.Intn(80)
	for i := 0; i < count; i++ {
		slot := p.free()
		if slot == nil {
			return
		}
		ang := p.rng.Float64() * 2 * math.Pi
		spd := 100 + p.rng.Float64()*300
		*slot = Particle{
			Alive:    true,
			X:        cx + (p.rng.Float64()-0.5)*jx,
			Y:        cy + (p.rng.Float64()-0.5)*jy,
			VX:       math.Cos(ang) * spd,
			VY:       math.Sin(ang)*spd - (50 + p.rng.Float64()*100),
			Lifespan: 0.6 + p.rng.Float64()*0.6,
			Color:    p.jitterColor(base),
		}
	}
}

func (p *Pool) free() *Particle {
	for i := range p.items {
		if !p.items[i].Alive {
			return &p.items[i]
		}
	}
	return nil
}

func (p *Pool) jitterColor(base color.NRGBA) color.NRGBA {
	d := p.rng.Intn(40) - 20
	return color.NRGBA{
		R: clampByte(int(base.R) + d),
		G: clampByte(int(base.G) + d),
		B: clampByte(int(base.B) + d),
		A: base.A,
	}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Update ages every live particle by dt seconds. Expired particles are
// marked dead and skip integration for the step; the rest fall under
// gravity with exponential horizontal drag.
func (p *Pool) Update(dt float64) {
	for i := range p.items {
		pt := &p.items[i]
		if !pt.Alive {
			continue
		}
		pt.Age += dt
		if pt.Age >= pt.Lifespan {
			pt.Alive = false
			continue
		}
		pt.VY += gravity * dt
		pt.VX *= 1 - dragCoeff*dt
		pt.X += pt.VX * dt
		pt.Y += pt.VY * dt
	}
}

// Each calls fn for every live particle.
func (p *Pool) Each(fn func(Particle)) {
	for i := range p.items {
		if p.items[i].Alive {
			fn(p.items[i])
		}
	}
}

// Count reports the number of live particles.
func (p *Pool) Count() int {
	n := 0
	for i := range p.items {
		if p.items[i].Alive {
			n++
		}
	}
	return n
}
