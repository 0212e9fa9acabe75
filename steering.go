package ants

// LinearAvoidance pushes agents away from the pointer with a strength
// proportional to their distance to it, so the push is strongest near the
// edge of the avoidance radius.
func LinearAvoidance(gain float64) func(d, radius float64) float64 {
	return func(d, radius float64) float64 {
		return gain * d
	}
}

// InverseAvoidance pushes agents away from the pointer with a strength
// that grows from zero at the edge of the avoidance radius to gain at the pointer.
func InverseAvoidance(gain float64) func(d, radius float64) float64 {
	return func(d, radius float64) float64 {
		if radius <= 0 {
			return 0
		}
		return gain * (1 - d/radius)
	}
}

// RayOrder returns the offset indices of the sensing rays in the order they
// are tested: straight ahead first, then alternately right and left by
// increasing angle, i.e. [0, -1, 1, -2, 2, ..., -steps, steps].
func RayOrder(steps int) []int {
	if steps < 0 {
		steps = 0
	}
	order := make([]int, 0, 2*steps+1)
	order = append(order, 0)
	for i := 1; i <= steps; i++ {
		order = append(order, -i, i)
	}
	return order
}

// Cone returns the angle between two neighboring sensing rays.
func (b *Behavior) Cone() float64 {
	if b.Steps <= 0 {
		return 0
	}
	return b.Fan / float64(b.Steps)
}

// Ray returns the sensing ray of offset index k for an agent at pos heading along dir.
func (b *Behavior) Ray(pos, dir Vec2, k int) Segment {
	u := Rotate(dir, b.Cone()*float64(k))
	return Segment{A: pos, B: pos.Add(u.Mul(b.RayLength))}
}

// Turn returns the turn rate, in radians per second, of an agent whose
// first intersecting ray has offset index k. Agents turn away from the ray;
// a head-on hit counts as half a step to the left, so agents on a collision
// course both veer right.
func (b *Behavior) Turn(k int) float64 {
	θ := b.Cone() * float64(k)
	if k == 0 {
		θ = b.Cone() / 2
	}
	return -clamp(θ*b.TurnGain, -b.MaxTurn, b.MaxTurn)
}

// Scan casts the sensing rays of agent id, at pos heading along dir,
// in the given order and returns the index of the first one that passes
// within Collider of another agent of the snapshot prev.
// near is a scratch buffer; the possibly grown buffer is returned for reuse.
func (s *Simulation) Scan(id int, pos, dir Vec2, prev []Agent, order []int, near []Vec2) (k int, hit bool, buf []Vec2) {
	b := &s.Behavior

	// only agents within reach of the rays can intersect them
	near = near[:0]
	r2 := b.RayLength * b.RayLength
	for _, q := range prev {
		if q.ID != id && Dist2(pos, q.Pos) < r2 {
			near = append(near, q.Pos)
		}
	}
	if len(near) == 0 {
		return 0, false, near
	}

	for _, j := range order {
		ray := b.Ray(pos, dir, j)
		for _, p := range near {
			if ray.DistToPoint(p) < b.Collider {
				return j, true, near
			}
		}
	}
	return 0, false, near
}

// steer updates a single agent for one step using the snapshot prev.
func (s *Simulation) steer(a *Agent, prev []Agent, order []int, near []Vec2) []Vec2 {
	b, env := &s.Behavior, &s.Env
	dt := env.Dt
	dir := a.Dir

	// wander
	if s.Noise != nil {
		dir = Rotate(dir, s.Noise.At(env.Time, float64(a.ID))*dt)
	}

	// flee the pointer
	diff := a.Pos.Sub(env.Pointer)
	if d := diff.Len(); d < b.AvoidRadius && b.Avoidance != nil {
		push := Normalize(diff, Vec2{}).Mul(b.Avoidance(d, b.AvoidRadius))
		dir = Normalize(dir.Add(push), a.Dir)
	}

	// head back inside the boundary
	if !env.Bounds.Contains(a.Pos) {
		back := Normalize(env.Bounds.Center().Sub(a.Pos), Vec2{}).Mul(b.Containment)
		dir = Normalize(dir.Add(back), a.Dir)
	}

	// look for other agents ahead
	var k int
	var hit bool
	k, hit, near = s.Scan(a.ID, a.Pos, dir, prev, order, near)
	if hit {
		dir = Rotate(dir, b.Turn(k)*dt)
	}
	a.Sense = Sense{Hit: hit, Ray: k}

	// correct drift, then move
	a.Dir = Normalize(dir, Normalize(a.Dir, Vec2{1, 0}))
	a.Pos = a.Pos.Add(a.Dir.Mul(a.Speed * dt))
	return near
}
