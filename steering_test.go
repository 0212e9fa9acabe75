package ants

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// far is a pointer position no agent ever gets close to.
var far = Vec2{1e6, 1e6}

// newTestSim returns a simulation of swarm with reference behavior and no wandering.
func newTestSim(swarm []Agent, bounds Rect, dt float64) *Simulation {
	return &Simulation{
		Swarm:    swarm,
		Env:      Environment{Dt: dt, Pointer: far, Bounds: bounds},
		Behavior: DefaultBehavior(),
		Noise:    Silent{},
	}
}

func TestRayOrder(t *testing.T) {
	assert.Equal(t, []int{0}, RayOrder(0))
	assert.Equal(t, []int{0, -1, 1, -2, 2}, RayOrder(2))
	assert.Equal(t, []int{0}, RayOrder(-3))

	order := RayOrder(10)
	require.Len(t, order, 21)
	for i := 1; i < len(order); i++ {
		a, b := order[i-1], order[i]
		assert.True(t, abs(a) < abs(b) || (abs(a) == abs(b) && a < 0 && b > 0), "%d before %d", a, b)
	}
}

func TestRay(t *testing.T) {
	b := DefaultBehavior()
	assert.InDelta(t, math.Pi/80, b.Cone(), 1e-12)

	r := b.Ray(Vec2{1, 2}, Vec2{1, 0}, 0)
	assert.Equal(t, Vec2{1, 2}, r.A)
	assert.InDelta(t, 51, r.B[0], 1e-9)
	assert.InDelta(t, 2, r.B[1], 1e-9)

	// positive offsets are counter-clockwise
	r = b.Ray(Vec2{}, Vec2{1, 0}, 10)
	assert.InDelta(t, math.Pi/8, Angle(r.B), 1e-9)
	assert.InDelta(t, 50, r.B.Len(), 1e-9)
}

func TestTurn(t *testing.T) {
	b := DefaultBehavior()
	cone := b.Cone()

	assert.InDelta(t, -2*cone*55, b.Turn(2), 1e-12)
	assert.InDelta(t, 2*cone*55, b.Turn(-2), 1e-12)
	assert.InDelta(t, -cone/2*55, b.Turn(0), 1e-12)

	b.MaxTurn = 1
	assert.Equal(t, -1.0, b.Turn(10))
	assert.Equal(t, 1.0, b.Turn(-10))

	// a negative gain turns toward the hit ray
	b = DefaultBehavior()
	b.TurnGain = -55
	assert.InDelta(t, 2*cone*55, b.Turn(2), 1e-12)
	assert.InDelta(t, -2*cone*55, b.Turn(-2), 1e-12)
}

func TestAvoidance(t *testing.T) {
	lin := LinearAvoidance(5)
	assert.Equal(t, 50.0, lin(10, 100))
	assert.Equal(t, 0.0, lin(0, 100))

	inv := InverseAvoidance(2)
	assert.Equal(t, 2.0, inv(0, 100))
	assert.Equal(t, 1.0, inv(50, 100))
	assert.Equal(t, 0.0, inv(10, 0))
}

func TestScanPriority(t *testing.T) {
	s := newTestSim(nil, Centered(1000, 1000), 0.01)
	s.Behavior.Collider = 0.5
	cone := s.Behavior.Cone()

	// a single agent lying on ray +2 only
	sin, cos := math.Sincos(2 * cone)
	prev := []Agent{
		{ID: 0, Pos: Vec2{0, 0}, Dir: Vec2{1, 0}},
		{ID: 1, Pos: Vec2{40 * cos, 40 * sin}, Dir: Vec2{1, 0}},
	}
	order := RayOrder(s.Behavior.Steps)

	for _, k := range []int{0, 1, 3, -2} {
		ray := s.Behavior.Ray(Vec2{}, Vec2{1, 0}, k)
		require.Greater(t, ray.DistToPoint(prev[1].Pos), s.Behavior.Collider, "ray %d", k)
	}

	k, hit, _ := s.Scan(0, prev[0].Pos, prev[0].Dir, prev, order, nil)
	assert.True(t, hit)
	assert.Equal(t, 2, k)

	// mirrored, the agent lies on ray -2
	prev[1].Pos[1] = -prev[1].Pos[1]
	k, hit, _ = s.Scan(0, prev[0].Pos, prev[0].Dir, prev, order, nil)
	assert.True(t, hit)
	assert.Equal(t, -2, k)
}

func TestScanPrefersRight(t *testing.T) {
	s := newTestSim(nil, Centered(1000, 1000), 0.01)
	s.Behavior.Collider = 0.5
	cone := s.Behavior.Cone()

	// agents on rays +1 and -1: the right one (-1) is tested first
	sin, cos := math.Sincos(cone)
	prev := []Agent{
		{ID: 0, Pos: Vec2{0, 0}, Dir: Vec2{1, 0}},
		{ID: 1, Pos: Vec2{40 * cos, 40 * sin}},
		{ID: 2, Pos: Vec2{40 * cos, -40 * sin}},
	}
	k, hit, _ := s.Scan(0, prev[0].Pos, prev[0].Dir, prev, RayOrder(s.Behavior.Steps), nil)
	assert.True(t, hit)
	assert.Equal(t, -1, k)
}

func TestScanOutOfReach(t *testing.T) {
	s := newTestSim(nil, Centered(1000, 1000), 0.01)

	// right ahead, but farther than the ray length
	prev := []Agent{
		{ID: 0, Pos: Vec2{0, 0}, Dir: Vec2{1, 0}},
		{ID: 1, Pos: Vec2{51, 0}},
	}
	_, hit, _ := s.Scan(0, prev[0].Pos, prev[0].Dir, prev, RayOrder(s.Behavior.Steps), nil)
	assert.False(t, hit)

	// behind
	prev[1].Pos = Vec2{-10, 0}
	_, hit, _ = s.Scan(0, prev[0].Pos, prev[0].Dir, prev, RayOrder(s.Behavior.Steps), nil)
	assert.False(t, hit)
}

func TestSelfExclusion(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	bounds := Centered(400, 400)
	s := newTestSim(Populate(1, bounds, rng), bounds, 1.0/60)
	s.Noise = NewPerlin(9)

	for i := 0; i < 500; i++ {
		s.Env.Time = float64(i) / 60
		s.Step()
		require.False(t, s.Swarm[0].Sense.Hit, "tick %d", i)
	}

	// another agent at the very same spot is seen, so exclusion is by id
	a := Agent{ID: 0, Pos: Vec2{0, 0}, Dir: Vec2{1, 0}, Speed: 50}
	b := a
	b.ID = 1
	s = newTestSim([]Agent{a, b}, bounds, 1.0/60)
	s.Step()
	assert.True(t, s.Swarm[0].Sense.Hit)
	assert.True(t, s.Swarm[1].Sense.Hit)
}

func TestHeadOn(t *testing.T) {
	s := newTestSim([]Agent{
		{ID: 0, Pos: Vec2{-10, 0}, Dir: Vec2{1, 0}, Speed: 50},
		{ID: 1, Pos: Vec2{10, 0}, Dir: Vec2{-1, 0}, Speed: 50},
	}, Centered(10000, 10000), 1.0/60)
	s.Step()

	a, b := s.Swarm[0], s.Swarm[1]
	for _, x := range []Agent{a, b} {
		assert.True(t, x.Sense.Hit, "agent %d", x.ID)
		assert.Equal(t, 0, x.Sense.Ray, "agent %d", x.ID)
		assert.InDelta(t, 1, x.Dir.Len(), 1e-9)
	}

	// both veer right, away from each other
	assert.Less(t, a.Dir[1], 0.0)
	assert.Greater(t, b.Dir[1], 0.0)
	assert.Less(t, a.Pos[1], 0.0)
	assert.Greater(t, b.Pos[1], 0.0)

	// and keep turning until their paths no longer cross
	for i := 0; i < 120; i++ {
		s.Step()
		require.NoError(t, s.Check())
	}
	assert.Greater(t, Dist(s.Swarm[0].Pos, s.Swarm[1].Pos), 2*s.Behavior.Collider)
}

func TestUnitDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	bounds := Centered(300, 300)
	s := newTestSim(Populate(500, bounds, rng), bounds, 1.0/30)
	s.Noise = NewPerlin(2)
	s.Env.Pointer = Vec2{0, 0}

	for i := 0; i < 100; i++ {
		s.Env.Time = float64(i) / 30
		s.Step()
		require.NoError(t, s.Check(), "tick %d", i)
	}
	assert.Greater(t, s.Hits(), 0)
}

func TestPointerOnAgent(t *testing.T) {
	s := newTestSim([]Agent{{ID: 0, Pos: Vec2{5, 5}, Dir: Vec2{0, 1}, Speed: 10}}, Centered(100, 100), 0.1)
	s.Env.Pointer = Vec2{5, 5}
	s.Step()
	require.NoError(t, s.Check())
	assert.InDelta(t, 0, s.Swarm[0].Dir[0], 1e-12)
	assert.InDelta(t, 1, s.Swarm[0].Dir[1], 1e-12)
}

func TestPointerAvoidance(t *testing.T) {
	for name, avoid := range map[string]func(d, r float64) float64{
		"linear":  LinearAvoidance(5),
		"inverse": InverseAvoidance(5),
	} {
		t.Run(name, func(t *testing.T) {
			s := newTestSim([]Agent{{ID: 0, Pos: Vec2{20, 0}, Dir: Vec2{-1, 0}, Speed: 10}}, Centered(500, 500), 0.1)
			s.Behavior.Avoidance = avoid
			s.Env.Pointer = Vec2{0, 0}
			s.Step()
			// pushed back, away from the pointer
			assert.Greater(t, s.Swarm[0].Dir[0], 0.0)
			assert.Greater(t, s.Swarm[0].Pos[0], 20.0)
		})
	}
}

func TestOrderIndependence(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	bounds := Centered(200, 200)
	swarm := Populate(300, bounds, rng)

	a := newTestSim(append([]Agent(nil), swarm...), bounds, 1.0/60)
	a.Noise = NewPerlin(3)

	shuffled := append([]Agent(nil), swarm...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	b := newTestSim(shuffled, bounds, 1.0/60)
	b.Noise = NewPerlin(3)

	for i := 0; i < 20; i++ {
		a.Env.Time, b.Env.Time = float64(i)/60, float64(i)/60
		a.Step()
		b.Step()
	}
	assert.Greater(t, a.Hits(), 0)

	sort.Slice(b.Swarm, func(i, j int) bool { return b.Swarm[i].ID < b.Swarm[j].ID })
	for i := range a.Swarm {
		assert.InDelta(t, a.Swarm[i].Pos[0], b.Swarm[i].Pos[0], 1e-9)
		assert.InDelta(t, a.Swarm[i].Pos[1], b.Swarm[i].Pos[1], 1e-9)
		assert.InDelta(t, a.Swarm[i].Dir[0], b.Swarm[i].Dir[0], 1e-9)
		assert.InDelta(t, a.Swarm[i].Dir[1], b.Swarm[i].Dir[1], 1e-9)
	}
}

func TestParallelStep(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	bounds := Centered(250, 250)
	swarm := Populate(400, bounds, rng)

	seq := newTestSim(append([]Agent(nil), swarm...), bounds, 1.0/60)
	seq.Noise = NewPerlin(4)
	par := newTestSim(append([]Agent(nil), swarm...), bounds, 1.0/60)
	par.Noise = NewPerlin(4)
	par.Workers = 7

	for i := 0; i < 20; i++ {
		seq.Env.Time, par.Env.Time = float64(i)/60, float64(i)/60
		seq.Step()
		par.Step()
	}
	assert.Equal(t, seq.Swarm, par.Swarm)
}

func TestContainment(t *testing.T) {
	bounds := Centered(800, 800)
	start := Vec2{410, 0}
	s := newTestSim([]Agent{{ID: 0, Pos: start, Dir: Rotate(Vec2{1, 0}, 0.3), Speed: 50}}, bounds, 0.05)

	s.Step()
	// nudged, not clamped
	assert.Greater(t, s.Swarm[0].Pos[0], start[0])
	assert.Greater(t, Angle(s.Swarm[0].Dir), 0.3)

	back := -1
	for i := 1; i < 100; i++ {
		a := s.Swarm[0]
		if a.Dir.Dot(a.Pos.Sub(bounds.Center())) < 0 {
			back = i
			break
		}
		s.Step()
	}
	assert.Greater(t, back, 1, "agent never headed back inside")
}

func TestBoundaryResize(t *testing.T) {
	s := newTestSim([]Agent{{ID: 0, Pos: Vec2{350, 0}, Dir: Vec2{0, 1}, Speed: 10}}, Centered(800, 800), 0.05)

	s.Step()
	assert.InDelta(t, 0, s.Swarm[0].Dir[0], 1e-12)

	s.Env.Bounds = Centered(600, 600)
	s.Step()
	assert.Less(t, s.Swarm[0].Dir[0], 0.0)
}

func TestSnapshotReused(t *testing.T) {
	bounds := Centered(100, 100)
	s := newTestSim(Populate(10, bounds, rand.New(rand.NewSource(1))), bounds, 0.01)
	s.Step()
	p := &s.prev[0]
	s.Step()
	assert.Same(t, p, &s.prev[0])
}

func TestCheck(t *testing.T) {
	s := newTestSim([]Agent{{ID: 3, Dir: Vec2{1, 0}}}, Centered(10, 10), 0.01)
	assert.NoError(t, s.Check())

	s.Swarm[0].Dir = Vec2{2, 0}
	assert.Error(t, s.Check())

	s.Swarm[0].Dir = Vec2{1, 0}
	s.Swarm[0].Pos = Vec2{math.NaN(), 0}
	assert.Error(t, s.Check())
}

// constNoise is a Noise with the same value everywhere.
type constNoise float64

func (n constNoise) At(t, i float64) float64 {
	return float64(n)
}

func TestWander(t *testing.T) {
	const dt = 0.1
	s := newTestSim([]Agent{{ID: 0, Pos: Vec2{0, 0}, Dir: Vec2{1, 0}, Speed: 10}}, Centered(1000, 1000), dt)
	s.Noise = constNoise(0.5)

	s.Step()
	a := s.Swarm[0]
	assert.InDelta(t, 0.5*dt, Angle(a.Dir), 1e-12)
	assert.InDelta(t, 1, a.Dir.Len(), 1e-12)
	assert.InDelta(t, 10*dt*math.Cos(0.5*dt), a.Pos[0], 1e-12)
	assert.InDelta(t, 10*dt*math.Sin(0.5*dt), a.Pos[1], 1e-12)

	s.Noise = constNoise(-1)
	s.Step()
	assert.InDelta(t, -0.5*dt, Angle(s.Swarm[0].Dir), 1e-12)
}

func TestScanAfterSteering(t *testing.T) {
	b := DefaultBehavior()
	cone := b.Cone()
	tests := []struct {
		name string

		// agent 0 state and environment
		pos, dir Vec2
		pointer  Vec2
		noise    Noise
		dt       float64

		// heading of agent 0 once wander, avoidance and containment applied
		heading Vec2
	}{
		{
			name:    "wander",
			pos:     Vec2{0, 0},
			dir:     Vec2{1, 0},
			pointer: far,
			noise:   constNoise(0.5),
			dt:      4 * cone,
			heading: Rotate(Vec2{1, 0}, 2*cone),
		},
		{
			name:    "avoidance",
			pos:     Vec2{0, 0},
			dir:     Vec2{1, 0},
			pointer: Vec2{0, -50},
			noise:   Silent{},
			dt:      0.01,
			heading: Normalize(Vec2{1, 5 * 50}, Vec2{}),
		},
		{
			name:    "containment",
			pos:     Vec2{600, 0},
			dir:     Vec2{0, 1},
			pointer: far,
			noise:   Silent{},
			dt:      0.01,
			heading: Normalize(Vec2{-0.1, 1}, Vec2{}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the other agent lies right ahead of the steered heading only
			other := tt.pos.Add(tt.heading.Mul(40))
			s := newTestSim([]Agent{
				{ID: 0, Pos: tt.pos, Dir: tt.dir, Speed: 10},
				{ID: 1, Pos: other, Dir: tt.heading, Speed: 10},
			}, Centered(1000, 1000), tt.dt)
			s.Env.Pointer = tt.pointer
			s.Noise = tt.noise
			s.Behavior.Collider = 0.5

			k, hit, _ := s.Scan(0, tt.pos, tt.dir, s.Swarm, RayOrder(s.Behavior.Steps), nil)
			require.False(t, hit && k == 0, "the unsteered heading already points at the other agent")

			s.Step()
			a := s.Swarm[0]
			assert.Equal(t, Sense{Hit: true, Ray: 0}, a.Sense)
			want := Angle(tt.heading) + s.Behavior.Turn(0)*tt.dt
			assert.InDelta(t, want, Angle(a.Dir), 1e-9)
		})
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
