package ants

// Bounds of the simulation speed when adjusted interactively.
const (
	MinSpeed = 0.1
	MaxSpeed = 3.0
)

// Settings are the parameters that can be changed while the simulation runs.
type Settings struct {
	Speed  float64 // time dilation factor
	Trails bool    // fade previous frames out instead of clearing them
	Debug  bool    // draw sensing rays and colliders
	Paused bool    // stop advancing the simulation
}

// DefaultSettings returns the settings of a new run.
func DefaultSettings() Settings {
	return Settings{Speed: 1, Trails: true}
}

// SetSpeed sets the simulation speed, clamped to [MinSpeed, MaxSpeed].
func (s *Settings) SetSpeed(v float64) {
	s.Speed = clamp(v, MinSpeed, MaxSpeed)
}

// A Frame is what the frame clock delivers for each tick.
type Frame struct {
	Elapsed float64 // wall time since the previous tick, in seconds
	Time    float64 // wall time since start, in seconds
	Pointer Vec2    // pointer position in world coordinates
	Bounds  Rect    // visible area in world coordinates
}

// A Clock delivers frames.
type Clock interface {
	Frame() Frame
}

// A Loop sequences simulation steps and drawing, one tick per frame.
type Loop struct {
	Sim      *Simulation
	Settings *Settings

	frames  int     // number of ticks so far
	opaque  bool    // next frame must be drawn opaque
	advance bool    // run one step even if paused
	fps     float64 // smoothed frame rate
}

// NewLoop returns a loop driving s with the given settings.
func NewLoop(s *Simulation, set *Settings) *Loop {
	return &Loop{Sim: s, Settings: set}
}

// Tick runs one step of the simulation using frame f and draws the result to sink.
func (l *Loop) Tick(f Frame, sink Sink) {
	set := *l.Settings
	speed := clamp(set.Speed, MinSpeed, MaxSpeed)

	l.Sim.Env.Time = f.Time
	l.Sim.Env.Pointer = f.Pointer
	l.Sim.Env.Bounds = f.Bounds
	if !set.Paused || l.advance {
		l.Sim.Env.Dt = f.Elapsed * speed
		l.Sim.Step()
		l.advance = false
	}

	Draw(sink, l.Sim.Swarm, &l.Sim.Behavior, f.Bounds, DrawOptions{
		Opaque: l.frames == 0 || l.opaque,
		Trails: set.Trails,
		Debug:  set.Debug,
	})
	l.opaque = false
	l.frames++

	// exponential moving average of the frame rate
	if f.Elapsed > 0 {
		const k = 0.05
		fps := 1 / f.Elapsed
		if l.fps == 0 {
			l.fps = fps
		} else {
			l.fps += k * (fps - l.fps)
		}
	}
}

// Advance makes the next tick run a step even if the simulation is paused.
func (l *Loop) Advance() {
	l.advance = true
}

// Redraw makes the next tick draw the background fully opaque,
// e.g. after the drawing surface was resized.
func (l *Loop) Redraw() {
	l.opaque = true
}

// Frames returns the number of ticks run so far.
func (l *Loop) Frames() int {
	return l.frames
}

// FPS returns the smoothed frame rate.
func (l *Loop) FPS() float64 {
	return l.fps
}
