package ants

// A Color is an RGBA color with components between 0 and 1.
type Color [4]float32

// Over returns c composited over the opaque color dst, using the alpha of c.
func (c Color) Over(dst Color) Color {
	a := c[3]
	return Color{
		c[0]*a + dst[0]*(1-a),
		c[1]*a + dst[1]*(1-a),
		c[2]*a + dst[2]*(1-a),
		1,
	}
}

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// A Triangle is a filled triangle defined in local coordinates,
// rotated by Rotation radians then translated to Pos.
type Triangle struct {
	Pos      Vec2
	Rotation float64
	Vertices [3]Vec2
}

// World returns the vertices of t in world coordinates.
func (t Triangle) World() [3]Vec2 {
	var w [3]Vec2
	for i, v := range t.Vertices {
		w[i] = Rotate(v, t.Rotation).Add(t.Pos)
	}
	return w
}

// A Sink receives the drawing primitives of a frame, in world coordinates.
// Primitives are received in drawing order.
type Sink interface {
	// Background fills the whole frame with an opaque color.
	Background(c Color)

	// Overlay blends a translucent rectangle over what was previously drawn.
	Overlay(r Rect, c Color)

	// Triangle draws a filled triangle.
	Triangle(t Triangle, c Color)

	// Line draws a line segment.
	Line(a, b Vec2, c Color)

	// Circle draws the outline of a circle.
	Circle(center Vec2, radius float64, c Color)
}

// Discard is a Sink on which all draw calls succeed without doing anything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Background(Color)            {}
func (discard) Overlay(Rect, Color)         {}
func (discard) Triangle(Triangle, Color)    {}
func (discard) Line(Vec2, Vec2, Color)      {}
func (discard) Circle(Vec2, float64, Color) {}

// Display properties.
var (
	BackgroundColor = Color{0.70, 0.36, 0.33, 1}
	AgentColor      = Color{1, 1, 1, 1}
	RayColor        = Color{1, 1, 1, 0.15}
	HitColor        = Color{1, 0.85, 0.2, 0.8}
	ColliderColor   = Color{0.2, 0.9, 1, 0.8}
)

// TrailAlpha is the opacity of the background laid over the previous frame
// when trails are enabled.
const TrailAlpha = 0.02

// agentScale is the size of the agent shape relative to its reference outline.
const agentScale = 0.05

// AgentShape is the outline of an agent heading along the x axis: tip forward,
// two back corners.
var AgentShape = [3]Vec2{
	{-50 * agentScale, 33 * agentScale},
	{50 * agentScale, 0},
	{-50 * agentScale, -33 * agentScale},
}

// DrawOptions control how a frame is drawn.
type DrawOptions struct {
	Opaque bool // redraw the background fully opaque
	Trails bool // otherwise fade the previous frame out
	Debug  bool // draw sensing rays and colliders
}

// Draw emits the primitives of a frame showing swarm to sink.
func Draw(sink Sink, swarm []Agent, b *Behavior, bounds Rect, opt DrawOptions) {
	if opt.Opaque || !opt.Trails {
		sink.Background(BackgroundColor)
	} else {
		sink.Overlay(bounds, BackgroundColor.WithAlpha(TrailAlpha))
	}

	for _, a := range swarm {
		sink.Triangle(Triangle{Pos: a.Pos, Rotation: Angle(a.Dir), Vertices: AgentShape}, AgentColor)
	}

	if !opt.Debug {
		return
	}
	order := RayOrder(b.Steps)
	for _, a := range swarm {
		for _, k := range order {
			c := RayColor
			if a.Sense.Hit && a.Sense.Ray == k {
				c = HitColor
			}
			ray := b.Ray(a.Pos, a.Dir, k)
			sink.Line(ray.A, ray.B, c)
		}
		sink.Circle(a.Pos, b.Collider, ColliderColor)
	}
}
