//go:build !nogl

package opengl

import (
	"fmt"

	"github.com/PrincetonUniversity/ants"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// Run runs an interactive simulation in an OpenGL window.
// It must be called from the main thread.
func Run(l *ants.Loop, conf *Config) error {
	// init GLFW and OpenGL
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "opengl: cannot initialize GLFW")
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	// create OpenGL window
	w, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		return errors.Wrap(err, "opengl: cannot create window")
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "opengl: cannot initialize OpenGL")
	}

	// enable alpha blending
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	// initialize OpenGL objects
	d, err := newDisplay()
	if err != nil {
		return err
	}
	defer d.delete()
	if err := d.resize(w.GetFramebufferSize()); err != nil {
		return err
	}

	// the offscreen frame is lost on resize
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if err := d.resize(width, height); err != nil {
			warn(stderr, err)
		}
		l.Redraw()
	})

	var quit bool
	set := l.Settings
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeyEscape, glfw.KeyQ:
			quit = true
		case glfw.KeySpace:
			set.Paused = !set.Paused
		case glfw.KeyRight:
			if set.Paused {
				l.Advance()
			}
		case glfw.KeyT:
			set.Trails = !set.Trails
		case glfw.KeyD:
			set.Debug = !set.Debug
		case glfw.KeyEqual, glfw.KeyKPAdd:
			set.SetSpeed(set.Speed + 0.1)
		case glfw.KeyMinus, glfw.KeyKPSubtract:
			set.SetSpeed(set.Speed - 0.1)
		case glfw.KeyR:
			if conf.Reset != nil {
				xs, ys := w.GetSize()
				conf.Reset(float64(xs), float64(ys))
				l.Redraw()
			}
		}
	})

	c := &clock{w: w, last: glfw.GetTime()}
	var b Batch
	for !(quit || w.ShouldClose()) {
		f := c.Frame()
		b.Reset()
		l.Tick(f, &b)
		d.draw(&b, f.Bounds)
		w.SwapBuffers()
		glfw.PollEvents()

		if l.Frames()%30 == 0 {
			w.SetTitle(status(conf.Title, l))
		}
	}
	return nil
}

// status returns a one-line summary of the state of the loop.
func status(title string, l *ants.Loop) string {
	s := fmt.Sprintf("%s | %d agents | %.0f fps | speed %.1fx", title, len(l.Sim.Swarm), l.FPS(), l.Settings.Speed)
	if l.Settings.Paused {
		s += " | paused"
	}
	return s
}

// clock is the frame clock of a window.
// World coordinates have their origin at the center of the window, y pointing up,
// one unit per screen coordinate.
type clock struct {
	w    *glfw.Window
	last float64 // time of the previous frame
}

// Frame returns the time elapsed since the previous frame,
// the cursor position and the window bounds.
func (c *clock) Frame() ants.Frame {
	now := glfw.GetTime()
	elapsed := now - c.last
	c.last = now

	xs, ys := c.w.GetSize()
	xc, yc := c.w.GetCursorPos()
	w, h := float64(xs), float64(ys)
	return ants.Frame{
		Elapsed: elapsed,
		Time:    now,
		Pointer: ants.Vec2{xc - w/2, h/2 - yc},
		Bounds:  ants.Centered(w, h),
	}
}

// display contains all the OpenGL objects required to display the simulation.
// Frames are drawn to an offscreen texture which is kept from frame to frame,
// so that translucent overlays fade previous frames out, then copied to the window.
type display struct {
	prog uint32 // shader program
	vao  uint32 // vertex array object
	vbo  uint32 // vertex buffer
	fbo  uint32 // offscreen framebuffer
	tex  uint32 // color attachment of fbo

	width  int32 // framebuffer size in pixels
	height int32

	uni struct {
		vp int32 // viewport
	}
}

// newDisplay compiles shaders and initializes a display.
func newDisplay() (*display, error) {
	d := new(display)

	var err error
	d.prog, err = makeProg([]shader{
		{"Vertex", vertexShader, gl.CreateShader(gl.VERTEX_SHADER)},
		{"Fragment", fragmentShader, gl.CreateShader(gl.FRAGMENT_SHADER)},
	})
	if err != nil {
		return nil, err
	}
	d.uni.vp = gl.GetUniformLocation(d.prog, gl.Str("vp\x00"))

	// attribute locations are specified in the shaders with layout(location=n)
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)

	const n = 4 * stride
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, n, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, n, gl.PtrOffset(4*2))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.GenTextures(1, &d.tex)
	gl.GenFramebuffers(1, &d.fbo)

	return d, nil
}

// resize reallocates the offscreen frame to the given size in pixels.
func (d *display) resize(width, height int) error {
	d.width, d.height = int32(width), int32(height)

	gl.BindTexture(gl.TEXTURE_2D, d.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, d.width, d.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, d.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, d.tex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return errors.Errorf("opengl: incomplete framebuffer (status 0x%x)", status)
	}
	return nil
}

// draw renders a batch to the offscreen frame and copies it to the window.
func (d *display) draw(b *Batch, bounds ants.Rect) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.fbo)
	gl.Viewport(0, 0, d.width, d.height)
	if b.Clear {
		c := b.ClearColor
		gl.ClearColor(c[0], c[1], c[2], c[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}

	vp := [4]float32{
		float32(bounds.Min[0]), float32(bounds.Min[1]),
		float32(bounds.Max[0]), float32(bounds.Max[1]),
	}
	gl.UseProgram(d.prog)
	gl.Uniform2fv(d.uni.vp, 2, &vp[0])
	gl.BindVertexArray(d.vao)
	d.drawArrays(gl.TRIANGLES, b.Tris)
	d.drawArrays(gl.LINES, b.Lines)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, d.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, d.width, d.height, 0, 0, d.width, d.height, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// drawArrays uploads vertices and draws them as primitives of the given mode.
func (d *display) drawArrays(mode uint32, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(len(data)/stride))
}

// delete releases the OpenGL objects of the display.
func (d *display) delete() {
	gl.DeleteFramebuffers(1, &d.fbo)
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.prog)
}

// A shader wraps an OpenGL shader.
type shader struct {
	name   string
	source string
	shader uint32
}

// makeProg builds OpenGL programs.
func makeProg(shaders []shader) (uint32, error) {
	var fail bool
	for _, s := range shaders {
		str, free := gl.Strs(s.source + "\x00")
		gl.ShaderSource(s.shader, 1, str, nil)
		free()
		gl.CompileShader(s.shader)
		var status int32
		gl.GetShaderiv(s.shader, gl.COMPILE_STATUS, &status)
		if status != gl.TRUE {
			fmt.Fprintf(stderr, "### %s shader compilation error ###\n\n%s\n\n", s.name, infoLog(s.shader, gl.GetShaderiv, gl.GetShaderInfoLog))
			fail = true
			gl.DeleteShader(s.shader)
		}
	}
	if fail {
		return 0, errors.New("opengl: GLSL errors")
	}
	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s.shader)
	}
	gl.LinkProgram(prog)
	for _, s := range shaders {
		gl.DeleteShader(s.shader)
	}

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status != gl.TRUE {
		log := infoLog(prog, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(prog)
		return 0, errors.Errorf("opengl: cannot link program: %s", log)
	}
	return prog, nil
}

// infoLog returns the info log of a shader or program.
func infoLog(obj uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var n int32
	getiv(obj, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return ""
	}
	log := make([]uint8, n+1)
	getLog(obj, n, &n, &log[0])
	return gl.GoStr(&log[0])
}
