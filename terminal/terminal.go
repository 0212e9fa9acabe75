// Package terminal runs interactive simulations in a text terminal.
package terminal

import (
	"fmt"
	"time"

	"github.com/PrincetonUniversity/ants"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// Config contains the parameters of the terminal frontend.
type Config struct {
	Title     string
	FrameRate int // frames per second

	// Reset, if not nil, is called with the size of the world
	// when the user asks for a new swarm.
	Reset func(w, h float64)
}

// offscreen is the pointer position until the mouse is first seen.
var offscreen = ants.Vec2{1e9, 1e9}

// Run runs an interactive simulation in the terminal until the user quits.
func Run(l *ants.Loop, conf *Config) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "terminal: cannot create screen")
	}
	if err := s.Init(); err != nil {
		return errors.Wrap(err, "terminal: cannot initialize screen")
	}
	defer s.Fini()
	s.EnableMouse(tcell.MouseMotionEvents)
	s.HideCursor()

	rate := conf.FrameRate
	if rate <= 0 {
		rate = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pump(s, events, done)

	f := newFrontend(s, l, conf, time.Now())
	for {
		select {
		case ev, ok := <-events:
			if !ok || !f.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			f.tick(now)
		}
	}
}

// pump forwards the events of s to events until s is finalized or done is closed.
// events is closed on return.
func pump(s tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// frontend holds the state of a terminal session.
type frontend struct {
	screen  tcell.Screen
	loop    *ants.Loop
	conf    *Config
	canvas  *Canvas
	pointer ants.Vec2

	start, last time.Time
}

func newFrontend(s tcell.Screen, l *ants.Loop, conf *Config, now time.Time) *frontend {
	f := &frontend{
		screen:  s,
		loop:    l,
		conf:    conf,
		pointer: offscreen,
		start:   now,
		last:    now,
	}
	w, h := s.Size()
	f.canvas = NewCanvas(w, h-1) // last row is the status line
	return f
}

// frame returns the frame of a tick happening at now.
func (f *frontend) frame(now time.Time) ants.Frame {
	elapsed := now.Sub(f.last).Seconds()
	f.last = now
	return ants.Frame{
		Elapsed: elapsed,
		Time:    now.Sub(f.start).Seconds(),
		Pointer: f.pointer,
		Bounds:  f.canvas.Bounds(),
	}
}

// tick advances the simulation and refreshes the screen.
func (f *frontend) tick(now time.Time) {
	f.loop.Tick(f.frame(now), f.canvas)
	f.canvas.Show(f.screen)
	f.status()
	f.screen.Show()
}

// status draws the status line below the canvas.
func (f *frontend) status() {
	w, h := f.screen.Size()
	l := f.loop
	line := fmt.Sprintf(" %s | %d agents | %d hits | %.0f fps | speed %.1fx", f.conf.Title, len(l.Sim.Swarm), l.Sim.Hits(), l.FPS(), l.Settings.Speed)
	if l.Settings.Paused {
		line += " | paused"
	}
	st := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range line {
		if x >= w {
			break
		}
		f.screen.SetContent(x, h-1, r, nil, st)
		x++
	}
	for ; x < w; x++ {
		f.screen.SetContent(x, h-1, ' ', nil, st)
	}
}

// handle processes an input event. It returns false when the user quits.
func (f *frontend) handle(ev tcell.Event) bool {
	set := f.loop.Settings
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRight:
			if set.Paused {
				f.loop.Advance()
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				set.Paused = !set.Paused
			case 't':
				set.Trails = !set.Trails
			case 'd':
				set.Debug = !set.Debug
			case '+', '=':
				set.SetSpeed(set.Speed + 0.1)
			case '-':
				set.SetSpeed(set.Speed - 0.1)
			case 'r':
				if f.conf.Reset != nil {
					w, h := f.canvas.Bounds().Size()
					f.conf.Reset(w, h)
					f.loop.Redraw()
				}
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		if _, h := f.canvas.Size(); y < h {
			f.pointer = f.canvas.World(x, y)
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		f.canvas.Resize(w, h-1)
		f.loop.Redraw()
		f.screen.Sync()
	}
	return true
}
