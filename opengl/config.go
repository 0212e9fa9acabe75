// Package opengl runs interactive simulations in an OpenGL window.
package opengl

import (
	"fmt"
	"io"
	"os"

	"github.com/ttacon/chalk"
)

// stderr receives the warnings of the driver.
var stderr io.Writer = os.Stderr

// warn reports a recoverable error to w.
func warn(w io.Writer, err error) {
	fmt.Fprintln(w, chalk.Yellow.Color("Warning: "+err.Error()))
}

// Config holds the parameters of the OpenGL driver.
type Config struct {
	Title  string // window title prefix
	Width  int    // initial window width, in screen coordinates
	Height int    // initial window height, in screen coordinates

	// Reset repopulates the simulation within the given bounds.
	// It is called when the user asks for a new population.
	Reset func(w, h float64)
}
