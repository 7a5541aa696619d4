// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"go.trai.ch/depot/internal/adapters/telemetry"
	"go.trai.ch/depot/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface on top of a
// progrock tape.
type Recorder struct {
	w    progrock.Writer
	rec  *progrock.Recorder
	stop func()
}

// New creates telemetry rendering to stderr. When stderr is not a
// terminal the no-op implementation is returned instead.
func New() ports.Telemetry {
	return ForOutput(os.Stderr)
}

// ForOutput returns telemetry for the given output: a tape recorder
// with a live renderer when out is a terminal, the no-op implementation
// otherwise.
func ForOutput(out *os.File) ports.Telemetry {
	if !isatty.IsTerminal(out.Fd()) {
		return telemetry.NewNoOp()
	}

	tape := progrock.NewTape()
	r := NewRecorder(tape)
	r.stop = progrock.DefaultUI().RenderLoop(func() {}, tape, out, true)
	return r
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	rec := progrock.NewRecorder(w)
	return &Recorder{
		w:   w,
		rec: rec,
	}
}

// Record starts recording a new vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes the recording session and stops the renderer.
func (r *Recorder) Close() error {
	var err error
	if c, ok := r.w.(interface{ Close() error }); ok {
		err = c.Close()
	}
	if r.stop != nil {
		r.stop()
	}
	return err
}
