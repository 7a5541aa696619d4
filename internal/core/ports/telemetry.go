package ports

import (
	"context"
	"io"

	"go.trai.ch/depot/internal/core/domain"
)

// Telemetry records units of work (installs, repoints, collection passes)
// as vertices for progress rendering.
type Telemetry interface {
	// Record starts recording a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents a unit of work in flight.
type Vertex interface {
	// Stdout returns a writer to capture standard output stream.
	Stdout() io.Writer

	// Stderr returns a writer to capture error output stream.
	Stderr() io.Writer

	// Log records a structured log message associated with this vertex.
	Log(level domain.LogLevel, msg string)

	// Complete marks the vertex as finished (successfully or with an error).
	Complete(err error)

	// Cached marks the vertex as satisfied without doing the work.
	Cached()
}

type vertexContextKey struct{}

// ContextWithVertex returns a context carrying the vertex.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexContextKey{}, v)
}

// VertexFromContext returns the vertex carried by the context, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexContextKey{}).(Vertex)
	return v, ok
}
