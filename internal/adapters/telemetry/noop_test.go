package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/depot/internal/adapters/telemetry"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

func TestNoOp_RecordCarriesVertexInContext(t *testing.T) {
	noop := telemetry.NewNoOp()

	ctx, vertex := noop.Record(context.Background(), "anything")
	require.NotNil(t, vertex)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("discarded"))
	assert.NoError(t, err)

	vertex.Log(domain.LogLevelInfo, "discarded")
	vertex.Cached()
	vertex.Complete(nil)
	assert.NoError(t, noop.Close())
}
