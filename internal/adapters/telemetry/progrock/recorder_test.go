package progrock_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/depot/internal/adapters/telemetry"
	telemetryprogrock "go.trai.ch/depot/internal/adapters/telemetry/progrock"
)

func TestNew(t *testing.T) {
	recorder := telemetryprogrock.New()
	require.NotNil(t, recorder)
	assert.NoError(t, recorder.Close())
}

func TestForOutput_NonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	// Piped or redirected output gets the no-op implementation instead
	// of a terminal renderer.
	tel := telemetryprogrock.ForOutput(f)
	assert.IsType(t, &telemetry.NoOp{}, tel)
}
