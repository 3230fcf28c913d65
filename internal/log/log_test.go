package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetSugaredLoggerBeforeInit(t *testing.T) {
	log = nil
	assert.NotNil(t, GetSugaredLogger())
	assert.NotNil(t, With("run_id", "abc"))

	// Must not panic on the no-op logger
	Errorf("ignored %d", 1)
	Sync()
}

func TestInitLevels(t *testing.T) {
	defer func() { log = nil }()

	require.NoError(t, Init(false))
	assert.False(t, GetSugaredLogger().Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, GetSugaredLogger().Desugar().Core().Enabled(zapcore.WarnLevel))

	require.NoError(t, Init(true))
	assert.True(t, With("run_id", "abc").Desugar().Core().Enabled(zapcore.DebugLevel))
}
