package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "practice").Info("submitted", "user_id", "u1")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "submitted", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "practice", fields["component"])
	assert.Equal(t, "u1", fields["user_id"])
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"production", "development", ""} {
		t.Run(mode, func(t *testing.T) {
			l, err := New(mode, false)
			require.NoError(t, err)
			require.NotNil(t, l)
		})
	}
}

func TestNopDoesNotPanic(t *testing.T) {
	l := NewNop()
	l.Debug("a")
	l.Info("b", "k", 1)
	l.Warn("c")
	l.Error("d")
}
