package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "s", Value: "v"}, String("s", "v"))
	assert.Equal(t, Field{Key: "i", Value: 3}, Int("i", 3))
	assert.Equal(t, Field{Key: "f", Value: 0.5}, Float64("f", 0.5))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "d", Value: time.Second}, Duration("d", time.Second))
	assert.Equal(t, "error", Err(nil).Key)
	assert.Equal(t, "<nil>", Err(nil).Value)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestNewLogger_Defaults(t *testing.T) {
	l, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, l)
	// Must not panic on any level.
	l.Debug("d")
	l.Info("i", String("k", "v"))
	l.Warn("w", Int("n", 1))
	l.Error("e", Err(nil))
}

func TestObservedFieldsAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core)

	child := l.With(String("session_id", "abc")).Named("conversation")
	child.Info("turn processed", Int("stage", 4))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "turn processed", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "abc", ctx["session_id"])
	assert.Equal(t, int64(4), ctx["stage"])
	assert.Equal(t, "conversation", entries[0].LoggerName)
}

func TestNopLoggerAndDefault(t *testing.T) {
	nop := NewNopLogger()
	nop.Info("ignored")
	assert.NotNil(t, Default())

	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(NewLoggerFromCore(core))
	Default().Info("via default")
	assert.Equal(t, 1, logs.Len())

	// nil is rejected, previous default kept.
	SetDefault(nil)
	Default().Info("again")
	assert.Equal(t, 2, logs.Len())

	SetDefault(nop)
}
