package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromZap_ReportsCallerOutsideWrapper(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core, zap.AddCaller()))

	l.Info("hello", "k", "v")
	l.With("rid", "r1").Warn("scoped")

	entries := logs.All()
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.True(t, e.Caller.Defined)
		assert.Equal(t, "logger_test.go", filepath.Base(e.Caller.File))
	}
	assert.Equal(t, "v", entries[0].ContextMap()["k"])
	assert.Equal(t, "r1", entries[1].ContextMap()["rid"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored")
	l.With("k", "v").Error("ignored")
	assert.NoError(t, l.Sync())
}
