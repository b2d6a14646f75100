package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"", "dev", "prod", "quiet"} {
		l, err := New(mode, "")
		require.NoError(t, err, mode)
		require.NotNil(t, l)
	}
	_, err := New("verbose", "")
	assert.Error(t, err)

	_, err = New("dev", "loud")
	assert.Error(t, err)
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With("backend", "sqlite")

	l.Info("attached", "path", ":memory:")
	l.Debug("cascade", "kind", "chapter")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "attached", entries[0].Message)
	assert.Equal(t, "sqlite", entries[0].ContextMap()["backend"])
	assert.Equal(t, ":memory:", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error("ignored", "k", "v")
	l.Sync()
}
