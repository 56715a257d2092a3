package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("qualquer"))
}

func TestZapLogger_WritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := Wrap(zap.New(core))

	log.Info("Item adicionado.", map[string]interface{}{"item_id": "abc", "quantity": 12.0})
	log.Error("Falha no adaptador.", errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "Item adicionado.", entries[0].Message)
	assert.Equal(t, "abc", entries[0].ContextMap()["item_id"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestZapLogger_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := Wrap(zap.New(core))

	log.Debug("descartado", nil)
	log.Warn("mantido", nil)

	require.Len(t, logs.All(), 1)
	assert.Equal(t, "mantido", logs.All()[0].Message)
}
