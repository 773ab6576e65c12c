package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-studio/pkg/logger"
)

func TestNewWithWriter_JSONEnProduccion(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "production", Level: "info"}, &buf)

	l.Debug().Msg("no se emite")
	l.Info().Str("draft_id", "d-1").Msg("factura exportada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "d-1", entry["draft_id"])
	assert.Equal(t, "factura exportada", entry["message"])
}

func TestNewWithWriter_ConsolaEnDesarrollo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "development", Level: "debug"}, &buf)

	l.Debug().Msg("hola")
	assert.Contains(t, buf.String(), "hola")
	assert.NotContains(t, buf.String(), `"message"`)
}
