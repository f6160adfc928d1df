package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("ruidoso"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}

func TestNew_JSONConServicio(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "tienda-api", Output: &buf})

	l.Debug().Msg("no se escribe")
	cl := l.Component("ledger")
	cl.Info().Int("delta", -3).Msg("stock actualizado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "tienda-api", line["service"])
	assert.Equal(t, "ledger", line["component"])
	assert.Equal(t, float64(-3), line["delta"])
	assert.Equal(t, "stock actualizado", line["message"])
}
