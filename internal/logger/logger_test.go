package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNewWithWriter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "info", "json")

	log.Info().Str("file", "card.xlsx").Msg("imported")
	log.Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, `"message":"imported"`)
	assert.Contains(t, out, `"file":"card.xlsx"`)
	assert.NotContains(t, out, "hidden")
}

func TestNewWithWriter_Console(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "debug", "console")

	log.Debug().Msg("scanning sheet")
	assert.Contains(t, buf.String(), "scanning sheet")
	assert.NotContains(t, buf.String(), `"message"`)
}
