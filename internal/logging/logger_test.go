package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewJSONCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug", true)
	require.NoError(t, err)
	log.Info().Str("module", "test").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "hello", entry["message"])
	require.Equal(t, "info", entry["level"])
	_, err = uuid.Parse(entry["run_id"].(string))
	require.NoError(t, err)
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", true)
	require.NoError(t, err)
	log.Info().Msg("dropped")
	require.Zero(t, buf.Len())
	log.Warn().Msg("kept")
	require.Contains(t, buf.String(), "kept")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "", false)
	require.NoError(t, err)
	log.Info().Msg("loaded")
	require.Contains(t, buf.String(), "loaded")
	require.Contains(t, buf.String(), "run_id=")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel(" DEBUG ")
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLevel("chatty")
	require.Error(t, err)
}
