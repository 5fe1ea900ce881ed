package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-finder/logging"
)

func TestJSONLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(logging.Config{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	component := logging.Component(logger, "lookup")
	component.Warn().Str("state", "CA").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "lookup", entry["component"])
	assert.Equal(t, "CA", entry["state"])
	assert.Contains(t, entry, "time")
}

func TestInvalidConfig(t *testing.T) {
	_, err := logging.NewWithWriter(logging.Config{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = logging.NewWithWriter(logging.Config{Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}
