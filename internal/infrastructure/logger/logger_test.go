package logger

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLogger_WritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "info", "node-1")

	l.Infof("user %s connected", "u1")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "user u1 connected", line["message"])
	assert.Equal(t, "node-1", line["instance"])
}

func TestZeroLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "warn", "")

	l.Debugf("hidden")
	l.Infof("hidden")
	assert.Zero(t, buf.Len())

	l.Errorf("shown")
	assert.Contains(t, buf.String(), "shown")
}
