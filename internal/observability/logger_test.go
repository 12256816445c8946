package observability

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	log, err := NewLogger("debug", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.Logger.GetLevel())

	log.WithField("document", "alice.txt").Debug("document loaded")
	assert.Contains(t, buf.String(), "document loaded")
	assert.Contains(t, buf.String(), "document=alice.txt")
	assert.Contains(t, buf.String(), "service=cv-ranker")
}

func TestNewLogger_DefaultLevel(t *testing.T) {
	var buf bytes.Buffer

	log, err := NewLogger("", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.Logger.GetLevel())

	log.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger("loud", nil)
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.NotPanics(t, func() { log.Error("dropped") })
}
