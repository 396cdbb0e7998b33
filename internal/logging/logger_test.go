package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/orgtree/internal/logging"
)

func TestNewWriterRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestLevelParsing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "nonsense")
	logger.Debug("quiet")
	logger.Info("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
}

func TestDefaultIsSingleton(t *testing.T) {
	t.Parallel()

	assert.Same(t, logging.Default(), logging.Default())
}

func TestFieldsAreStable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "error", logging.FieldError)
	assert.Equal(t, "path", logging.FieldPath)
	assert.Equal(t, "granularity", logging.FieldGranularity)
}
