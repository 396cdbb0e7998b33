package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/orgtree/pkg/config"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, []string{"TODO"}, cfg.TodoKeywords)
	assert.Equal(t, []string{"DONE"}, cfg.DoneKeywords)
	assert.Equal(t, -77, cfg.TagsColumn)
	assert.Equal(t, "object", cfg.Granularity)
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.TodoKeywords = []string{"TODO", "NEXT"}
	cfg.TabWidth = 4

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	back, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"TODO", "NEXT"}, back.TodoKeywords)
	assert.Equal(t, 4, back.TabWidth)
}

func TestFromYAMLPartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte("tab-width: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.TabWidth)
	assert.Equal(t, []string{"TODO"}, cfg.TodoKeywords)
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("todo-keywords: {broken\n"))
	assert.Error(t, err)
}

func TestTemplateParses(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(config.Template))
	require.NoError(t, err)
	assert.Equal(t, -77, cfg.TagsColumn)
	assert.Equal(t, 15, cfg.InlinetaskMinLevel)
	assert.Equal(t, "ARCHIVE", cfg.ArchiveTag)
}

func TestSyntaxConversion(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.TodoKeywords = []string{"WIP"}
	cfg.TabWidth = 2

	s := cfg.Syntax()
	assert.Equal(t, []string{"WIP"}, s.TodoKeywords)
	assert.Equal(t, 2, s.TabWidth)
	assert.Equal(t, "ARCHIVE", s.ArchiveTag)
}

func TestLoadDiscovery(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, config.DefaultFileName),
		[]byte("tab-width: 3\n"), 0o644))

	cfg, err := config.Load("", sub)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TabWidth)
}

func TestLoadMissingIsDefault(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.Default().TabWidth, cfg.TabWidth)
}

func TestClone(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	clone := cfg.Clone()
	clone.TodoKeywords[0] = "CHANGED"
	assert.Equal(t, "TODO", cfg.TodoKeywords[0])
}
