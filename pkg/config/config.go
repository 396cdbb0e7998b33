// Package config defines the tool configuration: the grammar knobs the
// parser honors plus CLI behavior, loaded from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/orgtree/pkg/syntax"
)

// DefaultFileName is the configuration file looked up next to the input.
const DefaultFileName = ".orgtree.yaml"

// Config is the serializable tool configuration.
type Config struct {
	// TodoKeywords are the not-done headline keywords.
	TodoKeywords []string `yaml:"todo-keywords,omitempty"`

	// DoneKeywords are the done headline keywords.
	DoneKeywords []string `yaml:"done-keywords,omitempty"`

	// TagsColumn governs headline tag alignment on output.
	TagsColumn int `yaml:"tags-column,omitempty"`

	// InlinetaskMinLevel is the outline depth where inline tasks start.
	InlinetaskMinLevel int `yaml:"inlinetask-min-level,omitempty"`

	// ArchiveTag marks archived subtrees.
	ArchiveTag string `yaml:"archive-tag,omitempty"`

	// FootnoteSection is the dedicated footnote heading title.
	FootnoteSection string `yaml:"footnote-section,omitempty"`

	// TabWidth is the column width of a TAB character.
	TabWidth int `yaml:"tab-width,omitempty"`

	// LinkSchemes are the recognized link protocols.
	LinkSchemes []string `yaml:"link-schemes,omitempty"`

	// Granularity is the default parse depth for the CLI.
	Granularity string `yaml:"granularity,omitempty"`

	// CLI-only fields, never serialized.
	Color string `yaml:"-"`
	Debug bool   `yaml:"-"`
}

// Default returns the stock configuration.
func Default() *Config {
	s := syntax.Default()
	return &Config{
		TodoKeywords:       s.TodoKeywords,
		DoneKeywords:       s.DoneKeywords,
		TagsColumn:         s.TagsColumn,
		InlinetaskMinLevel: s.InlinetaskMinLevel,
		ArchiveTag:         s.ArchiveTag,
		FootnoteSection:    s.FootnoteSectionHeading,
		TabWidth:           s.TabWidth,
		LinkSchemes:        s.LinkSchemes,
		Granularity:        "object",
		Color:              "auto",
	}
}

// Syntax converts the configuration into the parser's grammar knobs,
// filling unset fields from the defaults.
func (c *Config) Syntax() *syntax.Config {
	s := syntax.Default()
	if len(c.TodoKeywords) > 0 {
		s.TodoKeywords = c.TodoKeywords
	}
	if len(c.DoneKeywords) > 0 {
		s.DoneKeywords = c.DoneKeywords
	}
	if c.TagsColumn != 0 {
		s.TagsColumn = c.TagsColumn
	}
	if c.InlinetaskMinLevel > 0 {
		s.InlinetaskMinLevel = c.InlinetaskMinLevel
	}
	if c.ArchiveTag != "" {
		s.ArchiveTag = c.ArchiveTag
	}
	if c.FootnoteSection != "" {
		s.FootnoteSectionHeading = c.FootnoteSection
	}
	if c.TabWidth > 0 {
		s.TabWidth = c.TabWidth
	}
	if len(c.LinkSchemes) > 0 {
		s.LinkSchemes = c.LinkSchemes
	}
	return s
}

// Load reads the configuration from path. An empty path searches for
// DefaultFileName in dir and its ancestors; not finding one is not an
// error and yields the defaults.
func Load(path, dir string) (*Config, error) {
	if path == "" {
		found, ok := discover(dir)
		if !ok {
			return Default(), nil
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// discover walks dir upward looking for DefaultFileName.
func discover(dir string) (string, bool) {
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
