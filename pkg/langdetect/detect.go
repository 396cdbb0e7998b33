// Package langdetect detects the source language of src-block bodies that
// carry no language tag, using go-enry.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no confident detection is possible.
const Unknown = "text"

// candidates are the languages offered to the classifier; a small set
// keeps the confidence signal meaningful for short snippets.
//
//nolint:gochecknoglobals // Read-only candidate list
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Emacs Lisp", "Dockerfile",
}

// Detect returns the detected language tag for a code snippet.
// Returns Unknown when detection fails or confidence is low.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Unknown
	}

	// A shebang is the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(trimmed); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}
	return Unknown
}

// detectByPattern short-circuits on highly indicative prefixes before
// paying for the classifier.
func detectByPattern(trimmed []byte) string {
	s := string(trimmed)
	switch {
	case strings.HasPrefix(s, "package ") && strings.Contains(s, "func "):
		return "go"
	case strings.HasPrefix(s, "#!/bin/sh"), strings.HasPrefix(s, "#!/bin/bash"):
		return "bash"
	case strings.HasPrefix(s, "def ") && strings.Contains(s, ":"):
		return "python"
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") &&
		strings.Contains(s, "\":"):
		return "json"
	case strings.HasPrefix(s, "<!DOCTYPE html"), strings.HasPrefix(s, "<html"):
		return "html"
	case strings.HasPrefix(s, "FROM ") && strings.Contains(s, "\nRUN "):
		return "dockerfile"
	case strings.HasPrefix(s, "(def"), strings.HasPrefix(s, "(setq "):
		return "emacs-lisp"
	}
	return ""
}

// normalize converts go-enry language names to the lowercase tags used in
// src-block headers.
func normalize(lang string) string {
	switch lang {
	case "Emacs Lisp":
		return "emacs-lisp"
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(lang)
	}
}
