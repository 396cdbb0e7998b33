package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/orgtree/pkg/langdetect"
)

func TestDetectGo(t *testing.T) {
	t.Parallel()

	code := []byte("package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n")
	assert.Equal(t, "go", langdetect.Detect(code))
}

func TestDetectShebang(t *testing.T) {
	t.Parallel()

	code := []byte("#!/bin/bash\necho hi\n")
	assert.Equal(t, "bash", langdetect.Detect(code))
}

func TestDetectJSON(t *testing.T) {
	t.Parallel()

	code := []byte(`{"key": "value", "n": 1}`)
	assert.Equal(t, "json", langdetect.Detect(code))
}

func TestDetectEmacsLisp(t *testing.T) {
	t.Parallel()

	code := []byte("(defun greet () (message \"hi\"))\n")
	assert.Equal(t, "emacs-lisp", langdetect.Detect(code))
}

func TestDetectEmptyIsUnknown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, langdetect.Unknown, langdetect.Detect(nil))
	assert.Equal(t, langdetect.Unknown, langdetect.Detect([]byte("   \n")))
}
