package main

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// normalizeWhitespaceDiff renders a unified diff between src and its
// trailing-whitespace-normalized form (CRLF collapsed to LF, trailing
// spaces/tabs stripped per line, a single trailing newline enforced). An
// empty string means src was already normalized. Used by ast-check's
// --diff verbose mode as a preview before any fix is applied.
func normalizeWhitespaceDiff(filename string, src []byte) string {
	orig := string(src)
	normalized := normalizeWhitespace(orig)
	if normalized == orig {
		return ""
	}

	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(orig),
		B:        difflib.SplitLines(normalized),
		FromFile: filename,
		ToFile:   filename + " (whitespace-normalized)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "(diff error: " + err.Error() + ")"
	}
	return text
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	out := strings.Join(lines, "\n")
	return strings.TrimRight(out, "\n") + "\n"
}
