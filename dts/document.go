// Package dts models a generated TypeScript declaration file as an ordered
// list of lines.
//
// Rewrite passes edit the lines in place. The file is written back only when
// the final text differs from what was read, so running the passes over an
// already-canonical file never touches it.
package dts

import (
	"os"
	"strings"
	"unicode"

	"github.com/tsonic/express-postprocess/errors"
)

// Document is a declaration file held as lines split on "\n".
type Document struct {
	path     string
	original string
	lines    []string
}

// Parse builds a Document from text already in memory.
func Parse(path, text string) *Document {
	return &Document{
		path:     path,
		original: text,
		lines:    strings.Split(text, "\n"),
	}
}

// Load reads a declaration file from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read declaration file %s", path)
	}
	return Parse(path, string(data)), nil
}

// Path returns the file the document was read from.
func (d *Document) Path() string { return d.path }

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// Line returns line i (0-based).
func (d *Document) Line(i int) string { return d.lines[i] }

// Lines returns a copy of all lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// SetLine replaces line i.
func (d *Document) SetLine(i int, line string) { d.lines[i] = line }

// Splice replaces the n lines starting at start with repl.
func (d *Document) Splice(start, n int, repl []string) error {
	if start < 0 || n < 0 || start+n > len(d.lines) {
		return errors.AssertionFailedf("splice [%d:%d] out of range for %d lines in %s",
			start, start+n, len(d.lines), d.path)
	}
	out := make([]string, 0, len(d.lines)-n+len(repl))
	out = append(out, d.lines[:start]...)
	out = append(out, repl...)
	out = append(out, d.lines[start+n:]...)
	d.lines = out
	return nil
}

// String joins the lines back into file text.
func (d *Document) String() string { return strings.Join(d.lines, "\n") }

// Original returns the text the document was created from.
func (d *Document) Original() string { return d.original }

// Changed reports whether the current text differs from the original.
func (d *Document) Changed() bool { return d.String() != d.original }

// Save writes the document back to its path if it changed, keeping the
// file's mode. It reports whether a write happened.
func (d *Document) Save() (bool, error) {
	if !d.Changed() {
		return false, nil
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(d.path); err == nil {
		mode = info.Mode().Perm()
	}

	text := d.String()
	if err := os.WriteFile(d.path, []byte(text), mode); err != nil {
		return false, errors.Wrapf(err, "failed to write %s", d.path)
	}
	d.original = text
	return true, nil
}

// LeadingWhitespace returns the whitespace prefix of line.
func LeadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}
