// Package overload puts the generator's use() overload block into a stable,
// canonical order.
//
// The generator emits one use() signature per callback type, first without
// a path argument and then with one, in whatever order it happens to walk its
// tables. Reorder sorts each half by Category and refuses to touch a block it
// does not fully understand.
package overload

import (
	"regexp"
	"slices"
	"strings"

	"github.com/tsonic/express-postprocess/dts"
	"github.com/tsonic/express-postprocess/errors"
)

// Error kinds. Every failure wraps exactly one of these.
var (
	ErrStructuralMismatch     = errors.New("structural mismatch")
	ErrUnrecognizedOverload   = errors.New("unrecognized overload")
	ErrDuplicateOverloadGroup = errors.New("duplicate overload group")
	ErrLostOverloads          = errors.New("lost overloads")
	ErrIndentationDrift       = errors.New("indentation drift")
)

var (
	overloadStart = regexp.MustCompile(`^\s*use\(`)
	callbackToken = regexp.MustCompile(`callback:\s*([A-Za-z0-9_]+)`)
)

// pathMarker marks the overloads that take a mount path first.
const pathMarker = "use(path:"

// Report describes what Reorder found and did.
type Report struct {
	Found    bool // an overload block exists
	Start    int  // 0-based index of the block's first line
	Lines    int  // lines in the block
	Pathless int
	Pathful  int
	Moved    bool // the canonical order differed from the input order
}

// line is a block line together with its index in the document.
type line struct {
	index int
	text  string
}

// Classify returns the callback category a use() overload line refers to.
func Classify(text string) (Category, bool) {
	m := callbackToken.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return ParseCategory(m[1])
}

// FindBlock returns the half-open range [start, end) of the first contiguous
// run of use( lines, or (-1, -1) when the document has none.
func FindBlock(doc *dts.Document) (start, end int) {
	start = -1
	for i := 0; i < doc.Len(); i++ {
		if overloadStart.MatchString(doc.Line(i)) {
			start = i
			break
		}
	}
	if start < 0 {
		return -1, -1
	}
	end = start + 1
	for end < doc.Len() && overloadStart.MatchString(doc.Line(end)) {
		end++
	}
	return start, end
}

// Reorder rewrites the first use() overload block of doc into canonical
// order: pathless overloads before pathful ones, each half sorted by
// Category. A document without a block is left alone. On any error the
// document is not modified.
func Reorder(doc *dts.Document) (*Report, error) {
	start, end := FindBlock(doc)
	if start < 0 {
		return &Report{}, nil
	}

	segment := make([]line, 0, end-start)
	for i := start; i < end; i++ {
		segment = append(segment, line{index: i, text: doc.Line(i)})
	}

	var pathless, pathful []line
	for _, l := range segment {
		if strings.Contains(l.text, pathMarker) {
			pathful = append(pathful, l)
		} else {
			pathless = append(pathless, l)
		}
	}
	if len(pathless)+len(pathful) != len(segment) {
		return nil, errors.Wrapf(ErrStructuralMismatch,
			"unexpected use() overload layout in %s (%d pathless + %d pathful != %d lines)",
			doc.Path(), len(pathless), len(pathful), len(segment))
	}

	indent := dts.LeadingWhitespace(segment[0].text)

	sortedPathless, err := sortGroup(doc.Path(), "pathless", pathless)
	if err != nil {
		return nil, err
	}
	sortedPathful, err := sortGroup(doc.Path(), "pathful", pathful)
	if err != nil {
		return nil, err
	}

	reordered := make([]string, 0, len(segment))
	for _, l := range sortedPathless {
		reordered = append(reordered, l.text)
	}
	for _, l := range sortedPathful {
		reordered = append(reordered, l.text)
	}

	if len(reordered) != len(segment) {
		return nil, errors.Wrapf(ErrLostOverloads,
			"reordering use() in %s produced %d lines from %d", doc.Path(), len(reordered), len(segment))
	}
	for i, text := range reordered {
		if dts.LeadingWhitespace(text) != indent {
			err := errors.Wrapf(ErrIndentationDrift,
				"use() overload %d of the block in %s does not start with the block indentation %q",
				i+1, doc.Path(), indent)
			return nil, errors.WithDetail(err, text)
		}
	}

	original := make([]string, len(segment))
	for i, l := range segment {
		original[i] = l.text
	}

	if err := doc.Splice(start, len(segment), reordered); err != nil {
		return nil, err
	}

	return &Report{
		Found:    true,
		Start:    start,
		Lines:    len(segment),
		Pathless: len(pathless),
		Pathful:  len(pathful),
		Moved:    !slices.Equal(original, reordered),
	}, nil
}

// sortGroup buckets one partition into one slot per category and emits the
// filled slots in canonical order.
func sortGroup(path, partition string, group []line) ([]line, error) {
	var slots [numCategories][]line
	for _, l := range group {
		c, ok := Classify(l.text)
		if !ok {
			err := errors.Wrapf(ErrUnrecognizedOverload, "%s line %d", path, l.index+1)
			err = errors.WithDetail(err, strings.TrimSpace(l.text))
			return nil, errors.WithHint(err,
				"the generator emitted a use() callback type that is not in overload.Category")
		}
		slots[c] = append(slots[c], l)
	}

	out := make([]line, 0, len(group))
	for _, c := range Categories() {
		items := slots[c]
		switch len(items) {
		case 0:
			continue
		case 1:
			out = append(out, items[0])
		default:
			err := errors.Wrapf(ErrDuplicateOverloadGroup,
				"%s overload group '%s' in %s (expected 1, got %d)", partition, c, path, len(items))
			for _, l := range items {
				err = errors.WithDetailf(err, "line %d: %s", l.index+1, strings.TrimSpace(l.text))
			}
			return nil, err
		}
	}
	return out, nil
}
