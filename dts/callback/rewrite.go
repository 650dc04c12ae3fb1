// Package callback normalizes the return type of the known handler aliases.
//
// The binding generator declares asynchronous handlers as returning the .NET
// Task type. TypeScript callers need Promise<void> there, so Rewrite swaps the
// trailing Task of each known alias and then checks that every known alias
// ended up in the Promise<void> form.
package callback

import (
	"regexp"
	"strings"

	"github.com/tsonic/express-postprocess/dts"
	"github.com/tsonic/express-postprocess/dts/overload"
	"github.com/tsonic/express-postprocess/errors"
)

// ErrIncompleteRewrite means some known alias was not left returning Promise<void>.
var ErrIncompleteRewrite = errors.New("incomplete rewrite")

const (
	// DeferredUnit is the generator's return type for a no-value async computation.
	DeferredUnit = "Task"
	// FutureOfVoid is what DeferredUnit becomes.
	FutureOfVoid = "Promise<void>"
)

// KnownCallbacks are the aliases eligible for rewriting: the promise-returning
// handler categories. Any other alias returning Task is left alone.
var KnownCallbacks = [...]overload.Category{
	overload.RouteHandler,
	overload.RequestHandler,
	overload.ErrorRequestHandler,
}

var deferredAlias = regexp.MustCompile(
	`^(\s*(?:export\s+)?(?:declare\s+)?type\s+)([A-Za-z_$][A-Za-z0-9_$]*)(\s*=\s*\(.*\)\s*=>\s*)` +
		DeferredUnit + `(\s*;?\s*)$`)

var futureAlias = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(KnownCallbacks))
	for _, c := range KnownCallbacks {
		m[c.String()] = regexp.MustCompile(
			`^\s*(?:export\s+)?(?:declare\s+)?type\s+` + regexp.QuoteMeta(c.String()) +
				`\s*=\s*\(.*\)\s*=>\s*` + regexp.QuoteMeta(FutureOfVoid) + `\s*;?\s*$`)
	}
	return m
}()

// Report lists what Rewrite changed.
type Report struct {
	Rewritten []string // known aliases rewritten, in document order
	Skipped   []string // Task-returning aliases that are not known callbacks
	Lines     []int    // 0-based indices of rewritten lines
}

// IsKnown reports whether name is one of KnownCallbacks.
func IsKnown(name string) bool {
	_, ok := futureAlias[name]
	return ok
}

// Rewrite replaces the Task return of every known callback alias with
// Promise<void>. When nothing matches, the document is left alone. When
// something was rewritten, every known alias must end up returning
// Promise<void>; otherwise ErrIncompleteRewrite is returned and the document
// is not modified.
func Rewrite(doc *dts.Document) (*Report, error) {
	report := &Report{}
	lines := doc.Lines()

	for i, text := range lines {
		m := deferredAlias.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := m[2]
		if !IsKnown(name) {
			report.Skipped = append(report.Skipped, name)
			continue
		}
		lines[i] = m[1] + name + m[3] + FutureOfVoid + m[4]
		report.Rewritten = append(report.Rewritten, name)
		report.Lines = append(report.Lines, i)
	}

	if len(report.Rewritten) == 0 {
		return report, nil
	}

	if missing := missingAliases(lines); len(missing) > 0 {
		err := errors.Wrapf(ErrIncompleteRewrite,
			"%s has no %s alias for %s", doc.Path(), FutureOfVoid, strings.Join(missing, ", "))
		return nil, errors.WithHint(err,
			"the generator renamed or reshaped a handler alias; update callback.KnownCallbacks")
	}

	for _, i := range report.Lines {
		doc.SetLine(i, lines[i])
	}
	return report, nil
}

// missingAliases returns the known names with no Promise<void> alias in lines.
func missingAliases(lines []string) []string {
	var missing []string
	for _, c := range KnownCallbacks {
		re := futureAlias[c.String()]
		found := false
		for _, text := range lines {
			if re.MatchString(text) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, c.String())
		}
	}
	return missing
}
