// Package readme renders README.template.md into the repository READMEs.
//
// The template may pull in other files with include directives:
//
//	<!-- include: docs/snippets/10/hello-world-app.ts -->
//
// Each directive is replaced by the named file, relative to the repository
// root, with CRLF line endings normalized and one trailing newline dropped.
package readme

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tsonic/express-postprocess/errors"
	"github.com/tsonic/express-postprocess/repo"
)

// Error kinds.
var (
	ErrReadmeOutOfDate = errors.New("readme out of date")
	ErrMissingInclude  = errors.New("missing include")
)

var includeDirective = regexp.MustCompile(`<!--\s*include:\s*([^>]+?)\s*-->`)

// Render expands every include directive in template.
func Render(template, root string) (string, error) {
	var firstErr error
	out := includeDirective.ReplaceAllStringFunc(template, func(directive string) string {
		if firstErr != nil {
			return directive
		}
		rel := strings.TrimSpace(includeDirective.FindStringSubmatch(directive)[1])
		content, err := readInclude(root, rel)
		if err != nil {
			firstErr = err
			return directive
		}
		return content
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func readInclude(root, rel string) (string, error) {
	path := filepath.Join(root, rel)
	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(errors.Mark(err, ErrMissingInclude), "include %s", rel)
		return "", errors.WithDetailf(err, "resolved to %s", path)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.TrimSuffix(text, "\n"), nil
}

// Target is one rendered README and whether it differed from disk.
type Target struct {
	Path    string
	Changed bool
}

// Sync renders the template of layout into every README target. In check
// mode nothing is written and any stale target fails with
// ErrReadmeOutOfDate. Otherwise only targets whose content differs are
// written.
func Sync(layout repo.Layout, check bool) ([]Target, error) {
	tmpl, err := os.ReadFile(layout.TemplatePath())
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read README template %s", layout.TemplatePath())
	}

	rendered, err := Render(string(tmpl), layout.Root)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", layout.TemplatePath())
	}
	want := []byte(rendered + "\n")

	var targets []Target
	var stale []string
	for _, path := range layout.ReadmeTargets() {
		existing, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return targets, errors.Wrapf(err, "cannot read %s", path)
		}
		changed := err != nil || !bytes.Equal(existing, want)
		targets = append(targets, Target{Path: path, Changed: changed})
		if !changed {
			continue
		}
		if check {
			stale = append(stale, path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return targets, errors.Wrapf(err, "cannot create %s", filepath.Dir(path))
		}
		if err := os.WriteFile(path, want, 0o644); err != nil {
			return targets, errors.Wrapf(err, "failed to write %s", path)
		}
	}

	if len(stale) > 0 {
		err := errors.Wrapf(errors.Mark(ErrReadmeOutOfDate, errors.ErrOutOfDate),
			"%s", strings.Join(stale, ", "))
		return targets, errors.WithHint(err, fmt.Sprintf("Run: postprocess readme %s", layout.Major))
	}
	return targets, nil
}
