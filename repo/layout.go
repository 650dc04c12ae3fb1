// Package repo locates the bindings repository and the files the
// post-processor reads and writes inside it.
package repo

import (
	"path/filepath"
	"regexp"

	"github.com/go-git/go-git/v5"
	"github.com/tsonic/express-postprocess/errors"
)

// Defaults for a bindings checkout.
const (
	DefaultMajor      = "10"
	DefaultManifest   = "tsonic.bindings.json"
	DefaultDescriptor = "../express-clr/src/express/express.csproj"
	ReadmeTemplate    = "README.template.md"
	ReadmeName        = "README.md"
)

var majorPattern = regexp.MustCompile(`^\d+$`)

// ValidMajor reports whether s names a framework major version.
func ValidMajor(s string) bool {
	return majorPattern.MatchString(s)
}

// DetectRoot returns the root of the git work tree enclosing start, or
// start itself when it is not inside a repository.
func DetectRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrapf(err, "cannot resolve %s", start)
	}

	r, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return abs, nil
		}
		return "", errors.Wrapf(err, "failed to open repository at %s", abs)
	}

	wt, err := r.Worktree()
	if err != nil {
		// bare repository
		return abs, nil
	}
	return wt.Filesystem.Root(), nil
}

// Layout resolves paths for one major version of the bindings.
type Layout struct {
	Root       string
	Major      string
	Descriptor string // project descriptor, relative to Root unless absolute
	Manifest   string // manifest file name under versions/<major>
}

// NewLayout returns a layout with the default descriptor and manifest.
func NewLayout(root, major string) Layout {
	return Layout{
		Root:       root,
		Major:      major,
		Descriptor: DefaultDescriptor,
		Manifest:   DefaultManifest,
	}
}

// Validate checks the major version and that the root is set.
func (l Layout) Validate() error {
	if l.Root == "" {
		return errors.New("repository root is not set")
	}
	if !ValidMajor(l.Major) {
		return errors.WithHint(errors.Newf("invalid major version %q", l.Major),
			"the major version is a plain number, e.g. 10")
	}
	return nil
}

// VersionDir is <root>/versions/<major>.
func (l Layout) VersionDir() string {
	return filepath.Join(l.Root, "versions", l.Major)
}

// DeclarationPath is the generated internal index.d.ts.
func (l Layout) DeclarationPath() string {
	return filepath.Join(l.VersionDir(), "index", "internal", "index.d.ts")
}

func (l Layout) ManifestPath() string {
	return filepath.Join(l.VersionDir(), l.Manifest)
}

func (l Layout) DescriptorPath() string {
	if filepath.IsAbs(l.Descriptor) {
		return l.Descriptor
	}
	return filepath.Join(l.Root, l.Descriptor)
}

func (l Layout) TemplatePath() string {
	return filepath.Join(l.Root, ReadmeTemplate)
}

// ReadmeTargets lists the rendered READMEs: the repository front page and
// the per-version copy.
func (l Layout) ReadmeTargets() []string {
	return []string{
		filepath.Join(l.Root, ReadmeName),
		filepath.Join(l.VersionDir(), ReadmeName),
	}
}

// WatchPaths lists the files whose changes should re-run the pipeline.
func (l Layout) WatchPaths() []string {
	return []string{l.DeclarationPath(), l.DescriptorPath()}
}
