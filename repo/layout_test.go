package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(t *testing.T, path string) string {
	t.Helper()
	p, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return p
}

func TestValidMajor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"10", true},
		{"9", true},
		{"", false},
		{"v10", false},
		{"10.0", false},
		{"--check", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidMajor(tt.in))
		})
	}
}

func TestDetectRoot_FindsWorkTree(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	nested := filepath.Join(root, "versions", "10", "index")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := DetectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, resolved(t, root), resolved(t, got))
}

func TestDetectRoot_FallsBackToStart(t *testing.T) {
	dir := t.TempDir()

	got, err := DetectRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved(t, dir), resolved(t, got))
}

func TestLayoutPaths(t *testing.T) {
	l := NewLayout("/work/express", "10")

	assert.Equal(t, "/work/express/versions/10/index/internal/index.d.ts", l.DeclarationPath())
	assert.Equal(t, "/work/express/versions/10/tsonic.bindings.json", l.ManifestPath())
	assert.Equal(t, "/work/express-clr/src/express/express.csproj", l.DescriptorPath())
	assert.Equal(t, "/work/express/README.template.md", l.TemplatePath())
	assert.Equal(t, []string{
		"/work/express/README.md",
		"/work/express/versions/10/README.md",
	}, l.ReadmeTargets())
	assert.Equal(t, []string{l.DeclarationPath(), l.DescriptorPath()}, l.WatchPaths())
}

func TestLayoutAbsoluteDescriptor(t *testing.T) {
	l := NewLayout("/work/express", "9")
	l.Descriptor = "/src/express.csproj"

	assert.Equal(t, "/src/express.csproj", l.DescriptorPath())
	assert.Equal(t, "/work/express/versions/9/tsonic.bindings.json", l.ManifestPath())
}

func TestLayoutValidate(t *testing.T) {
	assert.NoError(t, NewLayout("/r", "10").Validate())
	assert.Error(t, NewLayout("", "10").Validate())
	assert.Error(t, NewLayout("/r", "ten").Validate())
}
