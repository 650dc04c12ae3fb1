package readme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsonic/express-postprocess/errors"
	"github.com/tsonic/express-postprocess/repo"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRender(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "docs/snippets/10/hello.ts"), "import express from \"@tsonic/express\";\r\nconst app = express();\r\n")
	write(t, filepath.Join(root, "docs/intro.md"), "Intro.\n\n")

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "no directives",
			template: "# express\n",
			want:     "# express\n",
		},
		{
			name:     "crlf normalized and one newline dropped",
			template: "```ts\n<!-- include: docs/snippets/10/hello.ts -->\n```",
			want:     "```ts\nimport express from \"@tsonic/express\";\nconst app = express();\n```",
		},
		{
			name:     "only one trailing newline dropped",
			template: "<!--include:docs/intro.md-->|",
			want:     "Intro.\n|",
		},
		{
			name:     "padded directive",
			template: "<!--   include:   docs/intro.md   -->",
			want:     "Intro.\n",
		},
		{
			name:     "repeated include",
			template: "<!-- include: docs/intro.md --><!-- include: docs/intro.md -->",
			want:     "Intro.\nIntro.\n",
		},
		{
			name:     "other comments untouched",
			template: "<!-- note: keep -->",
			want:     "<!-- note: keep -->",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_MissingInclude(t *testing.T) {
	_, err := Render("<!-- include: docs/nope.md -->", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingInclude))
	assert.Contains(t, err.Error(), "docs/nope.md")
}

func newRepo(t *testing.T) repo.Layout {
	t.Helper()
	l := repo.NewLayout(t.TempDir(), "10")
	write(t, filepath.Join(l.Root, "docs/snippets/10/hello.ts"), "app.listen(3000);\n")
	write(t, l.TemplatePath(), "# @tsonic/express\n\n<!-- include: docs/snippets/10/hello.ts -->")
	return l
}

const rendered = "# @tsonic/express\n\napp.listen(3000);\n"

func TestSync_Write(t *testing.T) {
	l := newRepo(t)

	targets, err := Sync(l, false)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	for _, target := range targets {
		assert.True(t, target.Changed, target.Path)
		assert.Equal(t, rendered, read(t, target.Path))
	}

	targets, err = Sync(l, false)
	require.NoError(t, err)
	for _, target := range targets {
		assert.False(t, target.Changed, target.Path)
	}
}

func TestSync_Check(t *testing.T) {
	l := newRepo(t)
	targets := l.ReadmeTargets()
	write(t, targets[0], rendered)
	write(t, targets[1], "stale\n")

	got, err := Sync(l, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReadmeOutOfDate))
	assert.True(t, errors.IsOutOfDate(err))
	assert.Contains(t, err.Error(), targets[1])
	assert.NotContains(t, err.Error(), targets[0])
	assert.Equal(t, []string{"Run: postprocess readme 10"}, errors.GetAllHints(err))
	assert.Equal(t, []Target{{targets[0], false}, {targets[1], true}}, got)

	assert.Equal(t, "stale\n", read(t, targets[1]))

	_, err = Sync(l, false)
	require.NoError(t, err)
	_, err = Sync(l, true)
	assert.NoError(t, err)
}

func TestSync_CheckMissingTarget(t *testing.T) {
	l := newRepo(t)

	_, err := Sync(l, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReadmeOutOfDate))
	_, statErr := os.Stat(l.ReadmeTargets()[0])
	assert.True(t, os.IsNotExist(statErr))
}

func TestSync_MissingTemplate(t *testing.T) {
	l := repo.NewLayout(t.TempDir(), "10")

	_, err := Sync(l, false)
	assert.Error(t, err)
}

func TestSync_MissingIncludeWritesNothing(t *testing.T) {
	l := newRepo(t)
	write(t, l.TemplatePath(), "<!-- include: docs/missing.md -->")

	_, err := Sync(l, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingInclude))
	_, statErr := os.Stat(l.ReadmeTargets()[0])
	assert.True(t, os.IsNotExist(statErr))
}
