package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"md2gdocs/markdown"
)

func TestReadSource_Stdin(t *testing.T) {
	src, err := readSource("-", strings.NewReader("---\ntitle: From Stdin\nshare: anyone\n---\nbody\n"))
	require.NoError(t, err)

	assert.Empty(t, src.Path)
	assert.Equal(t, "From Stdin", src.Meta.Title)
	assert.Equal(t, "anyone", src.Meta.Share)
	assert.Equal(t, "body\n", src.Body)
}

func TestReadSource_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Notes\n"), 0o644))

	src, err := readSource(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, src.Path)
	assert.Equal(t, "# Notes\n", src.Body)
}

func TestReadSource_MissingFile(t *testing.T) {
	_, err := readSource(filepath.Join(t.TempDir(), "missing.md"), nil)
	require.Error(t, err)
	assert.Equal(t, exitInput, exitCode(err))
}

func TestSourceTitle(t *testing.T) {
	tests := []struct {
		name string
		src  source
		flag string
		want string
	}{
		{"flag wins", source{Path: "/tmp/a.md"}, "Flag", "Flag"},
		{"front matter", source{Path: "/tmp/a.md", Meta: markdown.FrontMatter{Title: "Meta"}}, "", "Meta"},
		{"file name", source{Path: "/tmp/weekly-report.md"}, "", "weekly-report"},
		{"stdin", source{}, "", "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.src.title(tt.flag))
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Empty(t, firstNonEmpty("", ""))
}
