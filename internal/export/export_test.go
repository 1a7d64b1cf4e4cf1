// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

var sampleDoc = Document{
	Title:     "Test Title",
	Slug:      "abc123",
	SourceURL: "https://zenn.dev/foo/scraps/abc123",
	Messages:  2,
	Body:      "**Alice (2024-01-01)**\n\nhi\n\n---\n\n**Bob (2024-01-02)**\n\nyo\n",
}

func TestComposeBodyOnly(t *testing.T) {
	got, err := Compose(sampleDoc, ComposeOptions{})
	require.NoError(t, err)
	assert.Equal(t, sampleDoc.Body, got)
}

func TestComposeEmptyBody(t *testing.T) {
	got, err := Compose(Document{}, ComposeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestComposeTitle(t *testing.T) {
	got, err := Compose(sampleDoc, ComposeOptions{Title: true})
	require.NoError(t, err)
	assert.Equal(t, "# Test Title\n\n"+sampleDoc.Body, got)
}

func TestComposeFrontmatter(t *testing.T) {
	got, err := Compose(sampleDoc, ComposeOptions{Frontmatter: true, Title: true, Generator: "scrap2md dev"})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(got, "---\n"))
	rest := strings.TrimPrefix(got, "---\n")
	fm, after, ok := strings.Cut(rest, "---\n\n")
	require.True(t, ok, "frontmatter not terminated")
	assert.Equal(t, "# Test Title\n\n"+sampleDoc.Body, after)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(fm), &parsed))
	assert.Equal(t, "Test Title", parsed["title"])
	assert.Equal(t, "abc123", parsed["slug"])
	assert.Equal(t, "https://zenn.dev/foo/scraps/abc123", parsed["source_url"])
	assert.Equal(t, 2, parsed["messages"])
	assert.Equal(t, "scrap2md dev", parsed["exported_by"])
}

func TestComposeFrontmatterQuotesTitle(t *testing.T) {
	doc := Document{Title: "a: b # c", Slug: "s"}
	got, err := Compose(doc, ComposeOptions{Frontmatter: true})
	require.NoError(t, err)

	fm, _, _ := strings.Cut(strings.TrimPrefix(got, "---\n"), "---\n")
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(fm), &parsed))
	assert.Equal(t, "a: b # c", parsed["title"])
	assert.NotContains(t, parsed, "source_url")
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "abc123.md"), DefaultPath("out", "abc123"))
	assert.Equal(t, "abc123.md", DefaultPath(".", "abc123"))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.md")

	require.NoError(t, WriteFile(path, "first\n"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(data))

	require.NoError(t, WriteFile(path, "second\n"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}
