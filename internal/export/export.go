// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export composes the final Markdown file around an assembled
// scrap document and writes it to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Document is an assembled scrap body plus the metadata needed to label it.
type Document struct {
	Title     string
	Slug      string
	SourceURL string
	Messages  int

	// Body is the assembled Markdown, written verbatim.
	Body string
}

// ComposeOptions selects what is placed before the body.
type ComposeOptions struct {
	Frontmatter bool
	Title       bool

	// Generator is recorded as exported_by in the frontmatter.
	Generator string
}

type frontmatter struct {
	Title      string `yaml:"title"`
	Slug       string `yaml:"slug"`
	SourceURL  string `yaml:"source_url,omitempty"`
	Messages   int    `yaml:"messages"`
	ExportedBy string `yaml:"exported_by,omitempty"`
}

// Compose returns the file content for doc. With no options set it is
// doc.Body unchanged.
func Compose(doc Document, opts ComposeOptions) (string, error) {
	var b strings.Builder

	if opts.Frontmatter {
		data, err := yaml.Marshal(frontmatter{
			Title:      doc.Title,
			Slug:       doc.Slug,
			SourceURL:  doc.SourceURL,
			Messages:   doc.Messages,
			ExportedBy: opts.Generator,
		})
		if err != nil {
			return "", fmt.Errorf("encoding frontmatter: %w", err)
		}
		b.WriteString("---\n")
		b.Write(data)
		b.WriteString("---\n\n")
	}

	if opts.Title {
		fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	}

	b.WriteString(doc.Body)
	return b.String(), nil
}

// DefaultPath returns dir/<slug>.md.
func DefaultPath(dir, slug string) string {
	return filepath.Join(dir, slug+".md")
}

// WriteFile writes content to path through a temporary file in the same
// directory and renames it into place, creating parent directories.
func WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".scrap2md-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.WriteString(content)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
