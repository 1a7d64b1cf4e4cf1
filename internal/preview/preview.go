// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview renders an exported scrap for reading in a terminal.
package preview

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const defaultWidth = 80

// Options controls terminal rendering.
type Options struct {
	// Width is the word-wrap column. Zero uses the terminal width of the
	// output, or 80 when it is not a terminal.
	Width int

	// Style names a glamour standard style ("dark", "light", "ascii",
	// "notty", "dracula"). Empty picks one from the terminal background.
	Style string
}

// Width returns the column count of f when it is a terminal, else fallback.
func Width(f *os.File, fallback int) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// Render formats Markdown for terminal display.
func Render(md string, opts Options) (string, error) {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	styleOpt := glamour.WithAutoStyle()
	if opts.Style != "" {
		styleOpt = glamour.WithStandardStyle(opts.Style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// Write renders md and writes it to w. When w is a terminal file and
// opts.Width is unset, the terminal width is used.
func Write(w io.Writer, md string, opts Options) error {
	f, isFile := w.(*os.File)
	if opts.Width <= 0 && isFile {
		opts.Width = Width(f, defaultWidth)
	}
	if opts.Style == "" && (!isFile || !term.IsTerminal(int(f.Fd()))) {
		opts.Style = "notty"
	}

	out, err := Render(md, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
