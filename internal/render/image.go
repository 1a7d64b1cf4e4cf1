// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render converts scrap messages into a single Markdown document.
// Zenn image markup is rewritten to raw <img> tags, each message becomes a
// block with an optional author header, and blocks are joined with
// horizontal rules. Everything here is pure: no I/O, no shared state.
package render

import (
	"strconv"
	"strings"
)

// ImageMarkup is one parsed Zenn image reference. A zero Width or Height
// means the dimension was not given.
type ImageMarkup struct {
	URL    string
	Width  int
	Height int
}

// HTML renders the markup as an <img> element. Height is only emitted
// alongside a width. The URL is written verbatim.
func (im ImageMarkup) HTML() string {
	var b strings.Builder
	b.WriteString(`<img src="`)
	b.WriteString(im.URL)
	b.WriteByte('"')
	if im.Width > 0 {
		b.WriteString(` width="`)
		b.WriteString(strconv.Itoa(im.Width))
		b.WriteByte('"')
		if im.Height > 0 {
			b.WriteString(` height="`)
			b.WriteString(strconv.Itoa(im.Height))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')
	return b.String()
}

// TranslateImages replaces every ![alt](url =WxH) occurrence in body with an
// <img> tag, scanning left to right without overlap. Text outside image
// markup is copied unchanged; a body without markup is returned as is.
// Time is linear in len(body).
func TranslateImages(body string) string {
	if !strings.Contains(body, "![") {
		return body
	}

	sc := newScanner(body)
	var b strings.Builder
	b.Grow(len(body))
	pos := 0
	for {
		i := strings.Index(body[pos:], "![")
		if i < 0 {
			b.WriteString(body[pos:])
			break
		}
		i += pos
		b.WriteString(body[pos:i])

		img, n, ok := sc.parseAt(i)
		if !ok {
			// Not an image; keep the '!' and rescan from the '['.
			b.WriteByte('!')
			pos = i + 1
			continue
		}
		b.WriteString(img.HTML())
		pos = i + n
	}
	return b.String()
}

// ParseImage parses one image markup at the start of s and returns it with
// the number of bytes consumed. ok is false when s does not start with a
// complete markup: "![", alt text with balanced brackets, "](", a non-empty
// URL, and a closing ")" on the same line.
//
// Anything between the URL and the closing ")" is treated as a size suffix.
// A suffix that does not parse as =W[unit]x[H] yields an unsized image.
func ParseImage(s string) (img ImageMarkup, n int, ok bool) {
	if !strings.HasPrefix(s, "![") {
		return ImageMarkup{}, 0, false
	}
	return newScanner(s).parseAt(0)
}

// scanner holds offsets computed in one pass over a body so that each
// candidate "![" is checked in constant time plus the length it consumes.
type scanner struct {
	s string

	// match[i] is the index of the ']' closing the '[' at i on the same
	// line, or -1. Only meaningful where s[i] == '['.
	match []int

	// urlEnd[i] is the first index >= i holding whitespace or ')'.
	urlEnd []int

	// closeEnd[i] is the first index >= i holding ')' or '\n'.
	closeEnd []int
}

func newScanner(s string) *scanner {
	n := len(s)
	sc := &scanner{
		s:        s,
		match:    make([]int, n),
		urlEnd:   make([]int, n+1),
		closeEnd: make([]int, n+1),
	}

	var open []int
	for i := 0; i < n; i++ {
		sc.match[i] = -1
		switch s[i] {
		case '[':
			open = append(open, i)
		case ']':
			if len(open) > 0 {
				sc.match[open[len(open)-1]] = i
				open = open[:len(open)-1]
			}
		case '\n':
			// Alt text may not span lines.
			open = open[:0]
		}
	}

	sc.urlEnd[n], sc.closeEnd[n] = n, n
	for i := n - 1; i >= 0; i-- {
		c := s[i]
		sc.urlEnd[i] = sc.urlEnd[i+1]
		if isSpace(c) || c == ')' {
			sc.urlEnd[i] = i
		}
		sc.closeEnd[i] = sc.closeEnd[i+1]
		if c == ')' || c == '\n' {
			sc.closeEnd[i] = i
		}
	}
	return sc
}

// parseAt parses the markup starting at i, which must hold "![".
func (sc *scanner) parseAt(i int) (ImageMarkup, int, bool) {
	s := sc.s
	closing := sc.match[i+1]
	if closing < 0 {
		return ImageMarkup{}, 0, false
	}
	pos := closing + 1
	if pos >= len(s) || s[pos] != '(' {
		return ImageMarkup{}, 0, false
	}
	pos++

	end := sc.urlEnd[pos]
	if end == pos {
		return ImageMarkup{}, 0, false
	}
	img := ImageMarkup{URL: s[pos:end]}

	if end < len(s) && s[end] == ')' {
		return img, end + 1 - i, true
	}

	rparen := sc.closeEnd[end]
	if rparen >= len(s) || s[rparen] != ')' {
		return ImageMarkup{}, 0, false
	}
	img.Width, img.Height = parseSize(s[end:rparen])
	return img, rparen + 1 - i, true
}

// parseSize interprets the text between the URL and ")" as "=W[unit]x[H]".
// The unit run may itself contain 'x' ("px"); the last 'x' in it separates
// width from height. Any deviation returns zero for both dimensions.
func parseSize(suffix string) (width, height int) {
	size, ok := strings.CutPrefix(strings.TrimSpace(suffix), "=")
	if !ok {
		return 0, 0
	}

	w, rest, ok := leadingInt(size)
	if !ok {
		return 0, 0
	}
	after := skipUnit(rest)
	unit := rest[:len(rest)-len(after)]

	sep := strings.LastIndexByte(unit, 'x')
	if sep < 0 {
		if after != "" {
			return 0, 0
		}
		return w, 0
	}

	tail := unit[sep+1:] + after
	if tail == "" {
		return w, 0
	}
	h, rest, ok := leadingInt(tail)
	if !ok || skipUnit(rest) != "" {
		return 0, 0
	}
	return w, h
}

// leadingInt parses the positive decimal integer at the start of s.
func leadingInt(s string) (int, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	v, err := strconv.Atoi(s[:i])
	if err != nil || v <= 0 {
		return 0, s, false
	}
	return v, s[i:], true
}

// skipUnit consumes a run of unit bytes ("%", "px", "em", and the 'x'
// separator itself) and returns the remainder.
func skipUnit(s string) string {
	i := 0
	for i < len(s) && isUnitByte(s[i]) {
		i++
	}
	return s[i:]
}

func isUnitByte(c byte) bool {
	return c == '%' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
