// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/scrap2md/pkg/types"
)

// FormatMessage renders one message as a Markdown block ending in exactly
// one newline. Unless opts.SkipHeader is set, the block starts with
// "**author (timestamp)**" and a blank line. The body has its image markup
// translated; trailing line breaks are collapsed and everything else is
// kept verbatim.
func FormatMessage(m types.Message, opts types.RenderOptions) string {
	var b strings.Builder
	if !opts.SkipHeader {
		b.WriteString(Header(m))
		b.WriteString("\n\n")
	}
	b.WriteString(strings.TrimRight(TranslateImages(m.Body), "\r\n"))
	b.WriteByte('\n')

	block := b.String()
	if opts.QuoteReplies && m.Depth > 0 {
		block = quote(block, m.Depth)
	}
	return block
}

// Header returns the "**author (timestamp)**" line for m without a newline.
// Empty fields are rendered as empty strings.
func Header(m types.Message) string {
	return "**" + m.Author + " (" + m.Timestamp + ")**"
}

// quote prefixes every line of block with depth levels of "> ". Blank
// lines get the bare marker so the blockquote stays contiguous.
func quote(block string, depth int) string {
	prefix := strings.Repeat("> ", depth)
	marker := strings.TrimRight(prefix, " ")

	lines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			b.WriteString(marker)
		} else {
			b.WriteString(prefix)
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
