// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/scrap2md/pkg/types"
)

// Separator joins consecutive message blocks: a horizontal rule with a
// blank line on each side. Blocks already end in a newline.
const Separator = "\n---\n\n"

// Assemble renders msgs in order and joins the blocks with Separator.
// An empty list yields the empty string. The output depends only on the
// arguments.
func Assemble(msgs []types.Message, opts types.RenderOptions) string {
	blocks := make([]string, 0, len(msgs))
	for _, m := range msgs {
		blocks = append(blocks, FormatMessage(m, opts))
	}
	return strings.Join(blocks, Separator)
}
