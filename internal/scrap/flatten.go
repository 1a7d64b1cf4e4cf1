// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrap

import "github.com/pdiddy/scrap2md/pkg/types"

// Flatten walks a comment tree depth-first, emitting each post before its
// replies. Depth records the nesting level of every message.
func Flatten(comments []types.Comment) []types.Message {
	var msgs []types.Message
	var walk func(cs []types.Comment, depth int)
	walk = func(cs []types.Comment, depth int) {
		for _, c := range cs {
			msgs = append(msgs, types.Message{
				Author:    c.Author,
				Timestamp: c.CreatedAt,
				Body:      c.BodyMarkdown,
				Depth:     depth,
			})
			walk(c.Children, depth+1)
		}
	}
	walk(comments, 0)
	return msgs
}
