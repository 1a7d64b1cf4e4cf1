// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/scrap2md/pkg/types"
)

func TestFlatten(t *testing.T) {
	comments := []types.Comment{
		{
			Author: "alice", CreatedAt: "t1", BodyMarkdown: "first",
			Children: []types.Comment{
				{
					Author: "bob", CreatedAt: "t2", BodyMarkdown: "reply",
					Children: []types.Comment{
						{Author: "carol", CreatedAt: "t3", BodyMarkdown: "deep"},
					},
				},
				{Author: "dave", CreatedAt: "t4", BodyMarkdown: "reply 2"},
			},
		},
		{Author: "erin", CreatedAt: "t5", BodyMarkdown: "second"},
	}

	want := []types.Message{
		{Author: "alice", Timestamp: "t1", Body: "first", Depth: 0},
		{Author: "bob", Timestamp: "t2", Body: "reply", Depth: 1},
		{Author: "carol", Timestamp: "t3", Body: "deep", Depth: 2},
		{Author: "dave", Timestamp: "t4", Body: "reply 2", Depth: 1},
		{Author: "erin", Timestamp: "t5", Body: "second", Depth: 0},
	}
	assert.Equal(t, want, Flatten(comments))
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}
