// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data and configuration types shared across
// scrap2md packages.
package types

// Comment is one post in a scrap as returned by the Zenn API. Replies are
// nested under Children.
type Comment struct {
	// Author is the Zenn username of the poster.
	Author string `json:"author" yaml:"author"`

	// CreatedAt is the post timestamp in the API's textual form.
	CreatedAt string `json:"created_at" yaml:"created_at"`

	// BodyMarkdown is the raw post body, including Zenn image markup.
	BodyMarkdown string `json:"body_markdown" yaml:"body_markdown"`

	// Children are replies to this post, in thread order.
	Children []Comment `json:"children,omitempty" yaml:"children,omitempty"`
}

// Scrap is a threaded discussion fetched from the Zenn API.
type Scrap struct {
	// Slug identifies the scrap (the last path segment of its URL).
	Slug string `json:"slug" yaml:"slug"`

	Title string `json:"title" yaml:"title"`

	// Closed reports whether the author closed the scrap.
	Closed bool `json:"closed" yaml:"closed"`

	// Comments are the top-level posts in thread order.
	Comments []Comment `json:"comments" yaml:"comments"`
}

// Message is one post flattened out of a scrap, ready for rendering.
// Messages are read-only once built.
type Message struct {
	Author    string `json:"author" yaml:"author"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Body      string `json:"body" yaml:"body"`

	// Depth is 0 for top-level posts and n for replies nested n levels deep.
	Depth int `json:"depth,omitempty" yaml:"depth,omitempty"`
}

// RenderOptions controls how messages are rendered into a document. One
// value is used for a whole conversion run.
type RenderOptions struct {
	// SkipHeader omits the "**author (timestamp)**" line above each body.
	SkipHeader bool `json:"skip_header" yaml:"skip_header"`

	// QuoteReplies renders replies as nested blockquotes, one level per Depth.
	QuoteReplies bool `json:"quote_replies" yaml:"quote_replies"`
}
