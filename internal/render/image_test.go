// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTranslateImages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "width and height",
			body: "hello ![](http://x/img.png =300x200) world",
			want: `hello <img src="http://x/img.png" width="300" height="200"> world`,
		},
		{
			name: "width with trailing x",
			body: "![](http://x/a.png =50x)",
			want: `<img src="http://x/a.png" width="50">`,
		},
		{
			name: "no size suffix",
			body: "![](http://x/a.png)",
			want: `<img src="http://x/a.png">`,
		},
		{
			name: "width without x",
			body: "![](http://x/a.png =120)",
			want: `<img src="http://x/a.png" width="120">`,
		},
		{
			name: "alt text discarded",
			body: "![a cat](http://x/c.png =10x20)",
			want: `<img src="http://x/c.png" width="10" height="20">`,
		},
		{
			name: "percent unit ignored",
			body: "![](http://x/a.png =50%x)",
			want: `<img src="http://x/a.png" width="50">`,
		},
		{
			name: "unit on height ignored",
			body: "![](http://x/a.png =300x200px)",
			want: `<img src="http://x/a.png" width="300" height="200">`,
		},
		{
			name: "px unit before separator",
			body: "![](http://x/a.png =50pxx30)",
			want: `<img src="http://x/a.png" width="50" height="30">`,
		},
		{
			name: "px unit without height",
			body: "![](http://x/a.png =50px)",
			want: `<img src="http://x/a.png" width="50">`,
		},
		{
			name: "em unit before separator",
			body: "![](http://x/a.png =50emx30)",
			want: `<img src="http://x/a.png" width="50" height="30">`,
		},
		{
			name: "px unit on both sides",
			body: "![](http://x/a.png =50pxx30px)",
			want: `<img src="http://x/a.png" width="50" height="30">`,
		},
		{
			name: "extra spaces around suffix",
			body: "![](http://x/a.png   =300x200  )",
			want: `<img src="http://x/a.png" width="300" height="200">`,
		},
		{
			name: "non-numeric width degrades",
			body: "![](http://x/a.png =abcx10)",
			want: `<img src="http://x/a.png">`,
		},
		{
			name: "non-numeric height degrades",
			body: "![](http://x/a.png =10xabc)",
			want: `<img src="http://x/a.png">`,
		},
		{
			name: "zero width degrades",
			body: "![](http://x/a.png =0x0)",
			want: `<img src="http://x/a.png">`,
		},
		{
			name: "missing width degrades",
			body: "![](http://x/a.png =x200)",
			want: `<img src="http://x/a.png">`,
		},
		{
			name: "overflowing width degrades",
			body: "![](http://x/a.png =99999999999999999999999x1)",
			want: `<img src="http://x/a.png">`,
		},
		{
			name: "title instead of size degrades",
			body: `![](http://x/a.png "a title")`,
			want: `<img src="http://x/a.png">`,
		},
		{
			name: "adjacent images",
			body: "![](http://x/a.png)![](http://x/b.png =1x2)",
			want: `<img src="http://x/a.png"><img src="http://x/b.png" width="1" height="2">`,
		},
		{
			name: "bracketed alt text",
			body: "![a [b] c](http://x/a.png)",
			want: `<img src="http://x/a.png">`,
		},
		{
			name: "unterminated markup before valid one",
			body: "![broken ![](http://x/a.png)",
			want: `![broken <img src="http://x/a.png">`,
		},
		{
			name: "unclosed paren left alone",
			body: "![](http://x/a.png =30x",
			want: "![](http://x/a.png =30x",
		},
		{
			name: "space before paren left alone",
			body: "![alt] (http://x/a.png)",
			want: "![alt] (http://x/a.png)",
		},
		{
			name: "empty url left alone",
			body: "![]()",
			want: "![]()",
		},
		{
			name: "alt spanning lines left alone",
			body: "![a\nb](http://x/a.png)",
			want: "![a\nb](http://x/a.png)",
		},
		{
			name: "closing paren on next line left alone",
			body: "![](http://x/a.png\n)",
			want: "![](http://x/a.png\n)",
		},
		{
			name: "plain link untouched",
			body: "see [docs](http://x/docs) now!",
			want: "see [docs](http://x/docs) now!",
		},
		{
			name: "multibyte text around image",
			body: "画像 ![](https://x/a.png =250x) です",
			want: `画像 <img src="https://x/a.png" width="250"> です`,
		},
		{
			name: "images on separate lines",
			body: "one\n![](http://x/1.png =10x)\ntwo\n![](http://x/2.png)\n",
			want: "one\n<img src=\"http://x/1.png\" width=\"10\">\ntwo\n<img src=\"http://x/2.png\">\n",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateImages(tt.body))
		})
	}
}

func TestTranslateImages_CleanTextUnchanged(t *testing.T) {
	bodies := []string{
		"",
		"plain text",
		"  leading and trailing spaces  \n\n",
		"# heading\n\n- list item\n- [link](http://x)\n",
		"exclaim! then [bracket]",
		"```go\nfmt.Println(\"hi\")\n```",
		"日本語のテキスト",
	}
	for _, body := range bodies {
		assert.Equal(t, body, TranslateImages(body))
	}
}

func TestTranslateImages_DegenerateInputLinear(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"open markup", strings.Repeat("![](", 100000), strings.Repeat("![](", 100000)},
		{"open brackets", strings.Repeat("![", 100000), strings.Repeat("![", 100000)},
		{"unterminated sizes", strings.Repeat("![a](u =", 100000), strings.Repeat("![a](u =", 100000)},
		{"unclosed alt", strings.Repeat("![a", 100000) + "](u)", strings.Repeat("![a", 99999) + `<img src="u">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			got := TranslateImages(tt.body)
			elapsed := time.Since(start)

			assert.Less(t, elapsed, 2*time.Second, "scan took %s", elapsed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslateImages_ManyImages(t *testing.T) {
	body := strings.Repeat("![](u =1x2) ", 50000)
	want := strings.Repeat(`<img src="u" width="1" height="2"> `, 50000)

	start := time.Now()
	got := TranslateImages(body)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, want, got)
}

func TestParseImage(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   ImageMarkup
		wantN  int
		wantOK bool
	}{
		{"unsized", "![](u) tail", ImageMarkup{URL: "u"}, 6, true},
		{"sized", "![x](u =3x4) tail", ImageMarkup{URL: "u", Width: 3, Height: 4}, 12, true},
		{"width only", "![](u =3x)", ImageMarkup{URL: "u", Width: 3}, 10, true},
		{"not at start", "a![](u)", ImageMarkup{}, 0, false},
		{"no paren", "![x]", ImageMarkup{}, 0, false},
		{"no closing bracket", "![x(u)", ImageMarkup{}, 0, false},
		{"px unit", "![](u =5pxx6)", ImageMarkup{URL: "u", Width: 5, Height: 6}, 13, true},
		{"nested alt", "![[a]](u) tail", ImageMarkup{URL: "u"}, 9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, ok := ParseImage(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantN, n)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImageMarkupHTML(t *testing.T) {
	assert.Equal(t, `<img src="u">`, ImageMarkup{URL: "u"}.HTML())
	assert.Equal(t, `<img src="u" width="5">`, ImageMarkup{URL: "u", Width: 5}.HTML())
	assert.Equal(t, `<img src="u" width="5" height="6">`, ImageMarkup{URL: "u", Width: 5, Height: 6}.HTML())
	// Height without width is never emitted.
	assert.Equal(t, `<img src="u">`, ImageMarkup{URL: "u", Height: 6}.HTML())
}
