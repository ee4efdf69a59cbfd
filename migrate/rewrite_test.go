package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toothbrush/sitefinity-updater/sitefinity"
)

func TestRewrite(t *testing.T) {
	doc, err := GoqueryParser{}.Parse(`<p>Before</p><p><img src="/old/logo.png" sfref="[images|OpenAccessDataProvider]abc" title="Logo"></p>`)
	require.NoError(t, err)

	images := doc.Images()
	require.Len(t, images, 1)

	assert.True(t, Rewrite(images[0], sitefinity.Image{URL: "/images/default-source/logo.png"}))

	src, _ := images[0].Attr("src")
	assert.Equal(t, "/images/default-source/logo.png", src)
	_, ok := images[0].Attr("sfref")
	assert.False(t, ok)

	html, err := doc.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, `<p>Before</p>`)
	assert.Contains(t, html, `src="/images/default-source/logo.png"`)
	assert.Contains(t, html, `title="Logo"`)
	assert.NotContains(t, html, "sfref")
	assert.NotContains(t, html, "<body>")
}

func TestResultAdd(t *testing.T) {
	total := Result{}
	for _, page := range []Result{{10, 5}, {20, 8}, {15, 3}} {
		total = total.Add(page)
	}
	assert.Equal(t, Result{Processed: 45, Updated: 16}, total)
}

func TestRewriteKeepsEverythingElseInTheField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "leading style",
			in:   `<style>.x{color:red}</style><p><img src="/old.png" title="Logo"></p>`,
			want: `<style>.x{color:red}</style><p><img src="/new.png" title="Logo"/></p>`,
		},
		{
			name: "leading comment",
			in:   `<!-- editor note --><p><img src="/old.png" title="Logo"></p>`,
			want: `<!-- editor note --><p><img src="/new.png" title="Logo"/></p>`,
		},
		{
			name: "leading link",
			in:   `<link rel="stylesheet" href="/a.css"><img src="/old.png" title="Logo">`,
			want: `<link rel="stylesheet" href="/a.css"/><img src="/new.png" title="Logo"/>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := GoqueryParser{}.Parse(tt.in)
			require.NoError(t, err)

			images := doc.Images()
			require.Len(t, images, 1)
			Rewrite(images[0], sitefinity.Image{URL: "/new.png"})

			html, err := doc.HTML()
			require.NoError(t, err)
			assert.Equal(t, tt.want, html)
		})
	}
}
