package publisher

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seo_article_writer/generator"
)

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func TestNewRequiresDir(t *testing.T) {
	_, err := New("", false, nil)
	assert.Error(t, err)
}

func TestPublish(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	p, err := New(dir, true, quiet())
	require.NoError(t, err)

	id := uuid.NewString()
	path, err := p.Publish(Article{
		ID:     id,
		Params: generator.ArticleParams{Title: "AI & You", Keywords: []string{"ai", "ml"}},
		HTML:   "<h2>Intro</h2><p>Hello <strong>world</strong></p>",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, id+".html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "<title>AI &amp; You</title>")
	assert.Contains(t, doc, `<meta name="keywords" content="ai, ml">`)
	assert.Contains(t, doc, `<meta name="description" content="Intro Hello world">`)
	assert.Contains(t, doc, "<p>Hello <strong>world</strong></p>")
}

func TestPublishAssignsID(t *testing.T) {
	p, err := New(t.TempDir(), false, quiet())
	require.NoError(t, err)

	path, err := p.Publish(Article{HTML: "<p>x</p>"})
	require.NoError(t, err)
	_, err = uuid.Parse(strings.TrimSuffix(filepath.Base(path), ".html"))
	assert.NoError(t, err)
}

func TestPublishRejectsBadInput(t *testing.T) {
	p, err := New(t.TempDir(), false, quiet())
	require.NoError(t, err)

	_, err = p.Publish(Article{})
	assert.Error(t, err)
	_, err = p.Publish(Article{ID: "../escape", HTML: "<p>x</p>"})
	assert.Error(t, err)
}

func TestDefaultDigest(t *testing.T) {
	assert.Equal(t, "a b", defaultDigest("<p>a</p>\n<p>b</p>", 10))
	assert.Equal(t, "héllo", defaultDigest("<p>héllo wörld</p>", 5))
}
