package publisher

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"seo_article_writer/generator"
)

var pageTmpl = template.Must(template.New("article").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
<meta name="keywords" content="{{.Keywords}}">
</head>
<body>
<article>
<h1>{{.Title}}</h1>
{{.Body}}
</article>
</body>
</html>
`))

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Article is a finished piece ready to be written out.
type Article struct {
	ID     string
	Params generator.ArticleParams
	HTML   string
}

type page struct {
	Title       string
	Description string
	Keywords    string
	Body        template.HTML
}

// Publisher writes articles as standalone HTML documents.
type Publisher struct {
	dir     string
	verbose bool
	logger  *log.Logger
}

func New(dir string, verbose bool, logger *log.Logger) (*Publisher, error) {
	if dir == "" {
		return nil, errors.New("output directory is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{dir: dir, verbose: verbose, logger: logger}, nil
}

func (p *Publisher) infof(format string, args ...interface{}) {
	if !p.verbose {
		return
	}
	p.logger.Printf("[INFO] "+format, args...)
}

// Publish writes <dir>/<id>.html and returns its path. An empty ID gets a
// fresh UUID.
func (p *Publisher) Publish(art Article) (string, error) {
	if art.HTML == "" {
		return "", errors.New("article html is empty")
	}
	if art.ID == "" {
		art.ID = uuid.NewString()
	}
	if _, err := uuid.Parse(art.ID); err != nil {
		return "", fmt.Errorf("invalid article id %q: %w", art.ID, err)
	}

	doc, err := Render(art)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(p.dir, art.ID+".html")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", err
	}
	p.infof("Article %q written to %s", art.Params.Title, path)
	return path, nil
}

// Render wraps the article body in a full HTML document. The body is
// trusted: it has already been sanitized by the generator.
func Render(art Article) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, page{
		Title:       art.Params.Title,
		Description: defaultDigest(art.HTML, 160),
		Keywords:    strings.Join(art.Params.Keywords, ", "),
		Body:        template.HTML(art.HTML),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func defaultDigest(html string, limit int) string {
	text := tagRe.ReplaceAllString(html, " ")
	compact := strings.Fields(text)
	joined := strings.Join(compact, " ")
	runes := []rune(joined)
	if len(runes) <= limit {
		return joined
	}
	return string(runes[:limit])
}
