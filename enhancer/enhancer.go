package enhancer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"

	"seo_article_writer/generator"
	"seo_article_writer/imagesearch"
)

// ParagraphEnd is the boundary the article is split on when placing the
// mid-document image.
const ParagraphEnd = "</p>"

// ImageSearcher finds images for a search term.
type ImageSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]imagesearch.Image, error)
}

// ImageEnhancementError is returned when an image search fails. No partially
// enhanced HTML is returned alongside it.
type ImageEnhancementError struct {
	Prompt string
	Err    error
}

func (e *ImageEnhancementError) Error() string {
	return fmt.Sprintf("failed to enhance article with images: search %q: %v", e.Prompt, e.Err)
}

func (e *ImageEnhancementError) Unwrap() error {
	return e.Err
}

// Enhancer places a title image and a mid-article image into generated HTML.
type Enhancer struct {
	images  ImageSearcher
	logger  *log.Logger
	verbose bool
}

func New(images ImageSearcher, verbose bool, logger *log.Logger) (*Enhancer, error) {
	if images == nil {
		return nil, errors.New("image searcher is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Enhancer{images: images, logger: logger, verbose: verbose}, nil
}

func (e *Enhancer) infof(format string, args ...interface{}) {
	if !e.verbose {
		return
	}
	e.logger.Printf("[enhancer] "+format, args...)
}

// Enhance returns the article HTML with up to two figures spliced in. It
// returns "" without searching when content is nil, has no HTML, or carries
// fewer than two image prompts.
func (e *Enhancer) Enhance(ctx context.Context, params generator.ArticleParams, content *generator.GeneratedContent) (string, error) {
	if content == nil || content.HTML == "" || len(content.ImagePrompts) < 2 {
		e.logger.Printf("[enhancer] insufficient content or image prompts")
		return "", nil
	}

	enhanced := content.HTML

	title, err := e.first(ctx, content.ImagePrompts[0])
	if err != nil {
		return "", err
	}
	if title != nil {
		enhanced = Figure(*title, params.Title) + enhanced
		e.infof("title image %s", title.URL)
	}

	fragments := strings.Split(enhanced, ParagraphEnd)
	mid := len(fragments) / 2
	middle, err := e.first(ctx, content.ImagePrompts[1])
	if err != nil {
		return "", err
	}
	if middle != nil {
		fragments = InsertAt(fragments, mid, Figure(*middle, params.Title))
		e.infof("middle image %s at fragment %d", middle.URL, mid)
	}

	return strings.Join(fragments, ParagraphEnd), nil
}

func (e *Enhancer) first(ctx context.Context, prompt string) (*imagesearch.Image, error) {
	images, err := e.images.Search(ctx, prompt, 1)
	if err != nil {
		enhErr := &ImageEnhancementError{Prompt: prompt, Err: err}
		e.logger.Printf("[enhancer] error enhancing article with images: %v", enhErr)
		return nil, enhErr
	}
	if len(images) == 0 {
		e.infof("no image for %q", prompt)
		return nil, nil
	}
	return &images[0], nil
}

// InsertAt returns fragments with item inserted before index i.
func InsertAt(fragments []string, i int, item string) []string {
	out := make([]string, 0, len(fragments)+1)
	out = append(out, fragments[:i]...)
	out = append(out, item)
	return append(out, fragments[i:]...)
}

// Figure renders an image with its photographer credit. fallbackAlt is used
// when the image has no description.
func Figure(img imagesearch.Image, fallbackAlt string) string {
	alt := img.Alt
	if alt == "" {
		alt = fallbackAlt
	}
	var sb strings.Builder
	sb.WriteString("\n  <figure class=\"my-8\">\n")
	sb.WriteString(fmt.Sprintf("    <img src=\"%s\" alt=\"%s\" class=\"rounded-lg shadow-md w-full\" />\n",
		html.EscapeString(img.URL), html.EscapeString(alt)))
	sb.WriteString("    <figcaption class=\"text-sm text-gray-500 mt-2\">\n")
	sb.WriteString(fmt.Sprintf("      Photo by <a href=\"%s\" target=\"_blank\" rel=\"noopener noreferrer\" class=\"text-blue-500 hover:underline\">%s</a> on Unsplash\n",
		html.EscapeString(img.Credit.Link), html.EscapeString(img.Credit.Name)))
	sb.WriteString("    </figcaption>\n")
	sb.WriteString("  </figure>")
	return sb.String()
}
