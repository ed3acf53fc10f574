package generator

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	anyTagRe   = regexp.MustCompile(`<[^>]*>`)
	tagNameRe  = regexp.MustCompile(`^</?\s*([^\s>/]*)`)
	fenceRe    = regexp.MustCompile("```[A-Za-z0-9_+-]*")
	htmlHintRe = regexp.MustCompile(`(?i)</?[a-z][a-z0-9]*(\s[^>]*)?/?>`)
)

var allowedTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"b": true, "i": true, "ul": true, "ol": true, "li": true, "a": true,
	"blockquote": true, "span": true, "strong": true, "em": true, "br": true, "hr": true,
}

var sanitizePolicy = bluemonday.UGCPolicy()

// PostProcess 将各段落拼接、清洗为最终 HTML。
func PostProcess(sections []string) (string, error) {
	rendered := make([]string, 0, len(sections))
	for _, s := range sections {
		html, err := renderSection(s)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, html)
	}
	raw := strings.Join(rendered, "\n")
	return CleanContent(Sanitize(raw)), nil
}

// Sanitize removes scripts, styles, event handlers and unsafe URLs.
func Sanitize(raw string) string {
	return sanitizePolicy.Sanitize(raw)
}

// CleanContent drops code fence markers and every tag outside the article
// allow-list, keeping attributes on allowed tags. It is idempotent.
func CleanContent(content string) string {
	for {
		next := cleanOnce(content)
		if next == content {
			return next
		}
		content = next
	}
}

// cleanOnce either returns its input unchanged or a strictly shorter string,
// so CleanContent always reaches a fixed point.
func cleanOnce(content string) string {
	out := fenceRe.ReplaceAllString(content, "")
	out = anyTagRe.ReplaceAllStringFunc(out, func(tag string) string {
		if allowedTags[tagName(tag)] {
			return tag
		}
		return ""
	})
	return strings.TrimSpace(out)
}

func tagName(tag string) string {
	m := tagNameRe.FindStringSubmatch(tag)
	if len(m) < 2 {
		return ""
	}
	return strings.ToLower(m[1])
}

// renderSection converts a section written in Markdown to HTML. Sections that
// already contain markup are returned unchanged.
func renderSection(section string) (string, error) {
	if strings.TrimSpace(section) == "" || htmlHintRe.MatchString(section) {
		return section, nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(section), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
