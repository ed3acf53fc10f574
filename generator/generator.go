package generator

import (
	"context"
	"errors"
	"log"
)

// Generator writes an article section by section and derives image search
// terms for it.
type Generator struct {
	llm     LLMClient
	logger  *log.Logger
	verbose bool
}

func NewGenerator(llm LLMClient, verbose bool, logger *log.Logger) (*Generator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{llm: llm, logger: logger, verbose: verbose}, nil
}

func (g *Generator) infof(format string, args ...interface{}) {
	if !g.verbose {
		return
	}
	g.logger.Printf("[generator] "+format, args...)
}

// Generate issues one completion per section, in Sections order, followed by
// one completion for the image prompts. Any failure aborts the whole article.
func (g *Generator) Generate(ctx context.Context, params ArticleParams) (GeneratedContent, error) {
	base := BuildBasePrompt(params)

	generated := make([]string, 0, len(Sections))
	for _, section := range Sections {
		raw, err := g.llm.Complete(ctx, BuildSectionPrompt(base, section, params))
		if err != nil {
			return GeneratedContent{}, g.fail(&GenerationError{Stage: StageSection, Section: section.Name, Err: err})
		}
		g.infof("section %s done (%d bytes)", section.ID, len(raw))
		generated = append(generated, raw)
	}

	html, err := PostProcess(generated)
	if err != nil {
		return GeneratedContent{}, g.fail(&GenerationError{Stage: StageSection, Err: err})
	}
	g.infof("cleaned content: %d bytes", len(html))

	prompts, err := g.ImagePrompts(ctx, params)
	if err != nil {
		return GeneratedContent{}, err
	}

	return GeneratedContent{HTML: html, ImagePrompts: prompts}, nil
}

// ImagePrompts asks the model for image search terms based on the title.
func (g *Generator) ImagePrompts(ctx context.Context, params ArticleParams) ([]string, error) {
	raw, err := g.llm.Complete(ctx, BuildImagePrompt(params))
	if err != nil {
		return nil, g.fail(&GenerationError{Stage: StageImagePrompts, Err: err})
	}
	prompts := ParseImagePrompts(raw)
	g.infof("image prompts: %q", prompts)
	return prompts, nil
}

func (g *Generator) fail(err *GenerationError) error {
	g.logger.Printf("[generator] error generating article: %v", err)
	return err
}
