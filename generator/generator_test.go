package generator

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	calls   []Prompt
	section func(n int, p Prompt) (string, error)
	images  string
	imgErr  error
}

func (f *fakeLLM) Complete(_ context.Context, p Prompt) (string, error) {
	f.calls = append(f.calls, p)
	if p.System == imageSystemMessage {
		return f.images, f.imgErr
	}
	if f.section != nil {
		return f.section(len(f.calls), p)
	}
	return "<p>section</p>", nil
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

var aiTrends = ArticleParams{
	Title:          "AI Trends",
	TargetAudience: "developers",
	Tone:           "professional",
	Keywords:       []string{"ai", "trends", "2024"},
}

func TestNewGeneratorRequiresClient(t *testing.T) {
	_, err := NewGenerator(nil, false, nil)
	require.Error(t, err)
}

func TestGenerateIssuesFiveCallsInOrder(t *testing.T) {
	llm := &fakeLLM{
		section: func(n int, _ Prompt) (string, error) {
			return "<p>part " + string(rune('0'+n)) + "</p>", nil
		},
		images: "Cloud\nServer\n",
	}
	g, err := NewGenerator(llm, true, quietLogger())
	require.NoError(t, err)

	got, err := g.Generate(context.Background(), aiTrends)
	require.NoError(t, err)

	require.Len(t, llm.calls, 5)
	for i, section := range Sections {
		assert.Contains(t, llm.calls[i].User, `"`+section.Name+`"`)
		assert.Equal(t, sectionSampling, llm.calls[i].Sampling)
		assert.Equal(t, sectionSystemMessage, llm.calls[i].System)
	}
	assert.Equal(t, imageSystemMessage, llm.calls[4].System)

	assert.Equal(t, "<p>part 1</p>\n<p>part 2</p>\n<p>part 3</p>\n<p>part 4</p>", got.HTML)
	assert.Equal(t, []string{"Cloud", "Server"}, got.ImagePrompts)
}

func TestGenerateSectionPromptsAreIndependent(t *testing.T) {
	llm := &fakeLLM{
		section: func(int, Prompt) (string, error) { return "<p>UNIQUE-OUTPUT</p>", nil },
		images:  "a\nb",
	}
	g, err := NewGenerator(llm, false, quietLogger())
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), aiTrends)
	require.NoError(t, err)
	for _, c := range llm.calls {
		assert.NotContains(t, c.User, "UNIQUE-OUTPUT")
	}
}

func TestGenerateStripsForbiddenMarkup(t *testing.T) {
	llm := &fakeLLM{
		section: func(n int, _ Prompt) (string, error) {
			switch n {
			case 1:
				return "```html\n<h2>Intro</h2><script>alert(1)</script><p onclick=\"x()\">Hello</p>\n```", nil
			case 2:
				return "<div><p>Body <img src=\"x.png\"> one</p></div>", nil
			case 3:
				return "<style>p{}</style><table><tr><td>cell</td></tr></table>", nil
			default:
				return "<p>Bye<br>now</p>", nil
			}
		},
		images: "x\ny",
	}
	g, err := NewGenerator(llm, false, quietLogger())
	require.NoError(t, err)

	got, err := g.Generate(context.Background(), aiTrends)
	require.NoError(t, err)

	for _, bad := range []string{"<script", "<style", "<div", "<img", "<table", "<td", "onclick", "```"} {
		assert.NotContains(t, got.HTML, bad)
	}
	assert.Contains(t, got.HTML, "<h2>Intro</h2>")
	assert.Contains(t, got.HTML, "Hello</p>")
	assert.Contains(t, got.HTML, "cell")
	assert.Regexp(t, `Bye<br\s*/?>now`, got.HTML)
	assert.Equal(t, got.HTML, CleanContent(got.HTML))
}

func TestGenerateRendersMarkdownSections(t *testing.T) {
	llm := &fakeLLM{
		section: func(int, Prompt) (string, error) { return "## Heading\n\nSome **bold** text.", nil },
		images:  "a\nb",
	}
	g, err := NewGenerator(llm, false, quietLogger())
	require.NoError(t, err)

	got, err := g.Generate(context.Background(), aiTrends)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(got.HTML, "<h2>Heading</h2>"))
	assert.Contains(t, got.HTML, "<strong>bold</strong>")
}

func TestGenerateSectionFailureAbortsArticle(t *testing.T) {
	boom := errors.New("rate limited")
	llm := &fakeLLM{
		section: func(n int, _ Prompt) (string, error) {
			if n == 3 {
				return "", boom
			}
			return "<p>ok</p>", nil
		},
	}
	g, err := NewGenerator(llm, false, quietLogger())
	require.NoError(t, err)

	got, err := g.Generate(context.Background(), aiTrends)
	require.Error(t, err)
	assert.Empty(t, got.HTML)
	assert.Len(t, llm.calls, 3)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, StageSection, genErr.Stage)
	assert.Equal(t, "Body Section 2", genErr.Section)
	assert.ErrorIs(t, err, boom)
}

func TestGenerateImagePromptFailure(t *testing.T) {
	llm := &fakeLLM{imgErr: errors.New("timeout")}
	g, err := NewGenerator(llm, false, quietLogger())
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), aiTrends)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, StageImagePrompts, genErr.Stage)
	assert.Len(t, llm.calls, 5)
}

func TestGenerateWithMockLLM(t *testing.T) {
	g, err := NewGenerator(NewMockLLM(), false, quietLogger())
	require.NoError(t, err)

	got, err := g.Generate(context.Background(), aiTrends)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(got.HTML, "<h2>"))
	assert.Equal(t, []string{"Technology", "Workspace"}, got.ImagePrompts)
}
