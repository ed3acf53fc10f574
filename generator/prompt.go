package generator

import (
	"fmt"
	"strings"
)

// Prompt 表示发送给 LLM 的消息集合。
type Prompt struct {
	System   string
	User     string
	Sampling Sampling
}

const (
	sectionSystemMessage = "You are an expert tech content writer specializing in SEO-optimized articles."
	imageSystemMessage   = "Generate concise, descriptive image prompts for Unsplash searches based on article headings. Focus on tech-related, professional imagery."
)

var (
	sectionSampling = Sampling{
		Temperature:      0.6,
		TopP:             0.8,
		FrequencyPenalty: 0.5,
		PresencePenalty:  0.7,
		MaxTokens:        1500,
	}
	imageSampling = Sampling{Temperature: 0.7}
)

// Sections lists the article divisions in the order they are generated and
// concatenated.
var Sections = []Section{
	{
		ID:           "introduction",
		Name:         "Introduction",
		Instructions: `Generate only the "Introduction" section. Create an engaging hook to draw the reader in, provide a brief overview of the topic "%s", and highlight the article's value to the reader. Avoid detailed explanations or content that overlaps with body sections.`,
	},
	{
		ID:           "body-1",
		Name:         "Body Section 1",
		Instructions: `Generate only the "Body Section 1". Focus on the first major aspect of the topic "%s". Provide clear explanations, relevant examples, and actionable insights. Ensure this section introduces fresh content without overlapping with the Introduction or other sections.`,
	},
	{
		ID:           "body-2",
		Name:         "Body Section 2",
		Instructions: `Generate only the "Body Section 2". Explore a new angle or subtopic related to "%s" that complements but doesn't repeat Body Section 1. Include data, practical applications, or insights, and maintain a logical flow from the first body section.`,
	},
	{
		ID:           "conclusion",
		Name:         "Conclusion",
		Instructions: `Generate only the "Conclusion" section. Summarize the key points of the article, provide a thought-provoking question or call to action, and leave the reader with a memorable takeaway. Avoid repeating content from the Introduction or Body Sections.`,
	},
}

// BuildBasePrompt renders the guidelines shared by every section.
func BuildBasePrompt(params ArticleParams) string {
	var sb strings.Builder
	sb.WriteString("Generate a high-quality, SEO-optimized, and human-like article using the following guidelines:\n\n")
	sb.WriteString(fmt.Sprintf("Topic: %s\n", params.Title))
	sb.WriteString(fmt.Sprintf("Target audience: %s\n", params.TargetAudience))
	sb.WriteString("Article length: 1000 - 1200 words\n")
	sb.WriteString(fmt.Sprintf("Tone: %s\n\n", params.Tone))
	sb.WriteString(fmt.Sprintf("Primary keywords: %s\n", strings.Join(params.PrimaryKeywords(), ", ")))
	sb.WriteString(fmt.Sprintf("Secondary keywords: %s\n\n", strings.Join(params.SecondaryKeywords(), ", ")))

	sb.WriteString("Article structure:\n")
	sb.WriteString("- Engaging introduction with a hook\n")
	sb.WriteString("- Clear and informative headings and subheadings (use H2, H3, H4, bold tags appropriately)\n")
	sb.WriteString("- Short, easy-to-read paragraphs (3-4 sentences each)\n")
	sb.WriteString("- Bullet points or numbered lists where appropriate\n")
	sb.WriteString("- Include quotes from notable sites or people\n")
	sb.WriteString("- Conclusion with a thought-provoking question\n\n")

	sb.WriteString("SEO optimization:\n")
	sb.WriteString("- Include primary keyword in the first paragraph and headings\n")
	sb.WriteString("- Use secondary keywords naturally throughout\n")
	sb.WriteString("- Include internal and external link placeholders\n")
	sb.WriteString("- Offer a unique perspective or angle on the topic\n")
	sb.WriteString("- Include up-to-date information and recent developments\n")
	sb.WriteString("- Use transitional phrases between paragraphs\n\n")

	sb.WriteString("Content guidelines:\n")
	sb.WriteString(fmt.Sprintf("- Write in a %s tone\n", params.Tone))
	sb.WriteString("- Use active voice and present tense\n")
	sb.WriteString("- Include current statistics and studies\n")
	sb.WriteString("- Provide actionable insights\n")
	sb.WriteString("- Address reader questions proactively\n\n")

	sb.WriteString("Format output in clean, renderable HTML.")
	return sb.String()
}

// BuildSectionPrompt appends the section instructions to the base prompt.
// The prompt never includes text generated for other sections.
func BuildSectionPrompt(base string, section Section, params ArticleParams) Prompt {
	instructions := section.Instructions
	if strings.Contains(instructions, "%s") {
		instructions = fmt.Sprintf(instructions, params.Title)
	}
	return Prompt{
		System:   sectionSystemMessage,
		User:     base + "\n\n" + instructions,
		Sampling: sectionSampling,
	}
}

// BuildImagePrompt asks for short image search terms derived from the title.
func BuildImagePrompt(params ArticleParams) Prompt {
	return Prompt{
		System:   imageSystemMessage,
		User:     fmt.Sprintf("Generate 3 simple, single word image search prompts for Unsplash, one per line, based on the article heading: %s", params.Title),
		Sampling: imageSampling,
	}
}

// ParseImagePrompts keeps at most two non-blank lines of the response.
// Leading list markers ("1.", "-", "*") are dropped; multi-word lines are
// kept as they are.
func ParseImagePrompts(raw string) []string {
	var prompts []string
	for _, line := range strings.Split(raw, "\n") {
		p := trimListMarker(strings.TrimSpace(line))
		if p == "" {
			continue
		}
		prompts = append(prompts, p)
		if len(prompts) == 2 {
			break
		}
	}
	return prompts
}

func trimListMarker(s string) string {
	if strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* ") {
		return strings.TrimSpace(s[2:])
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(s) && (s[i] == '.' || s[i] == ')') && s[i+1] == ' ' {
		return strings.TrimSpace(s[i+2:])
	}
	return s
}
