package generator

// ArticleParams describes the article the caller wants written.
type ArticleParams struct {
	Title          string   `json:"title"`
	TargetAudience string   `json:"target_audience"`
	Tone           string   `json:"tone"`
	Keywords       []string `json:"keywords"`
}

// PrimaryKeywords returns the first three keywords.
func (p ArticleParams) PrimaryKeywords() []string {
	if len(p.Keywords) <= 3 {
		return p.Keywords
	}
	return p.Keywords[:3]
}

// SecondaryKeywords returns every keyword after the first three.
func (p ArticleParams) SecondaryKeywords() []string {
	if len(p.Keywords) <= 3 {
		return nil
	}
	return p.Keywords[3:]
}

// GeneratedContent is the cleaned article HTML plus the image search terms
// derived from its title.
type GeneratedContent struct {
	HTML         string   `json:"html"`
	ImagePrompts []string `json:"image_prompts"`
}

// Section is one fixed division of the article.
type Section struct {
	ID           string
	Name         string
	Instructions string
}
