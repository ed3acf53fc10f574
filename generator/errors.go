package generator

import "fmt"

// Stages reported by GenerationError.
const (
	StageSection      = "section"
	StageImagePrompts = "image_prompts"
)

// GenerationError is returned when any text-generation call fails. Sections
// completed before the failure are discarded.
type GenerationError struct {
	Stage   string // StageSection or StageImagePrompts
	Section string // section name, empty for StageImagePrompts
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("failed to generate article content: %s %q: %v", e.Stage, e.Section, e.Err)
	}
	return fmt.Sprintf("failed to generate article content: %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
