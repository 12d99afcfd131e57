package prompt

import "fmt"

// DefaultLanguage is used when the caller does not name a language
const DefaultLanguage = "Deutsch"

// questionTemplate asks for one deep question of a category in a language.
// Category and language are interpolated verbatim.
const questionTemplate = `Stelle eine tiefgründige Frage aus der Kategorie "%s" auf %s.`

// Builder builds prompts for question generation
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

// BuildQuestionPrompt builds the user instruction for one generated question
func (b *Builder) BuildQuestionPrompt(category, lang string) string {
	if lang == "" {
		lang = DefaultLanguage
	}
	return fmt.Sprintf(questionTemplate, category, lang)
}

// BuildSystemPrompt returns the system instruction constraining the answer to a single short question
func (b *Builder) BuildSystemPrompt() (string, error) {
	return b.loader.GetSystemPrompt()
}
