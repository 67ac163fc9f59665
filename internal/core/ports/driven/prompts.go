package driven

// Prompt names used by the answer composer.
const (
	// PromptAdvisorSystem is the system instruction fixing the
	// assistant's role as a strategic business advisor.
	PromptAdvisorSystem = "advisor_system"

	// PromptAnalysisTemplate is the user-turn template. It takes two
	// placeholders in order: the assembled context and the query.
	PromptAnalysisTemplate = "analysis_template"
)

// PromptStore provides prompt text by name.
// Implementations may load user-edited files with embedded defaults.
type PromptStore interface {
	// Load returns the prompt text for the given name.
	Load(name string) (string, error)
}
