package advice

// DefaultSystemPrompt is the coaching persona used when none is configured.
const DefaultSystemPrompt = "You are a wise, compassionate recovery coach. " +
	"The user has just logged a mood. " +
	"Your goal: Validate their feeling in 5 words, then give ONE actionable, " +
	"physical coping strategy (e.g. box breathing, cold water, walk). " +
	"Keep it under 30 words total. Be kind."

// DefaultCandidates lists free hosted models in priority order.
func DefaultCandidates() []string {
	return []string{
		"google/gemini-2.0-flash-exp:free",
		"meta-llama/llama-3.2-3b-instruct:free",
		"deepseek/deepseek-r1:free",
		"mistralai/mistral-7b-instruct:free",
		"google/gemma-2-9b-it:free",
	}
}
