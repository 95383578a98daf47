package llm

import (
	_ "embed"
	"strings"
)

const resumePlaceholder = "{{RESUME_TEXT}}"

var (
	//go:embed prompts/rewrite_system.txt
	rewriteSystem string
	//go:embed prompts/rewrite_user.txt
	rewriteUser string
	//go:embed prompts/coach.txt
	coachPrompt string
)

// RewriteMessages returns the system and user messages for a chat-style rewrite.
func RewriteMessages(text string) (system, user string) {
	return rewriteSystem, strings.Replace(rewriteUser, resumePlaceholder, text, 1)
}

// CoachPrompt returns the single-turn prompt for a completion-style rewrite.
func CoachPrompt(text string) string {
	return strings.Replace(coachPrompt, resumePlaceholder, text, 1)
}
