package prompt

// Built-in templates used when no file exists under the prompts directory.
// Any unrecognized template name resolves to the final-summary default.
const (
	ChunkSummaryPrompt = "chunk_summary_prompt"
	FinalSummaryPrompt = "final_summary_prompt"
)

const defaultChunkSummaryTemplate = `You are an assistant building course notes for an MBA program.
Summarize the following excerpt of course material into a few dense sentences.
- Keep key concepts, frameworks, names and figures.
- Use the same language as the excerpt.
- Output ONLY the summary text.

EXCERPT:
{{content}}`

const defaultFinalSummaryTemplate = `You are an assistant building course notes for an MBA program.
Write a concise summary of the following course material.
- Course: {{course}}
- Title: {{title}}
- Type: {{type}}
- Keep key concepts, frameworks, names and figures.
- Use the same language as the content.
- Output ONLY the summary text.

CONTENT:
{{content}}`

func defaultTemplate(name string) (string, bool) {
	switch name {
	case ChunkSummaryPrompt:
		return defaultChunkSummaryTemplate, true
	case FinalSummaryPrompt:
		return defaultFinalSummaryTemplate, true
	default:
		return defaultFinalSummaryTemplate, false
	}
}
