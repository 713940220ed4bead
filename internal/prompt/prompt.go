// Package prompt assembles the single opaque text blob sent to every
// backend: reasoning system instruction, per-mode output format, the user
// input, attached file blocks, and a note for files that could not be read.
package prompt

import "strings"

const DefaultMode = "memo"

const systemPrompt = `You are a reasoning assistant providing a second opinion.

Analyze the input provided and give your perspective. If file contents are attached, analyze them as given.

Be direct and helpful. Skip meta-commentary about what you can or can't do - just answer the question.`

// outputFormats holds the format instruction appended for each output mode.
var outputFormats = map[string]string{
	"memo": `
OUTPUT FORMAT - Structure your response as a memo:

## Summary
[2-3 sentence overview of the core insight]

## Key Assumptions
[Bullet list of assumptions you're making]

## Analysis
[Deep reasoning about the topic - this is the main section]

## Options
[If applicable: different approaches or perspectives]

## Risks
[Potential downsides, blind spots, or concerns]

## Recommendation
[Your synthesized recommendation or conclusion]

## Next Questions
[Questions that would help refine the thinking further]

Keep it concise but deep. Prioritize insight over length.`,

	"bullets": `
OUTPUT FORMAT - Bullet points only:
- Provide your analysis as clear, concise bullet points
- Each bullet should be a distinct insight or observation
- Group related points together
- No headers or sections, just bullets
- Aim for 5-15 bullets depending on complexity`,

	"questions": `
OUTPUT FORMAT - Questions only:
- Generate probing questions that would help think through this topic
- Include questions that challenge assumptions
- Include questions that explore implications
- Include questions that identify unknowns
- Aim for 5-10 high-quality questions
- Just list the questions, no other commentary`,

	"quick": `
OUTPUT FORMAT - Quick response:
- Give a direct, concise answer
- No sections or formatting
- 2-5 sentences max`,
}

// Modes returns the recognized output modes.
func Modes() []string {
	return []string{"memo", "bullets", "questions", "quick"}
}

// Build assembles the full prompt. An unrecognized mode falls back to memo.
// fileBlocks are pre-resolved attachment blocks; fileErrors are noted inline
// so the model knows some context is missing.
func Build(input, mode string, fileBlocks, fileErrors []string) string {
	format, ok := outputFormats[mode]
	if !ok {
		format = outputFormats[DefaultMode]
	}

	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n")
	sb.WriteString(format)
	sb.WriteString("\n\n---\n\nUSER INPUT:\n")
	sb.WriteString(input)

	if len(fileBlocks) > 0 {
		sb.WriteString("\n\n--- ATTACHED FILES ---\n")
		sb.WriteString(strings.Join(fileBlocks, "\n\n"))
		sb.WriteString("\n--- END ATTACHED FILES ---")
	}

	if len(fileErrors) > 0 {
		sb.WriteString("\n\n(Note: Some files could not be read: ")
		sb.WriteString(strings.Join(fileErrors, "; "))
		sb.WriteString(")")
	}

	return sb.String()
}
