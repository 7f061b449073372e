package rag

import (
	"fmt"
	"strings"

	"AskDocsAI/app/models"
)

const contextSeparator = "\n\n---\n\n"

const systemPrompt = `You are a corporate assistant that answers ONLY from the supporting
context provided with each question. If the answer is not in the context,
say so clearly instead of guessing. Cite the [document#chunk] markers of
the passages you relied on.`

const noContextInstruction = `No supporting context was found in the indexed documents for this
question. Say that the information is not available yet; do not invent an
answer.`

// Prompt is a fully assembled generation request plus the exact passages
// that made it into the context. Passages dropped by the budget are not
// in Included and must never be cited.
type Prompt struct {
	Messages []models.Message
	Included []ScoredChunk
}

// BuildPrompt concatenates passages in rank order under a hard budget of
// context runes. A passage that does not fit is dropped along with every
// lower-ranked one; chunks are never cut mid-text.
func BuildPrompt(question string, results []ScoredChunk, budget int) Prompt {
	var parts []string
	var included []ScoredChunk
	used := 0

	for _, r := range results {
		passage := fmt.Sprintf("[%s#%d] %s", r.Chunk.DocumentID, r.Chunk.Seq, r.Chunk.Text)
		cost := len([]rune(passage))
		if len(parts) > 0 {
			cost += len(contextSeparator)
		}
		if used+cost > budget {
			break
		}
		parts = append(parts, passage)
		included = append(included, r)
		used += cost
	}

	var userContent string
	if len(parts) == 0 {
		userContent = fmt.Sprintf("%s\n\nQuestion:\n%s", noContextInstruction, question)
	} else {
		userContent = fmt.Sprintf(
			"Supporting context (extracted from internal documents):\n\n%s\n\nQuestion:\n%s\n\nIf the information is not in the context, say it is not available.",
			strings.Join(parts, contextSeparator), question)
	}

	return Prompt{
		Messages: []models.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		Included: included,
	}
}
