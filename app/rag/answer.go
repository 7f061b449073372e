package rag

// AssembleAnswer builds the caller-facing response. Context and source
// lists are attached only when asked for, and only ever from the
// passages that were actually part of the prompt.
func AssembleAnswer(text string, included []ScoredChunk, q Query) Answer {
	answer := Answer{Text: text}

	if q.WithContext {
		for _, r := range included {
			answer.Context = append(answer.Context, r.Chunk.Text)
		}
	}
	if q.WithSources {
		for _, r := range included {
			answer.Sources = append(answer.Sources, SourceRef{
				DocumentID: r.Chunk.DocumentID,
				ChunkSeq:   r.Chunk.Seq,
			})
		}
	}
	return answer
}
