package rag

import "strings"

// ChunkText splits text into a sequence of chunks of at most size runes,
// with consecutive chunks overlapping by overlap runes. Cuts prefer the
// last newline inside the window when it lies far enough past the window
// start to keep the walk moving forward. The boundaries are a pure
// function of (text, size, overlap).
//
// Empty or whitespace-only text yields no chunks. Text shorter than size
// yields exactly one chunk.
func ChunkText(text string, size, overlap int) []string {
	text = strings.ReplaceAll(text, "\r", "")
	runes := []rune(strings.TrimSpace(text))
	n := len(runes)
	if n == 0 {
		return nil
	}
	if size <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var chunks []string
	start := 0
	for start < n {
		end := start + size
		if end > n {
			end = n
		}
		cut := end
		if end < n {
			if nl := lastNewline(runes, start, end); nl > start+overlap {
				cut = nl
			}
		}
		if seg := strings.TrimSpace(string(runes[start:cut])); seg != "" {
			chunks = append(chunks, seg)
		}
		if cut >= n {
			break
		}
		start = cut - overlap
	}
	return chunks
}

// ChunkDocument turns a document into indexable chunks, assigning
// sequence indexes in text order.
func ChunkDocument(doc Document, area string, size, overlap int) []Chunk {
	parts := ChunkText(doc.Text, size, overlap)
	chunks := make([]Chunk, 0, len(parts))
	for i, p := range parts {
		chunks = append(chunks, Chunk{
			DocumentID: doc.ID,
			Seq:        i,
			Text:       p,
			Area:       area,
		})
	}
	return chunks
}

func lastNewline(runes []rune, start, end int) int {
	for i := end - 1; i > start; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}
