package utils

// Chunking defaults for imported knowledge-base content. A chunk of this
// size holds roughly a full paragraph of page or PDF text per embedding
// while staying inside provider input limits; the overlap preserves
// sentences that straddle a boundary.
const (
	DocumentChunkSize    = 1500
	DocumentChunkOverlap = 200
)

// ChunkDocument splits imported web page or PDF text with the document
// defaults.
func ChunkDocument(text string) []string {
	return SplitText(text, DocumentChunkSize, DocumentChunkOverlap)
}

// SplitText splits text into rune-based chunks of at most chunkSize with
// the given overlap between consecutive chunks. A boundary snaps back to
// the nearest whitespace when one is close, so words are not cut in half.
func SplitText(text string, chunkSize, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // overlap >= chunkSize would never advance
	}

	var chunks []string
	for start := 0; start < len(runes); {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		if cut := lastBreakBefore(runes, start, end); cut > start {
			end = cut
		}
		chunks = append(chunks, string(runes[start:end]))

		next := end - overlap
		if next <= start {
			next = start + step
		}
		start = next
	}

	return chunks
}

// lastBreakBefore looks for a whitespace rune in the final tenth of the
// chunk. Returns start when none is found, which keeps the hard cut.
func lastBreakBefore(runes []rune, start, end int) int {
	window := (end - start) / 10
	for i := end; i > end-window && i > start; i-- {
		switch runes[i-1] {
		case ' ', '\n', '\t':
			return i - 1
		}
	}
	return start
}
