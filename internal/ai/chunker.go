package ai

import (
	"strings"
)

const (
	// DefaultChunkSize is the default maximum number of characters per chunk.
	DefaultChunkSize = 100000
	// DefaultChunkOverlap is the number of overlapping characters between chunks.
	DefaultChunkOverlap = 500
)

// ChunkOptions configures how large inputs are split into chunks.
type ChunkOptions struct {
	MaxChunkSize int
	Overlap      int
}

// ChunkText splits text into overlapping chunks for models with input limits,
// preferring paragraph boundaries, then sentence boundaries.
func ChunkText(text string, opts ChunkOptions) []string {
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = DefaultChunkSize
	}
	if opts.Overlap <= 0 {
		opts.Overlap = DefaultChunkOverlap
	}
	// A boundary-preferring break can pull a chunk's end back to just past
	// MaxChunkSize/2, so the overlap must stay below that or the window
	// stops advancing.
	if opts.Overlap >= opts.MaxChunkSize/2 {
		opts.Overlap = opts.MaxChunkSize / 4
	}

	if len(text) <= opts.MaxChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + opts.MaxChunkSize
		if end > len(text) {
			end = len(text)
		}

		if end < len(text) {
			breakPoint := strings.LastIndex(text[start:end], "\n\n")
			if breakPoint > opts.MaxChunkSize/2 {
				end = start + breakPoint + 2
			} else {
				breakPoint = strings.LastIndex(text[start:end], ". ")
				if breakPoint > opts.MaxChunkSize/2 {
					end = start + breakPoint + 2
				}
			}
		}

		chunks = append(chunks, text[start:end])

		if end == len(text) {
			break
		}
		start = end - opts.Overlap
		if start < 0 {
			start = 0
		}
	}

	return chunks
}
