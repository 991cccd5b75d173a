package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextSmallInput(t *testing.T) {
	chunks := ChunkText("short prompt", ChunkOptions{})
	assert.Equal(t, []string{"short prompt"}, chunks)
}

func TestChunkTextParagraphBoundary(t *testing.T) {
	text := strings.Repeat("a", 70) + "\n\n" + strings.Repeat("b", 70)

	chunks := ChunkText(text, ChunkOptions{MaxChunkSize: 100, Overlap: 10})
	require.Len(t, chunks, 2)
	assert.True(t, strings.HasSuffix(chunks[0], "\n\n"), "chunk breaks after the paragraph gap")
	assert.True(t, strings.HasSuffix(chunks[1], strings.Repeat("b", 70)))
}

func TestChunkTextOverlap(t *testing.T) {
	text := strings.Repeat("x", 250)

	chunks := ChunkText(text, ChunkOptions{MaxChunkSize: 100, Overlap: 20})
	require.True(t, len(chunks) >= 2)
	assert.Len(t, chunks[0], 100)
	// Consecutive chunks share Overlap characters.
	assert.Equal(t, chunks[0][80:], chunks[1][:20])

	var total strings.Builder
	total.WriteString(chunks[0])
	for _, c := range chunks[1:] {
		total.WriteString(c[20:])
	}
	assert.Equal(t, text, total.String())
}

func TestChunkTextOversizedOverlapTerminates(t *testing.T) {
	text := strings.Repeat("y", 300)

	// An overlap at or above half the chunk size would stall the window;
	// it gets clamped to a quarter instead.
	chunks := ChunkText(text, ChunkOptions{MaxChunkSize: 100, Overlap: 80})
	require.True(t, len(chunks) >= 2)
	assert.Len(t, chunks[0], 100)
	assert.Equal(t, chunks[0][75:], chunks[1][:25])

	var total strings.Builder
	total.WriteString(chunks[0])
	for _, c := range chunks[1:] {
		total.WriteString(c[25:])
	}
	assert.Equal(t, text, total.String())
}
