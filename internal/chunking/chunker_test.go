package chunking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitIntoChunks_InvalidArguments(t *testing.T) {
	c := NewChunker()

	_, err := c.SplitIntoChunks("abc", 0, 0)
	require.Error(t, err)

	_, err = c.SplitIntoChunks("abc", -1, 0)
	require.Error(t, err)

	_, err = c.SplitIntoChunks("abc", 10, -1)
	require.Error(t, err)

	_, err = c.SplitIntoChunks("abc", 10, 10)
	require.Error(t, err)

	_, err = c.SplitIntoChunks("abc", 10, 15)
	require.Error(t, err)
}

func TestSplitIntoChunks_EmptyText(t *testing.T) {
	c := NewChunker()
	chunks, err := c.SplitIntoChunks("", 10, 2)
	require.NoError(t, err)
	require.Empty(t, chunks)
}

func TestSplitIntoChunks_TextFitsInSingleChunk(t *testing.T) {
	c := NewChunker()

	chunks, err := c.SplitIntoChunks("short text", 100, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"short text"}, chunks)

	exact := strings.Repeat("x", 100)
	chunks, err = c.SplitIntoChunks(exact, 100, 10)
	require.NoError(t, err)
	require.Equal(t, []string{exact}, chunks)
}

func TestSplitIntoChunks_OverlapInvariant(t *testing.T) {
	c := NewChunker()
	text := strings.Repeat("abcdefghij", 100) // 1000 chars
	chunkSize := 300
	overlap := 50

	chunks, err := c.SplitIntoChunks(text, chunkSize, overlap)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i := 0; i < len(chunks)-1; i++ {
		require.Len(t, chunks[i], chunkSize)
		tail := chunks[i][len(chunks[i])-overlap:]
		head := chunks[i+1][:overlap]
		require.Equal(t, tail, head, "chunk %d tail must equal chunk %d head", i, i+1)
	}
	require.LessOrEqual(t, len(chunks[len(chunks)-1]), chunkSize)
}

func TestSplitIntoChunks_ReconstructsOriginal(t *testing.T) {
	c := NewChunker()
	text := strings.Repeat("0123456789", 37)
	chunkSize := 80
	overlap := 15

	chunks, err := c.SplitIntoChunks(text, chunkSize, overlap)
	require.NoError(t, err)

	var sb strings.Builder
	sb.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		sb.WriteString(chunk[overlap:])
	}
	require.Equal(t, text, sb.String())
}

func TestSplitIntoChunks_ZeroOverlapIsContiguous(t *testing.T) {
	c := NewChunker()
	text := "abcdefghij"
	chunks, err := c.SplitIntoChunks(text, 3, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"abc", "def", "ghi", "j"}, chunks)
}

func TestSplitIntoChunks_MultibyteText(t *testing.T) {
	c := NewChunker()
	text := strings.Repeat("日本語のテキスト処理", 20) // 200 runes
	chunks, err := c.SplitIntoChunks(text, 60, 10)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	for i := 0; i < len(chunks)-1; i++ {
		tail := []rune(chunks[i])
		head := []rune(chunks[i+1])
		require.Equal(t, string(tail[len(tail)-10:]), string(head[:10]))
	}
}

func TestEstimateTokenCount(t *testing.T) {
	c := NewChunker()
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "whitespace only", text: "   \t\n  ", want: 0},
		{name: "single char", text: "a", want: 1},
		{name: "four chars", text: "abcd", want: 1},
		{name: "five chars", text: "abcde", want: 2},
		{name: "eight chars", text: "abcdefgh", want: 2},
		{name: "hundred chars", text: strings.Repeat("x", 100), want: 25},
		{name: "hundred and one chars", text: strings.Repeat("x", 101), want: 26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, c.EstimateTokenCount(tt.text))
		})
	}
}
