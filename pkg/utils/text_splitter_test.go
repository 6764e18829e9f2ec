package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		want      []string
	}{
		{
			name:      "shorter than chunk size returns one chunk",
			text:      "horario de atencion",
			chunkSize: 100,
			overlap:   10,
			want:      []string{"horario de atencion"},
		},
		{
			name:      "overlap repeats boundary content",
			text:      "0123456789",
			chunkSize: 5,
			overlap:   2,
			want:      []string{"01234", "34567", "6789"},
		},
		{
			name:      "boundary snaps back to whitespace",
			text:      "abcdefghi jklmnopqrs",
			chunkSize: 10,
			overlap:   0,
			want:      []string{"abcdefghi", " jklmnopqr", "s"},
		},
		{
			name:      "overlap larger than chunk still advances",
			text:      "abcdefgh",
			chunkSize: 4,
			overlap:   4,
			want:      []string{"abcd", "efgh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitText(tt.text, tt.chunkSize, tt.overlap))
		})
	}
}

func TestChunkDocumentShortContent(t *testing.T) {
	text := "los laboratorios de computacion estan abiertos de lunes a viernes"

	assert.Equal(t, []string{text}, ChunkDocument(text))
}
