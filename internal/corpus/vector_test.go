package corpus_test

import (
	"github.com/kritsada/personaguess/internal/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestVectorRoundTrip(t *testing.T) {
	t.Parallel()
	vector := []float32{0.5, -1.25, 0, 3.75}
	decoded, err := corpus.DecodeVector(corpus.EncodeVector(vector))
	require.NoError(t, err)
	assert.Equal(t, vector, decoded)
}

func TestDecodeVector_rejectsTruncatedBlob(t *testing.T) {
	t.Parallel()
	_, err := corpus.DecodeVector([]byte{0x00, 0x00, 0x80})
	assert.Error(t, err)
}

func TestDecodeVector_emptyBlob(t *testing.T) {
	t.Parallel()
	decoded, err := corpus.DecodeVector(nil)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
