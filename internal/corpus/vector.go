package corpus

import (
	"encoding/binary"
	"github.com/kritsada/personaguess/internal/errors"
	"log/slog"
	"math"
)

// Embeddings are stored as little-endian float32 BLOBs, four bytes per
// dimension.

// DecodeVector converts a stored embedding BLOB back into a vector.
func DecodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, errors.New("embedding blob length not a multiple of 4", slog.Int("length", len(blob)))
	}
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		bits := binary.LittleEndian.Uint32(blob[i*4:])
		vector[i] = math.Float32frombits(bits)
	}
	return vector, nil
}

// EncodeVector converts a vector into its stored BLOB form.
func EncodeVector(vector []float32) []byte {
	blob := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}
