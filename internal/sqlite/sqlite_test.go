package sqlite_test

import (
	"context"
	"github.com/kritsada/personaguess/internal/sqlite"
	"github.com/kritsada/personaguess/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func TestNewDatabase_seedsSampleCorpus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := sqlite.NewDatabase(ctx, ":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)

	var personCount int
	err = db.ReadOnly.QueryRowContext(ctx, `SELECT COUNT(*) FROM persons`).Scan(&personCount)
	require.NoError(t, err)
	require.Greater(t, personCount, 0)

	// Every person in the sample corpus carries a narrative vector, the five
	// aspect embeddings, and metadata.
	var vectorCount, aspectCount, metadataCount int
	require.NoError(t,
		db.ReadOnly.QueryRowContext(ctx, `SELECT COUNT(*) FROM narrative_vectors`).Scan(&vectorCount))
	require.NoError(t,
		db.ReadOnly.QueryRowContext(ctx, `SELECT COUNT(DISTINCT person_qid) FROM aspect_embeddings`).Scan(&aspectCount))
	require.NoError(t,
		db.ReadOnly.QueryRowContext(ctx, `SELECT COUNT(*) FROM person_metadata`).Scan(&metadataCount))
	require.Equal(t, personCount, vectorCount)
	require.Equal(t, personCount, aspectCount)
	require.Equal(t, personCount, metadataCount)
}

func TestNewDatabase_idempotentSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := testhelpers.NewLogger(io.Discard)
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	require.NoError(t, err)

	var before int
	require.NoError(t, db.ReadOnly.QueryRowContext(ctx, `SELECT COUNT(*) FROM persons`).Scan(&before))

	// A second migration against the same handle must not duplicate the corpus.
	db2, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	require.NoError(t, err)
	var after int
	require.NoError(t, db2.ReadOnly.QueryRowContext(ctx, `SELECT COUNT(*) FROM persons`).Scan(&after))
	require.Equal(t, before, after)
}
