// Package corpus groups the corpus maintenance commands.
package corpus

import (
	"context"
	"github.com/kritsada/personaguess/internal/corpus"
	"github.com/kritsada/personaguess/internal/errors"
	"github.com/kritsada/personaguess/internal/sqlite"
	"github.com/kritsada/personaguess/internal/testhelpers"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"os"
)

var Group = &cobra.Group{
	ID:    "corpus",
	Title: "Corpus operations",
}

// openIndex opens the database from PERSONAGUESS_SQLITE_URL and loads the
// corpus. The CLI logs quietly unless PERSONAGUESS_CLI_VERBOSE is set.
func openIndex(ctx context.Context) (*sqlite.Database, *corpus.Index, error) {
	url, ok := os.LookupEnv("PERSONAGUESS_SQLITE_URL")
	if !ok {
		return nil, nil, errors.New("PERSONAGUESS_SQLITE_URL not set")
	}

	var logSink io.Writer = io.Discard
	if _, verbose := os.LookupEnv("PERSONAGUESS_CLI_VERBOSE"); verbose {
		logSink = os.Stderr
	}
	logger := testhelpers.NewLogger(logSink)

	db, err := sqlite.NewDatabase(ctx, url, logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open database", slog.String("url", url))
	}
	index, err := corpus.Load(ctx, db, logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load corpus")
	}
	return db, index, nil
}
