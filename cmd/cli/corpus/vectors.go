package corpus

import (
	"context"
	"fmt"
	"github.com/kritsada/personaguess/internal/ai"
	"github.com/kritsada/personaguess/internal/corpus"
	"github.com/spf13/cobra"
	"os"
	"strings"
)

var Vectors = &cobra.Command{
	Use:     "vectors [person-id] [narrative...]",
	GroupID: "corpus",
	Short:   "Regenerate a narrative vector",
	Long:    "Embeds the given narrative text with OpenAI and stores it as the person's narrative vector",
	Args:    cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		db, index, err := openIndex(ctx)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "vectors error: %v\n", err)
			os.Exit(1)
		}

		personID := args[0]
		if _, ok := index.Get(personID); !ok {
			_, _ = fmt.Fprintf(os.Stderr, "person %s not in corpus\n", personID)
			os.Exit(1)
		}
		narrative := strings.Join(args[1:], " ")

		client := ai.NewClient()
		vectors, err := client.Embed(ctx, []string{narrative})
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "vectors error: %v\n", err)
			os.Exit(1)
		}

		if _, err = db.ReadWrite.ExecContext(ctx,
			`INSERT INTO narrative_vectors (person_qid, embedding) VALUES (?, ?)
			 ON CONFLICT (person_qid) DO UPDATE SET embedding = excluded.embedding`,
			personID, corpus.EncodeVector(vectors[0]),
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "vectors error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("stored %d-dimensional narrative vector for %s\n", len(vectors[0]), personID)
	},
}
