package corpus

import (
	"context"
	"fmt"
	"github.com/kritsada/personaguess/internal/modes"
	"github.com/kritsada/personaguess/internal/ranking"
	"github.com/kritsada/personaguess/internal/similarity"
	"github.com/kritsada/personaguess/internal/testhelpers"
	"github.com/spf13/cobra"
	"io"
	"os"
)

func init() {
	Preview.Flags().String("secret", "", "person id to rank the pool against")
	Preview.Flags().Int("top", 10, "number of rows to print")
}

var Preview = &cobra.Command{
	Use:     "preview [mode]",
	GroupID: "corpus",
	Short:   "Preview a ranking",
	Long:    "Ranks a mode's pool against a chosen secret, the way a game session would",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		_, index, err := openIndex(ctx)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "preview error: %v\n", err)
			os.Exit(1)
		}

		modeID := ""
		if len(args) > 0 {
			modeID = args[0]
		}
		mode := modes.NewCatalog().Resolve(modeID)
		pool := mode.Filter(index)
		if len(pool) == 0 {
			_, _ = fmt.Fprintf(os.Stderr, "mode %s has an empty pool\n", mode.ID)
			os.Exit(1)
		}

		secret, _ := cmd.Flags().GetString("secret")
		if secret == "" {
			secret = pool[0]
		}
		top, _ := cmd.Flags().GetInt("top")

		strategy := similarity.Select(ctx, index, testhelpers.NewLogger(io.Discard))
		entries, err := ranking.Compute(strategy, index, secret, pool)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "preview error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("mode %s, secret %s, strategy %s\n", mode.ID, secret, strategy.Name())
		for _, entry := range entries {
			if entry.Rank > top {
				break
			}
			fmt.Printf("%3d. %-10s %-30s %.4f\n", entry.Rank, entry.ID, entry.Label, entry.Score)
		}
	},
}
