package corpus

import (
	"fmt"
	"github.com/kritsada/personaguess/internal/modes"
	"github.com/spf13/cobra"
	"os"
)

var Stats = &cobra.Command{
	Use:     "stats",
	GroupID: "corpus",
	Short:   "Show corpus statistics",
	Long:    "Prints the person count, aspect coverage, and per-mode pool sizes",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		_, index, err := openIndex(ctx)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "stats error: %v\n", err)
			os.Exit(1)
		}

		bundled := 0
		for _, person := range index.All() {
			if person.HasAspectBundle() {
				bundled++
			}
		}
		fmt.Printf("persons: %d\n", index.Len())
		fmt.Printf("aspect bundles: %d\n", bundled)
		fmt.Printf("multi-aspect strategy: %t\n", index.MultiAspectAvailable())
		fmt.Println()

		for _, mode := range modes.NewCatalog().All() {
			fmt.Printf("%-18s %s %4d persons\n", mode.ID, mode.Icon, len(mode.Filter(index)))
		}
	},
}
