package main

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/kritsada/personaguess/cmd/cli/corpus"
	"github.com/spf13/cobra"
	"os"
)

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(corpus.Group)
	rootCmd.AddCommand(corpus.Stats)
	rootCmd.AddCommand(corpus.Preview)
	rootCmd.AddCommand(corpus.Vectors)
}

var rootCmd = &cobra.Command{
	Use:  "personaguess-cli",
	Long: `Command line utilities for PersonaGuess`,
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
