package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dusk-indust/uastdash/internal/api"
	"github.com/spf13/cobra"
)

var gistCmd = &cobra.Command{
	Use:   "gist <path>",
	Short: "Fetch a gist through the parser API",
	Long: `Fetch a raw gist through the parser API and print it. The path is
relative to the configured gist base URL, for example
user/0123abcd/raw/main.go.`,
	Args: cobra.ExactArgs(1),
	RunE: runGist,
}

func init() {
	rootCmd.AddCommand(gistCmd)
}

func runGist(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	content, err := a.client().GetGist(cmd.Context(), args[0])
	if err != nil {
		var list api.ErrorList
		if errors.As(err, &list) && len(list) > 0 {
			return fmt.Errorf("gist %s: %s", args[0], strings.Join(list, "; "))
		}
		return fmt.Errorf("gist %s: %w", args[0], err)
	}

	fmt.Fprint(cmd.OutOrStdout(), content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
