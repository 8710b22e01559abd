package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "List the languages supported by the parser API",
	Args:  cobra.NoArgs,
	RunE:  runDrivers,
}

func init() {
	driversCmd.Flags().Bool("json", false, "print the raw driver list as JSON")

	rootCmd.AddCommand(driversCmd)
}

func runDrivers(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	drivers, err := a.client().ListDrivers(cmd.Context())
	if err != nil {
		return fmt.Errorf("list drivers: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(drivers)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tNAME\tDRIVER CODE")
	for _, d := range drivers {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Language, d.Name, d.URL)
	}
	return tw.Flush()
}
