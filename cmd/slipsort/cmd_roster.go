package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rosterCmd = &cobra.Command{
	Use:   "roster <path>",
	Short: "Show the canonical roster a source would produce",
	Long: `Load a roster source (.txt/.csv list, .xlsx sheet, or .db employee
table) and print the canonical name list: trimmed, uppercased,
deduplicated, in the order matching uses.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadRoster(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for i, name := range r.Names() {
			fmt.Printf("%3d  %s\n", i+1, name)
		}
		fmt.Printf("%d name(s)\n", r.Len())
		return nil
	},
}
