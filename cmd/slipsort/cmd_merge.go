package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/payrollkit/slipsort/internal/route"
)

var mergeFlags struct {
	out string
}

var mergeCmd = &cobra.Command{
	Use:   "merge -o <out.pdf> <in.pdf>...",
	Short: "Concatenate PDF files into one document",
	Long: `Merge previously routed (or any other) PDF files into a single
document, preserving input order. Unreadable inputs are skipped with a
warning.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if mergeFlags.out == "" {
			return fmt.Errorf("--out is required")
		}
		router := route.NewPDFRouter(cfg.Output.Root, nil)
		if err := router.MergeFiles(cmd.Context(), args, mergeFlags.out); err != nil {
			return err
		}
		fmt.Printf("merged %d file(s) into %s\n", len(args), mergeFlags.out)
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeFlags.out, "out", "o", "", "Destination PDF path")
}
