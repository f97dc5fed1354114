package main

import (
	"github.com/naucera/iambic/lsp"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var lspFlags = struct {
	maxErrors *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server for grammar files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return lsp.NewServer(version, *lspFlags.maxErrors).RunStdio()
		},
	}
	lspFlags.maxErrors = cmd.Flags().Int("max-errors", 10, "number of syntax errors reported per document")
	rootCmd.AddCommand(cmd)
}
