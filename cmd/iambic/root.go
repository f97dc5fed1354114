package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var rootFlags = struct {
	verbose *int
	logPath *string
}{}

var rootCmd = &cobra.Command{
	Use:   "iambic",
	Short: "Compile parsing expression grammars and parse texts with them",
	Long: `iambic provides the following features:
- Compiles a grammar and prints it in the canonical form.
- Parses a text stream according to the grammar.
  This feature is primarily aimed at debugging the grammar.
- Tests a grammar against expected parse trees.
- Serves grammar diagnostics over the Language Server Protocol.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var path *string
		if *rootFlags.logPath != "" {
			path = rootFlags.logPath
		}
		commonlog.Configure(*rootFlags.verbose, path)
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().CountP("verbose", "v", "add verbosity (can be used multiple times)")
	rootFlags.logPath = rootCmd.PersistentFlags().String("log", "", "log file path (default stderr)")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
