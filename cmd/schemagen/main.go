package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "schemagen",
		Short:         "Generate random data that conforms to a JSON Schema subset",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.seedFlag, "seed", "", "seed for reproducible output (env SCHEMAGEN_SEED)")
	rootCmd.PersistentFlags().StringVar(&a.logLevelFlag, "log-level", "", "debug, info, warn or error (env SCHEMAGEN_LOG_LEVEL)")
	rootCmd.AddCommand(
		newGenerateCmd(a),
		newCheckCmd(a),
		newDemoCmd(a),
	)
	return rootCmd
}
