package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/schemagen"
)

var errChecksFailed = errors.New("self checks failed")

func newCheckCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the built-in generator self checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.generator()
			if err != nil {
				return err
			}
			results := schemagen.RunSelfChecks(cmd.Context(), g)
			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeValue(out, results, true); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					status := "PASS"
					if !r.Passed {
						status = "FAIL"
					}
					fmt.Fprintf(out, "%s: %s\n", r.Name, status)
				}
			}
			failed := 0
			for _, r := range results {
				if !r.Passed {
					failed++
				}
			}
			a.log.Info("self checks finished", "total", len(results), "failed", failed)
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errChecksFailed, failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}
