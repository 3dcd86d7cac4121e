package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/schemagen"
)

// userProfile mirrors a typical account record with a nested optional
// preferences object.
func userProfile() schemagen.Schema {
	return schemagen.Object(
		schemagen.Prop("id", schemagen.Integer(1, 1000)),
		schemagen.Prop("name", schemagen.String(3, 10)),
		schemagen.Prop("email", schemagen.String(5, 20)),
		schemagen.Prop("isActive", schemagen.Boolean()),
		schemagen.Prop("age", schemagen.Integer(18, 99)),
		schemagen.Prop("preferences", schemagen.Object(
			schemagen.Prop("notifications", schemagen.Boolean()),
			schemagen.Prop("theme", schemagen.Enum("light", "dark")),
		)),
	).Require("id", "name", "isActive")
}

func uniqueNumbers() schemagen.Schema {
	return schemagen.Array(schemagen.Integer(1, 10)).Len(5, 5).Unique()
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Print a sample user profile and a unique integer array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.generator()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range []struct {
				title string
				s     schemagen.Schema
			}{
				{"Random Generated Data:", userProfile()},
				{"Random Generated Array:", uniqueNumbers()},
			} {
				v, err := g.Generate(cmd.Context(), d.s)
				if err != nil {
					return fmt.Errorf("demo %q: %w", d.title, err)
				}
				fmt.Fprintln(out, d.title)
				if err := writeValue(out, v, true); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
