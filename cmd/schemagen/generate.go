package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/schemagen"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		file   string
		count  int
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate values from a JSON or YAML schema file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			s, err := schemagen.LoadFile(file)
			if err != nil {
				a.log.Error("schema rejected", "file", file, "err", err)
				return fmt.Errorf("loading %s: %w", file, err)
			}
			g, err := a.generator()
			if err != nil {
				return err
			}
			a.log.Debug("schema loaded", "file", file, "kind", s.Kind(), "count", count)
			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				v, err := g.Generate(cmd.Context(), s)
				if err != nil {
					return fmt.Errorf("generating value %d: %w", i+1, err)
				}
				if err := writeValue(out, v, pretty); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "schema file (.json, .yaml or .yml)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of values to generate")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent output")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// writeValue writes v as one JSON document followed by a newline.
func writeValue(w io.Writer, v any, pretty bool) error {
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
