package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/chazu/mathgen/pkg/fractal"
	"github.com/chazu/mathgen/pkg/params"
	"github.com/spf13/cobra"
)

func newParamsCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the resolved parameters with every default filled in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.parameters(cmd.Context())
			if err != nil {
				return err
			}
			out, err := params.Marshal(params.Encode(p), params.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(params.FormatTOML), "output format (toml, yaml, json)")
	return cmd
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report degenerate parameter values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.parameters(cmd.Context())
			if err != nil {
				return err
			}
			findings := params.Lint(p)
			out := cmd.OutOrStdout()
			if len(findings) == 0 {
				fmt.Fprintln(out, "ok")
				return nil
			}
			for _, f := range findings {
				fmt.Fprintln(out, f)
			}
			return nil
		},
	}
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List generator kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, k := range fractal.Kinds() {
				var notes []string
				if k == fractal.KindMandelbox {
					notes = append(notes, "default")
				}
				if k.Extension() {
					c := fractal.DefaultConstants(k)
					for _, name := range slices.Sorted(maps.Keys(c)) {
						notes = append(notes, fmt.Sprintf("%s=%g", name, c[name]))
					}
				}
				fmt.Fprintf(out, "%-22s %v\n", k, notes)
			}
			return nil
		},
	}
}
