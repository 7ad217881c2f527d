package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/chazu/mathgen/pkg/params"
	"github.com/chazu/mathgen/pkg/preset"
	"github.com/spf13/cobra"
)

func newPresetCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage stored configurations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "save NAME",
			Short: "Resolve the current configuration and store it as NAME",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := opts.parameters(cmd.Context())
				if err != nil {
					return err
				}
				return withStore(opts, func(s *preset.Store) error {
					rec, err := s.Save(args[0], p)
					if err != nil {
						return err
					}
					opts.logger.Info("saved preset", "name", rec.Name, "id", rec.ID, "generator", rec.Generator)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored presets",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(opts, func(s *preset.Store) error {
					recs, err := s.List()
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "NAME\tGENERATOR\tUPDATED")
					for _, r := range recs {
						fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Generator, r.UpdatedAt.Format(time.RFC3339))
					}
					return tw.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "show NAME",
			Short: "Print a stored preset",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(opts, func(s *preset.Store) error {
					rec, err := s.Get(args[0])
					if err != nil {
						return err
					}
					out, err := params.Marshal(params.Encode(rec.Parameters), params.FormatTOML)
					if err != nil {
						return err
					}
					_, err = cmd.OutOrStdout().Write(out)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Remove a stored preset",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(opts, func(s *preset.Store) error {
					return s.Delete(args[0])
				})
			},
		},
	)
	return cmd
}

func withStore(opts *options, fn func(*preset.Store) error) error {
	s, err := preset.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
