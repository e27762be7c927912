package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd(cfg Config) *cobra.Command {
	var format string

	root := &cobra.Command{
		Use:           "delaylab",
		Short:         "Transmission vs. congestion delay analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatTable, formatCSV, formatJSON:
				return nil
			}
			return fmt.Errorf("unknown --format %q (want table, csv or json)", format)
		},
	}
	root.PersistentFlags().StringVarP(&format, "format", "o", cfg.Format, "Output format: table, csv or json")

	formatOf := func() string { return format }
	root.AddCommand(
		newComputeCmd(cfg, formatOf),
		newPathCmd(cfg, formatOf),
		newBacklogCmd(formatOf),
		newMM1Cmd(formatOf),
		newSweepCmd(cfg, formatOf),
	)
	return root
}
