package main

import (
	"log/slog"

	"github.com/alexshd/delaylab"
	"github.com/spf13/cobra"
)

func newSweepCmd(cfg Config, format func() string) *cobra.Command {
	sc := delaylab.DefaultSweepConfig()
	sc.SimDuration = cfg.SimSeconds
	sc.Seed = cfg.Seed

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Simulate M/M/1 and M/D/1 queues across utilizations and compare with M/M/1 theory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc.Logger = slog.Default()
			rows, err := delaylab.Sweep(cmd.Context(), sc)
			if err != nil {
				return err
			}

			r := report{columns: []string{
				"rho", "arrival_rate_pkts_s", "service_rate_pkts_s", "tx_delay_s",
				"sim_total_mm1_s", "sim_queue_mm1_s", "sim_total_md1_s", "sim_queue_md1_s",
				"analytic_mm1_total_s", "analytic_mm1_queue_s",
			}}
			for _, row := range rows {
				r.rows = append(r.rows, []float64{
					row.Rho, row.ArrivalRate, row.ServiceRate, row.TransmissionDelay,
					row.SimTotalMM1, row.SimQueueMM1, row.SimTotalMD1, row.SimQueueMD1,
					row.AnalyticTotalMM1, row.AnalyticQueueMM1,
				})
			}
			return r.write(cmd.OutOrStdout(), format())
		},
	}
	addLinkFlags(cmd, &sc.Link)
	cmd.Flags().Float64SliceVar(&sc.Rhos, "rhos", sc.Rhos, "Utilizations to simulate")
	cmd.Flags().Float64Var(&sc.SimDuration, "sim-seconds", sc.SimDuration, "Simulated seconds per point")
	cmd.Flags().IntVar(&sc.MaxPackets, "max-packets", sc.MaxPackets, "Arrival cap per simulation")
	cmd.Flags().Int64Var(&sc.Seed, "seed", sc.Seed, "Random seed")
	return cmd
}
