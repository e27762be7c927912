package main

import (
	"log/slog"

	"github.com/alexshd/delaylab"
	"github.com/spf13/cobra"
)

func addRequestFlags(cmd *cobra.Command, req *delaylab.DelayRequest) {
	cmd.Flags().Float64Var(&req.PacketSizeBits, "packet-bits", 0, "Packet size in bits")
	cmd.Flags().Float64Var(&req.BandwidthBitsPerSecond, "bandwidth", 0, "Link bandwidth in bits/sec")
	cmd.Flags().Float64Var(&req.TrafficLoad, "load", 0, "Offered traffic load (same unit as --capacity)")
	cmd.Flags().Float64Var(&req.LinkCapacity, "capacity", 0, "Link capacity for the queuing term")
	for _, name := range []string{"packet-bits", "bandwidth", "load", "capacity"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func newComputeCmd(cfg Config, format func() string) *cobra.Command {
	var (
		req   delaylab.DelayRequest
		model = delaylab.CongestionModel{ServiceTime: cfg.ServiceTime}
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute transmission, congestion and total delay for one link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := model.Compute(req)
			if err != nil {
				return err
			}
			slog.Debug("computed delay",
				"utilization", req.Utilization(),
				"service_time", model.ServiceTime)

			return report{
				columns: []string{"transmission_s", "congestion_s", "total_s"},
				rows: [][]float64{{
					res.TransmissionDelaySeconds,
					res.CongestionDelaySeconds,
					res.TotalLatencySeconds,
				}},
			}.write(cmd.OutOrStdout(), format())
		},
	}
	addRequestFlags(cmd, &req)
	cmd.Flags().Float64Var(&model.ServiceTime, "service-time", cfg.ServiceTime, "Congestion service-time constant S")
	return cmd
}

func newPathCmd(cfg Config, format func() string) *cobra.Command {
	var (
		req   delaylab.PathRequest
		model = delaylab.CongestionModel{ServiceTime: cfg.ServiceTime}
	)

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Add propagation delay over a distance to the link delays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := model.ComputePath(req)
			if err != nil {
				return err
			}
			return report{
				columns: []string{"transmission_s", "propagation_s", "congestion_s", "total_s"},
				rows: [][]float64{{
					res.TransmissionDelaySeconds,
					res.PropagationDelaySeconds,
					res.CongestionDelaySeconds,
					res.TotalDelaySeconds,
				}},
			}.write(cmd.OutOrStdout(), format())
		},
	}
	addRequestFlags(cmd, &req.Delay)
	cmd.Flags().Float64Var(&model.ServiceTime, "service-time", cfg.ServiceTime, "Congestion service-time constant S")
	cmd.Flags().Float64Var(&req.DistanceKm, "distance-km", 0, "Path length in km")
	cmd.Flags().Float64Var(&req.PropagationSpeedKmPerSecond, "speed-kmps", delaylab.FiberPropagationSpeed, "Signal speed in km/s")
	return cmd
}

func newBacklogCmd(format func() string) *cobra.Command {
	var queueLength, arrivalRate, serviceRate float64

	cmd := &cobra.Command{
		Use:   "backlog",
		Short: "Time to drain a queue at the given arrival and service rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := delaylab.BacklogDelay(queueLength, arrivalRate, serviceRate)
			if err != nil {
				return err
			}
			return report{
				columns: []string{"backlog_s"},
				rows:    [][]float64{{d}},
			}.write(cmd.OutOrStdout(), format())
		},
	}
	cmd.Flags().Float64Var(&queueLength, "queue-length", 0, "Packets already queued")
	cmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 0, "Arrival rate, packets/sec")
	cmd.Flags().Float64Var(&serviceRate, "service-rate", 0, "Service rate, packets/sec")
	_ = cmd.MarkFlagRequired("arrival-rate")
	_ = cmd.MarkFlagRequired("service-rate")
	return cmd
}

func newMM1Cmd(format func() string) *cobra.Command {
	var (
		link = delaylab.DefaultSweepConfig().Link
		rho  float64
	)

	cmd := &cobra.Command{
		Use:   "mm1",
		Short: "Closed-form M/M/1 delays for a link at utilization rho",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := link.Analyze(rho)
			if err != nil {
				return err
			}
			return report{
				columns: []string{"rho", "arrival_rate_pkts_s", "service_rate_pkts_s", "tx_delay_s", "queue_delay_s", "total_delay_s", "mean_in_system"},
				rows: [][]float64{{
					q.Rho, q.ArrivalRate, q.ServiceRate, q.TransmissionDelay, q.QueueDelay, q.TotalDelay, q.MeanInSystem,
				}},
			}.write(cmd.OutOrStdout(), format())
		},
	}
	addLinkFlags(cmd, &link)
	cmd.Flags().Float64Var(&rho, "rho", 0, "Utilization λ/μ, 0 < rho < 1")
	_ = cmd.MarkFlagRequired("rho")
	return cmd
}

func addLinkFlags(cmd *cobra.Command, link *delaylab.Link) {
	cmd.Flags().Float64Var(&link.PacketSizeBytes, "packet-bytes", link.PacketSizeBytes, "Packet size in bytes")
	cmd.Flags().Float64Var(&link.BandwidthBitsPerSecond, "bandwidth", link.BandwidthBitsPerSecond, "Link bandwidth in bits/sec")
}
