package delaylab

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"
)

// SweepConfig controls a utilization sweep over one link.
type SweepConfig struct {
	Link        Link
	Rhos        []float64 // Utilizations to test, each in (0, 1)
	SimDuration float64   // Simulated seconds per point and per discipline
	MaxPackets  int
	Seed        int64
	Logger      *slog.Logger // nil discards
}

// DefaultSweepConfig returns 1500-byte packets on a 10 Mb/s link,
// ρ = 0.05..0.95 in steps of 0.05, 120 simulated seconds per point.
func DefaultSweepConfig() SweepConfig {
	sim := DefaultSimConfig()
	return SweepConfig{
		Link:        Link{PacketSizeBytes: 1500, BandwidthBitsPerSecond: 10_000_000},
		Rhos:        RhoRange(0.05, 0.95, 0.05),
		SimDuration: sim.Duration,
		MaxPackets:  sim.MaxPackets,
		Seed:        sim.Seed,
	}
}

// maxRhoPoints bounds the length of a RhoRange result.
const maxRhoPoints = 1_000_000

// RhoRange returns from, from+step, ... up to and including to (within 1e-9).
// Values are computed by multiplication so they carry no accumulated drift.
// It returns nil for non-finite arguments, an empty range, or more than
// maxRhoPoints values.
func RhoRange(from, to, step float64) []float64 {
	for _, v := range []float64{from, to, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	}
	if step <= 0 || to < from {
		return nil
	}
	span := math.Floor((to-from)/step + 1e-9)
	if math.IsInf(span, 0) || span >= maxRhoPoints {
		return nil
	}
	n := int(span) + 1
	rhos := make([]float64, n)
	for i := range rhos {
		rhos[i] = math.Round((from+float64(i)*step)*1e9) / 1e9
	}
	return rhos
}

// SweepRow compares simulated M/M/1 and M/D/1 delays with the M/M/1 closed form.
type SweepRow struct {
	Rho               float64
	ArrivalRate       float64
	ServiceRate       float64
	TransmissionDelay float64
	MM1               SimSummary
	MD1               SimSummary
	SimTotalMM1       float64
	SimQueueMM1       float64
	SimTotalMD1       float64
	SimQueueMD1       float64
	AnalyticTotalMM1  float64
	AnalyticQueueMM1  float64
}

// Sweep simulates every utilization point concurrently, one errgroup goroutine
// per point, and returns rows in the order of cfg.Rhos. Point i is seeded with cfg.Seed + 2i (M/M/1) and
// cfg.Seed + 2i + 1 (M/D/1), so results do not depend on scheduling.
func Sweep(ctx context.Context, cfg SweepConfig) ([]SweepRow, error) {
	if err := cfg.Link.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Rhos) == 0 {
		return nil, fmt.Errorf("%w: no utilization points", ErrInvalidParameter)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger()
	}

	// Validate every point up front so no goroutine starts on bad input.
	analytic := make([]MM1, len(cfg.Rhos))
	for i, rho := range cfg.Rhos {
		q, err := cfg.Link.Analyze(rho)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		analytic[i] = q
	}

	g, ctx := errgroup.WithContext(ctx)
	rows := make([]SweepRow, len(cfg.Rhos))
	meanServ := cfg.Link.ServiceTime()

	for i := range analytic {
		i := i // per-iteration copy (Go 1.22 loop semantics on go1.21)
		g.Go(func() error {
			q := analytic[i]
			sim := SimConfig{
				ArrivalRate: q.ArrivalRate,
				Duration:    cfg.SimDuration,
				MaxPackets:  cfg.MaxPackets,
				Logger:      logger,
			}

			sim.Service, sim.Seed = ExponentialService(meanServ), cfg.Seed+int64(2*i)
			mm1, err := Simulate(ctx, sim)
			if err != nil {
				return fmt.Errorf("rho=%.3f M/M/1: %w", q.Rho, err)
			}

			sim.Service, sim.Seed = DeterministicService(meanServ), cfg.Seed+int64(2*i+1)
			md1, err := Simulate(ctx, sim)
			if err != nil {
				return fmt.Errorf("rho=%.3f M/D/1: %w", q.Rho, err)
			}

			rows[i] = newSweepRow(q, mm1.Summarize(), md1.Summarize())
			logger.Debug("sweep point done",
				"rho", q.Rho,
				"mm1_total", rows[i].SimTotalMM1,
				"analytic_total", q.TotalDelay)
			return nil
		})
	}

	// The first failing point cancels the rest.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("sweep complete", "points", len(rows), "sim_seconds", cfg.SimDuration)
	return rows, nil
}

func newSweepRow(q MM1, mm1, md1 SimSummary) SweepRow {
	return SweepRow{
		Rho:               q.Rho,
		ArrivalRate:       q.ArrivalRate,
		ServiceRate:       q.ServiceRate,
		TransmissionDelay: q.TransmissionDelay,
		MM1:               mm1,
		MD1:               md1,
		SimTotalMM1:       mm1.MeanTotal,
		SimQueueMM1:       mm1.MeanQueue,
		SimTotalMD1:       md1.MeanTotal,
		SimQueueMD1:       md1.MeanQueue,
		AnalyticTotalMM1:  q.TotalDelay,
		AnalyticQueueMM1:  q.QueueDelay,
	}
}
