package delaylab

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"
)

// ServiceSampler draws one service time, in seconds.
type ServiceSampler func(r *rand.Rand) float64

// ExponentialService samples exponentially distributed service times (M/M/1).
func ExponentialService(mean float64) ServiceSampler {
	return func(r *rand.Rand) float64 {
		return r.ExpFloat64() * mean
	}
}

// DeterministicService always returns mean (M/D/1).
func DeterministicService(mean float64) ServiceSampler {
	return func(*rand.Rand) float64 {
		return mean
	}
}

// SimConfig controls a single-server FIFO queue simulation.
type SimConfig struct {
	ArrivalRate float64        // λ, Poisson arrivals per second
	Service     ServiceSampler // Service time distribution
	Duration    float64        // Simulated horizon, seconds
	MaxPackets  int            // Stop after this many arrivals
	Seed        int64          // Same seed, same run
	Logger      *slog.Logger   // nil discards
}

// DefaultSimConfig returns a config with the horizon and packet cap filled in.
// ArrivalRate and Service must still be set.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Duration:   120,
		MaxPackets: 2_000_000,
		Seed:       42,
	}
}

// SimResult holds per-packet delays of completed packets, in completion order.
type SimResult struct {
	Delays      []float64 // departure - arrival
	QueueDelays []float64 // service start - arrival
	Arrivals    int       // Packets that entered the system
}

// SimSummary aggregates a SimResult.
type SimSummary struct {
	Completed int
	MeanTotal float64 // NaN when nothing completed
	MeanQueue float64 // 0 when nothing completed
	P50       float64
	P95       float64
	P99       float64
	StdDev    float64
	TailRatio float64 // P99/P50; grows sharply as the queue nears saturation
}

// simPacket tracks one packet through the queue.
type simPacket struct {
	arrival      float64
	startService float64
	departure    float64
}

// ctxCheckEvery is how many events run between context checks.
const ctxCheckEvery = 1024

// Simulate runs a discrete-event simulation of a single-server FIFO queue.
//
// Arrivals are Poisson at cfg.ArrivalRate. An arrival at or before the next
// departure is handled first. The run stops at the horizon or after
// cfg.MaxPackets arrivals; packets still queued or in service are dropped
// from the result.
func Simulate(ctx context.Context, cfg SimConfig) (SimResult, error) {
	if err := cfg.validate(); err != nil {
		return SimResult{}, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	interArrival := func() float64 { return rng.ExpFloat64() / cfg.ArrivalRate }

	var (
		t           float64
		nextArrival = interArrival()
		departure   = math.Inf(1)
		queue       []*simPacket
		serving     *simPacket
		arrivals    int
		events      int
		res         SimResult
	)

	// Sampled service times must be positive and finite.
	startService := func(p *simPacket) error {
		svc := cfg.Service(rng)
		if err := checkPositive("ServiceTime", svc); err != nil {
			return fmt.Errorf("service sampler at t=%.3fs: %w", t, err)
		}
		p.startService = t
		p.departure = t + svc
		departure = p.departure
		serving = p
		return nil
	}

	for t < cfg.Duration && arrivals < cfg.MaxPackets {
		events++
		if events%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return SimResult{}, fmt.Errorf("simulation interrupted at t=%.3fs: %w", t, err)
			}
		}

		if nextArrival <= departure && nextArrival <= cfg.Duration {
			t = nextArrival
			p := &simPacket{arrival: t}
			arrivals++
			if serving == nil {
				if err := startService(p); err != nil {
					return SimResult{}, err
				}
			} else {
				queue = append(queue, p)
			}
			nextArrival = t + interArrival()
			continue
		}

		if departure > cfg.Duration {
			break
		}
		t = departure
		res.Delays = append(res.Delays, serving.departure-serving.arrival)
		res.QueueDelays = append(res.QueueDelays, serving.startService-serving.arrival)

		if len(queue) > 0 {
			next := queue[0]
			queue[0] = nil
			queue = queue[1:]
			if err := startService(next); err != nil {
				return SimResult{}, err
			}
		} else {
			serving = nil
			departure = math.Inf(1)
		}
	}

	res.Arrivals = arrivals
	logger.Debug("simulation finished",
		"arrival_rate", cfg.ArrivalRate,
		"arrivals", arrivals,
		"completed", len(res.Delays),
		"backlog", len(queue))

	return res, nil
}

func (c SimConfig) validate() error {
	if err := checkPositive("ArrivalRate", c.ArrivalRate); err != nil {
		return err
	}
	if err := checkPositive("Duration", c.Duration); err != nil {
		return err
	}
	if c.MaxPackets <= 0 {
		return &InvalidParameterError{Field: "MaxPackets", Value: float64(c.MaxPackets), Reason: ReasonNonPositive}
	}
	if c.Service == nil {
		return fmt.Errorf("%w: Service sampler is nil", ErrInvalidParameter)
	}
	return nil
}

// Summarize computes means, percentiles and the tail ratio of a run.
func (r SimResult) Summarize() SimSummary {
	s := SimSummary{
		Completed: len(r.Delays),
		MeanTotal: math.NaN(),
		P50:       math.NaN(),
		P95:       math.NaN(),
		P99:       math.NaN(),
		StdDev:    math.NaN(),
	}
	if s.Completed == 0 {
		return s
	}

	delays := stats.Float64Data(r.Delays)
	s.MeanTotal, _ = stats.Mean(delays)
	s.MeanQueue, _ = stats.Mean(stats.Float64Data(r.QueueDelays))
	s.StdDev, _ = stats.StandardDeviation(delays)
	s.P50 = percentile(delays, 50)
	s.P95 = percentile(delays, 95)
	s.P99 = percentile(delays, 99)

	if s.P50 > 0 {
		s.TailRatio = s.P99 / s.P50
	}
	return s
}

// percentile falls back to the maximum when the library rejects tiny inputs.
func percentile(data stats.Float64Data, p float64) float64 {
	v, err := stats.Percentile(data, p)
	if err != nil {
		v, _ = stats.Max(data)
	}
	return v
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
