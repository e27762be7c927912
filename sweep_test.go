package delaylab

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func smallSweep() SweepConfig {
	cfg := DefaultSweepConfig()
	cfg.Rhos = []float64{0.2, 0.5, 0.7}
	cfg.SimDuration = 60
	return cfg
}

func TestRhoRange(t *testing.T) {
	rhos := RhoRange(0.05, 0.95, 0.05)
	if len(rhos) != 19 {
		t.Fatalf("expected 19 points, got %d: %v", len(rhos), rhos)
	}
	if rhos[0] != 0.05 || rhos[18] != 0.95 || rhos[9] != 0.5 {
		t.Errorf("unexpected endpoints: %v", rhos)
	}

	if got := RhoRange(0.04, 0.96, 0.04); len(got) != 24 {
		t.Errorf("expected 24 points, got %d", len(got))
	}
	if got := RhoRange(0.5, 0.1, 0.1); got != nil {
		t.Errorf("expected nil for reversed range, got %v", got)
	}
	if got := RhoRange(0.1, 0.5, 0); got != nil {
		t.Errorf("expected nil for zero step, got %v", got)
	}
}

func TestRhoRange_RejectsUnboundedInput(t *testing.T) {
	testCases := []struct {
		name           string
		from, to, step float64
	}{
		{"NaN upper bound", 0.1, math.NaN(), 0.1},
		{"NaN lower bound", math.NaN(), 0.9, 0.1},
		{"NaN step", 0.1, 0.9, math.NaN()},
		{"infinite upper bound", 0.1, math.Inf(1), 0.1},
		{"infinite lower bound", math.Inf(-1), 0.9, 0.1},
		{"infinite step", 0.1, 0.9, math.Inf(1)},
		{"too many points", 0, 1, 1e-12},
		{"span overflows", 0, math.MaxFloat64, math.SmallestNonzeroFloat64},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RhoRange(tc.from, tc.to, tc.step); got != nil {
				t.Errorf("expected nil, got %d points", len(got))
			}
		})
	}

	// A fine grid below the cap is still produced.
	if got := RhoRange(0, 1, 1e-5); len(got) != 100_001 {
		t.Errorf("expected 100001 points, got %d", len(got))
	}
}

func TestSweep_RowsFollowInputOrder(t *testing.T) {
	cfg := smallSweep()

	rows, err := Sweep(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(rows) != len(cfg.Rhos) {
		t.Fatalf("expected %d rows, got %d", len(cfg.Rhos), len(rows))
	}

	mu := cfg.Link.ServiceRate()
	for i, row := range rows {
		if row.Rho != cfg.Rhos[i] {
			t.Errorf("row %d: expected rho %v, got %v", i, cfg.Rhos[i], row.Rho)
		}
		if !approx(row.ServiceRate, mu, 1e-12) {
			t.Errorf("row %d: service rate %v, expected %v", i, row.ServiceRate, mu)
		}
		if !approx(row.AnalyticTotalMM1, 1/(mu-row.ArrivalRate), 1e-9) {
			t.Errorf("row %d: analytic W %v", i, row.AnalyticTotalMM1)
		}

		t.Logf("ρ=%.2f  sim M/M/1=%.6f  sim M/D/1=%.6f  analytic=%.6f",
			row.Rho, row.SimTotalMM1, row.SimTotalMD1, row.AnalyticTotalMM1)

		if !approx(row.SimTotalMM1, row.AnalyticTotalMM1, 0.15) {
			t.Errorf("row %d: simulated M/M/1 W %.6f far from analytic %.6f",
				i, row.SimTotalMM1, row.AnalyticTotalMM1)
		}
		if row.SimTotalMD1 >= row.AnalyticTotalMM1 {
			t.Errorf("row %d: M/D/1 W %.6f should be below M/M/1 W %.6f",
				i, row.SimTotalMD1, row.AnalyticTotalMM1)
		}
		if row.MM1.Completed == 0 || row.MD1.Completed == 0 {
			t.Errorf("row %d: empty simulation", i)
		}
	}

	// Delay grows with utilization.
	for i := 1; i < len(rows); i++ {
		if rows[i].AnalyticTotalMM1 <= rows[i-1].AnalyticTotalMM1 {
			t.Errorf("analytic W not increasing at row %d", i)
		}
	}
}

func TestSweep_Deterministic(t *testing.T) {
	cfg := smallSweep()
	cfg.SimDuration = 10

	a, err := Sweep(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sweep(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different sweeps")
	}
}

func TestSweep_InvalidInput(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*SweepConfig)
	}{
		{"no points", func(c *SweepConfig) { c.Rhos = nil }},
		{"rho at capacity", func(c *SweepConfig) { c.Rhos = []float64{0.5, 1.0} }},
		{"negative rho", func(c *SweepConfig) { c.Rhos = []float64{-0.1} }},
		{"zero bandwidth", func(c *SweepConfig) { c.Link.BandwidthBitsPerSecond = 0 }},
		{"zero duration", func(c *SweepConfig) { c.SimDuration = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := smallSweep()
			tc.mutate(&cfg)
			if _, err := Sweep(context.Background(), cfg); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestSweep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Sweep(ctx, smallSweep()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
