package delaylab

import (
	"errors"
	"math"
	"testing"
)

func TestPropagationDelay(t *testing.T) {
	testCases := []struct {
		name     string
		distance float64
		speed    float64
		want     float64
	}{
		{"1000km of fiber", 1000, FiberPropagationSpeed, 0.005},
		{"co-located", 0, FiberPropagationSpeed, 0},
		{"copper at 0.77c", 231, 231_000, 0.001},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PropagationDelay(tc.distance, tc.speed)
			if err != nil {
				t.Fatalf("PropagationDelay failed: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-15 {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPropagationDelay_Invalid(t *testing.T) {
	testCases := []struct {
		distance, speed float64
		field           string
	}{
		{-1, FiberPropagationSpeed, "DistanceKm"},
		{math.NaN(), FiberPropagationSpeed, "DistanceKm"},
		{100, 0, "PropagationSpeedKmPerSecond"},
		{100, -5, "PropagationSpeedKmPerSecond"},
	}

	for _, tc := range testCases {
		_, err := PropagationDelay(tc.distance, tc.speed)
		var ipe *InvalidParameterError
		if !errors.As(err, &ipe) || ipe.Field != tc.field {
			t.Errorf("(%v, %v): expected %s error, got %v", tc.distance, tc.speed, tc.field, err)
		}
	}
}

// TestComputePath_ReferenceReport reproduces the sample report of the original
// analyzer: 8000 bits at 1 Mb/s over 1000 km, 10 queued packets at λ=5, μ=10.
func TestComputePath_ReferenceReport(t *testing.T) {
	// λ=5, μ=10 with S=1 gives 5/(10-5) = 1s of congestion.
	res, err := ComputePath(PathRequest{
		Delay: DelayRequest{
			PacketSizeBits:         8000,
			BandwidthBitsPerSecond: 1_000_000,
			TrafficLoad:            5,
			LinkCapacity:           10,
		},
		DistanceKm: 1000,
	})
	if err != nil {
		t.Fatalf("ComputePath failed: %v", err)
	}

	if res.TransmissionDelaySeconds != 0.008 {
		t.Errorf("transmission: expected 0.008, got %v", res.TransmissionDelaySeconds)
	}
	if res.PropagationDelaySeconds != 0.005 {
		t.Errorf("propagation: expected 0.005, got %v", res.PropagationDelaySeconds)
	}
	if res.CongestionDelaySeconds != 1 {
		t.Errorf("congestion: expected 1, got %v", res.CongestionDelaySeconds)
	}
	if math.Abs(res.TotalDelaySeconds-1.013) > 1e-12 {
		t.Errorf("total: expected 1.013, got %v", res.TotalDelaySeconds)
	}

	backlog, err := BacklogDelay(10, 5, 10)
	if err != nil {
		t.Fatalf("BacklogDelay failed: %v", err)
	}
	if backlog != 2 {
		t.Errorf("backlog: expected 2, got %v", backlog)
	}
}

func TestComputePath_PropagatesLinkErrors(t *testing.T) {
	req := PathRequest{Delay: validRequest(), DistanceKm: 10}
	req.Delay.TrafficLoad = req.Delay.LinkCapacity

	_, err := ComputePath(req)
	var ipe *InvalidParameterError
	if !errors.As(err, &ipe) || ipe.Reason != ReasonOverCapacity {
		t.Errorf("expected over-capacity error, got %v", err)
	}

	req = PathRequest{Delay: validRequest(), DistanceKm: -1}
	if _, err := ComputePath(req); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected invalid distance error, got %v", err)
	}
}

func TestBacklogDelay(t *testing.T) {
	testCases := []struct {
		name                  string
		queue, arrival, serve float64
		want                  float64
		wantErr               bool
	}{
		{"drains", 10, 5, 10, 2, false},
		{"empty queue", 0, 5, 10, 0, false},
		{"balanced never drains", 10, 10, 10, 0, true},
		{"overloaded", 10, 20, 10, 0, true},
		{"negative queue", -1, 5, 10, 0, true},
		{"idle arrivals", 10, 0, 10, 1, false},
		{"negative arrivals", 10, -1, 10, 0, true},
		{"NaN service", 10, 5, math.NaN(), 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BacklogDelay(tc.queue, tc.arrival, tc.serve)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidParameter) {
					t.Errorf("expected ErrInvalidParameter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
