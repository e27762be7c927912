// Package delaylab computes the delay a packet sees on a link and separates
// the part caused by the link's speed from the part caused by traffic.
//
// # Overview
//
// Two delays dominate a single hop:
//
//   - Transmission delay: time to push every bit of the packet onto the wire.
//   - Congestion delay: time spent waiting behind other packets.
//
// The first depends only on packet size and bandwidth. The second depends on
// how close the offered load is to capacity, and it explodes as the link
// saturates. delaylab computes both and keeps them apart so the dominant term
// is obvious.
//
// # Quick Start
//
//	res, err := delaylab.Compute(delaylab.DelayRequest{
//	    PacketSizeBits:         1500 * 8,
//	    BandwidthBitsPerSecond: 1_000_000,
//	    TrafficLoad:            8,
//	    LinkCapacity:           10,
//	})
//	if err != nil {
//	    var ipe *delaylab.InvalidParameterError
//	    if errors.As(err, &ipe) {
//	        log.Fatalf("bad %s: %s", ipe.Field, ipe.Reason)
//	    }
//	}
//
//	fmt.Printf("transmission: %.3fs\n", res.TransmissionDelaySeconds) // 0.012s
//	fmt.Printf("congestion:   %.3fs\n", res.CongestionDelaySeconds)   // 4.000s
//
// # The Congestion Formula
//
//	congestion = S · load / (capacity − load)
//
// Where:
//   - S: service-time constant of the CongestionModel (default 1)
//   - load: offered load λ
//   - capacity: service capacity μ, in the same unit as load
//
// With S = 1/μ and rates in packets/sec this is the M/M/1 mean waiting time
// in queue, Wq = ρ/(μ − λ). Load must stay strictly below capacity; at or
// above it the queue never drains and Compute returns an InvalidParameterError.
//
// # Beyond One Hop
//
//   - ComputePath adds propagation delay (distance / signal speed).
//   - BacklogDelay gives the time to drain a known queue.
//   - Link.Analyze returns closed-form M/M/1 delays at a utilization ρ.
//   - Simulate runs a discrete-event FIFO queue (M/M/1 or M/D/1).
//   - Sweep compares simulated and analytic delays across ρ.
//
// # Concurrency
//
// Compute, ComputePath, BacklogDelay and Link.Analyze are pure functions and
// safe for concurrent use. Simulate owns its random source per call. Sweep
// runs one goroutine per utilization point.
package delaylab
