package delaylab

// Link is a store-and-forward link serving fixed-size packets.
type Link struct {
	PacketSizeBytes        float64
	BandwidthBitsPerSecond float64
}

// Validate rejects non-positive or non-numeric link parameters.
func (l Link) Validate() error {
	if err := checkPositive("PacketSizeBytes", l.PacketSizeBytes); err != nil {
		return err
	}
	return checkPositive("BandwidthBitsPerSecond", l.BandwidthBitsPerSecond)
}

// PacketSizeBits returns the packet size in bits.
func (l Link) PacketSizeBits() float64 {
	return l.PacketSizeBytes * 8
}

// ServiceRate returns μ, packets/sec the link can serialize.
func (l Link) ServiceRate() float64 {
	return l.BandwidthBitsPerSecond / l.PacketSizeBits()
}

// ServiceTime returns 1/μ, which equals the transmission delay of one packet.
func (l Link) ServiceTime() float64 {
	return l.PacketSizeBits() / l.BandwidthBitsPerSecond
}

// MM1 holds closed-form M/M/1 results for a link at utilization Rho.
type MM1 struct {
	Rho               float64 // λ/μ
	ArrivalRate       float64 // λ, packets/sec
	ServiceRate       float64 // μ, packets/sec
	TransmissionDelay float64 // 1/μ
	QueueDelay        float64 // Wq = ρ/(μ - λ)
	TotalDelay        float64 // W = 1/(μ - λ)
	MeanInSystem      float64 // L = ρ/(1 - ρ)

	link Link
}

// Analyze returns the analytic M/M/1 delays at utilization rho, 0 < rho < 1.
//
// Example:
//
//	link := Link{PacketSizeBytes: 1500, BandwidthBitsPerSecond: 10_000_000}
//	q, _ := link.Analyze(0.8)
//	// μ ≈ 833.3 pkt/s, W = 1/(μ-λ) = 6ms, Wq = 4.8ms
func (l Link) Analyze(rho float64) (MM1, error) {
	if err := l.Validate(); err != nil {
		return MM1{}, err
	}
	if err := checkPositive("Rho", rho); err != nil {
		return MM1{}, err
	}
	if rho >= 1 {
		return MM1{}, &InvalidParameterError{Field: "Rho", Value: rho, Reason: ReasonOverCapacity}
	}

	mu := l.ServiceRate()
	lambda := rho * mu

	return MM1{
		Rho:               rho,
		ArrivalRate:       lambda,
		ServiceRate:       mu,
		TransmissionDelay: 1 / mu,
		QueueDelay:        rho / (mu - lambda),
		TotalDelay:        1 / (mu - lambda),
		MeanInSystem:      rho / (1 - rho),
		link:              l,
	}, nil
}

// Request converts the queue into the equivalent DelayRequest, with λ as load
// and μ as capacity, along with the congestion model whose service time is 1/μ.
// Computing it reproduces QueueDelay as the congestion term (up to rounding).
func (q MM1) Request() (DelayRequest, CongestionModel) {
	req := DelayRequest{
		PacketSizeBits:         q.link.PacketSizeBits(),
		BandwidthBitsPerSecond: q.link.BandwidthBitsPerSecond,
		TrafficLoad:            q.ArrivalRate,
		LinkCapacity:           q.ServiceRate,
	}
	return req, CongestionModel{ServiceTime: 1 / q.ServiceRate}
}
