package delaylab

import (
	"errors"
	"fmt"
	"math"
)

// DelayRequest describes one packet crossing one link.
//
// TrafficLoad and LinkCapacity must use the same unit (packets/sec, bits/sec,
// Erlangs...). Only their ratio and difference matter to the queuing term.
type DelayRequest struct {
	PacketSizeBits         float64 // Bits per packet
	BandwidthBitsPerSecond float64 // Serialization rate of the link
	TrafficLoad            float64 // Offered load (λ)
	LinkCapacity           float64 // Service capacity (μ)
}

// DelayResult holds the delay metrics derived from a DelayRequest.
type DelayResult struct {
	TransmissionDelaySeconds float64 // size / bandwidth
	CongestionDelaySeconds   float64 // S · load / (capacity - load)
	TotalLatencySeconds      float64 // transmission + congestion
}

// Utilization returns load/capacity (ρ) for a request.
func (r DelayRequest) Utilization() float64 {
	return r.TrafficLoad / r.LinkCapacity
}

// Reason classifies an invalid parameter.
type Reason string

const (
	ReasonNonNumeric   Reason = "non-numeric"               // NaN or ±Inf
	ReasonNonPositive  Reason = "non-positive"              // ≤ 0
	ReasonNegative     Reason = "negative"                  // < 0 where zero is allowed
	ReasonOverCapacity Reason = "load at or above capacity" // queue never drains
)

// ErrInvalidParameter matches every *InvalidParameterError via errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports which input was rejected and why.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason Reason
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidParameter) succeed.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// CongestionModel is the queuing approximation used for congestion delay:
//
//	congestion = S · load / (capacity - load)
//
// With S = 1/μ and load, capacity read as λ, μ in packets/sec this is the
// M/M/1 mean waiting time in queue, Wq = ρ/(μ - λ). The term is strictly
// increasing in load and diverges as load approaches capacity.
type CongestionModel struct {
	ServiceTime float64 // S, seconds per unit of load
}

// DefaultCongestionModel returns a model with S = 1.
func DefaultCongestionModel() CongestionModel {
	return CongestionModel{ServiceTime: 1}
}

// Compute evaluates a request with the default congestion model.
func Compute(req DelayRequest) (DelayResult, error) {
	return DefaultCongestionModel().Compute(req)
}

// Compute validates req and returns its transmission, congestion and total delay.
// It is a pure function of the model and the request; it is safe for concurrent use.
func (m CongestionModel) Compute(req DelayRequest) (DelayResult, error) {
	if err := m.validate(); err != nil {
		return DelayResult{}, err
	}
	if err := req.Validate(); err != nil {
		return DelayResult{}, err
	}

	transmission := req.PacketSizeBits / req.BandwidthBitsPerSecond
	congestion := m.congestion(req.TrafficLoad, req.LinkCapacity)

	return DelayResult{
		TransmissionDelaySeconds: transmission,
		CongestionDelaySeconds:   congestion,
		TotalLatencySeconds:      transmission + congestion,
	}, nil
}

func (m CongestionModel) congestion(load, capacity float64) float64 {
	return m.ServiceTime * load / (capacity - load)
}

func (m CongestionModel) validate() error {
	return checkPositive("ServiceTime", m.ServiceTime)
}

// Validate checks every field in declaration order, then the capacity bound.
func (r DelayRequest) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"PacketSizeBits", r.PacketSizeBits},
		{"BandwidthBitsPerSecond", r.BandwidthBitsPerSecond},
		{"TrafficLoad", r.TrafficLoad},
		{"LinkCapacity", r.LinkCapacity},
	}
	for _, f := range fields {
		if err := checkPositive(f.name, f.value); err != nil {
			return err
		}
	}

	if r.TrafficLoad >= r.LinkCapacity {
		return &InvalidParameterError{Field: "TrafficLoad", Value: r.TrafficLoad, Reason: ReasonOverCapacity}
	}
	return nil
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidParameterError{Field: name, Value: v, Reason: ReasonNonNumeric}
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if err := checkFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return &InvalidParameterError{Field: name, Value: v, Reason: ReasonNonPositive}
	}
	return nil
}

func checkNonNegative(name string, v float64) error {
	if err := checkFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return &InvalidParameterError{Field: name, Value: v, Reason: ReasonNegative}
	}
	return nil
}
