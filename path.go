package delaylab

// FiberPropagationSpeed is the signal speed in optical fiber (≈ 2/3 c), km/s.
const FiberPropagationSpeed = 200_000.0

// PropagationDelay returns distance / speed in seconds.
// A zero distance (co-located endpoints) yields zero delay.
func PropagationDelay(distanceKm, speedKmPerSecond float64) (float64, error) {
	if err := checkNonNegative("DistanceKm", distanceKm); err != nil {
		return 0, err
	}
	if err := checkPositive("PropagationSpeedKmPerSecond", speedKmPerSecond); err != nil {
		return 0, err
	}
	return distanceKm / speedKmPerSecond, nil
}

// PathRequest extends a single-link request with the distance the signal travels.
type PathRequest struct {
	Delay                       DelayRequest
	DistanceKm                  float64
	PropagationSpeedKmPerSecond float64 // 0 means FiberPropagationSpeed
}

// PathResult breaks end-to-end delay into its three components.
type PathResult struct {
	TransmissionDelaySeconds float64
	PropagationDelaySeconds  float64
	CongestionDelaySeconds   float64
	TotalDelaySeconds        float64
}

// ComputePath computes transmission, propagation and congestion delay for a path.
func (m CongestionModel) ComputePath(req PathRequest) (PathResult, error) {
	link, err := m.Compute(req.Delay)
	if err != nil {
		return PathResult{}, err
	}

	speed := req.PropagationSpeedKmPerSecond
	if speed == 0 {
		speed = FiberPropagationSpeed
	}
	propagation, err := PropagationDelay(req.DistanceKm, speed)
	if err != nil {
		return PathResult{}, err
	}

	return PathResult{
		TransmissionDelaySeconds: link.TransmissionDelaySeconds,
		PropagationDelaySeconds:  propagation,
		CongestionDelaySeconds:   link.CongestionDelaySeconds,
		TotalDelaySeconds:        link.TotalLatencySeconds + propagation,
	}, nil
}

// ComputePath evaluates a path with the default congestion model.
func ComputePath(req PathRequest) (PathResult, error) {
	return DefaultCongestionModel().ComputePath(req)
}

// BacklogDelay is the time to drain queueLength packets when the link serves
// serviceRate packets/sec and arrivalRate packets/sec keep coming in:
//
//	backlog = queueLength / (serviceRate - arrivalRate)
//
// With no arrivals the queue drains in queueLength / serviceRate.
// If serviceRate ≤ arrivalRate the backlog never drains and an
// InvalidParameterError is returned.
func BacklogDelay(queueLength, arrivalRate, serviceRate float64) (float64, error) {
	if err := checkNonNegative("QueueLength", queueLength); err != nil {
		return 0, err
	}
	if err := checkNonNegative("ArrivalRate", arrivalRate); err != nil {
		return 0, err
	}
	if err := checkPositive("ServiceRate", serviceRate); err != nil {
		return 0, err
	}
	if arrivalRate >= serviceRate {
		return 0, &InvalidParameterError{Field: "ArrivalRate", Value: arrivalRate, Reason: ReasonOverCapacity}
	}
	return queueLength / (serviceRate - arrivalRate), nil
}
