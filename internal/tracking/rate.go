package tracking

// RatePerMinute converts two consecutive altitude readings into a
// vertical speed in meters per minute. It assumes the readings are
// exactly one fuse tick (1 s) apart — the aggregator's ticker is what
// makes the *60 factor a rate; callers feeding uneven cadences get
// numbers that are not true rates.
func RatePerMinute(previousAltitude, currentAltitude float64) float64 {
	return (currentAltitude - previousAltitude) * 60
}
