package utils

const (
	// KMHPerMPS converts a speed in meters per second to kilometers per hour.
	KMHPerMPS = 3.6

	// NotableSpeedingKMH is the margin over the speed limit, in km/h, above
	// which a violation counts as notable speeding in captions and statistics.
	NotableSpeedingKMH = 4.0
)

// MPSToKMH converts meters per second to kilometers per hour.
func MPSToKMH(mps float64) float64 {
	return mps * KMHPerMPS
}
