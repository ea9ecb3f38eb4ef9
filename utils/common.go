package utils

const (
	// NODETOL is the default relative tolerance for coincident geometry.
	NODETOL = 1.e-9
	// ARCSEGMENTS is the default number of chords per arc when sampling.
	ARCSEGMENTS = 16
)
