// Package wire implements the signal-to-angle reconstruction for the
// rotating-disc Langmuir probe post-processing step.
//
// One recording holds a time series of probe current and a photoreflector
// digital signal sampled on a common axis. The disc carries two stripes of
// dark tape whose edges let us recover the instant at which wire 0 crosses
// zero radians on every rotation, plus the rotation direction. From those
// reference edges the angle of every raw sample is interpolated, samples are
// accumulated into per-wire angle bins, and each bin is reduced to summary
// statistics.
//
// The pipeline for one recording is strictly sequential:
//
//	geometry extraction -> rotation resolution -> accumulation -> reduction
//
// Recordings are independent of each other; the only shared resource is the
// output sink, which Emit guards with the caller-supplied mutex.
package wire

// Recording is the data-source collaborator supplying one raw capture.
// Implementations must return stable values: the pipeline scans the sample
// stream twice.
type Recording interface {
	// Channel returns the ordered samples for one analog channel.
	Channel(i int) []float64
	// DiEvents returns the ordered raw sample indices at which the digital
	// signal on the given bit changes state.
	DiEvents(bit int) []int
	// NData returns the total sample count.
	NData() int
	// Meta looks up a numeric metadata value by key.
	Meta(key string) (float64, bool)
	// DiStream returns the digital input stream channel mask. The active
	// channel is the mask's highest set bit.
	DiStream() int
}

// Sink accepts reduced wire rows. Implementations need not be safe for
// concurrent use; Emit serialises access with the shared batch mutex.
type Sink interface {
	WriteLine(radius, x, y, theta, value float64) error
}

// currentChannel is the analog channel carrying the probe current.
const currentChannel = 0
