package overlay

// HapticKind distinguishes the two feedback ticks a button can request.
type HapticKind uint8

const (
	HapticPress HapticKind = iota
	HapticRelease
)

func (k HapticKind) String() string {
	if k == HapticRelease {
		return "release"
	}
	return "press"
}

// HapticFunc receives feedback requests. Implementations must not block;
// see the haptic package for an asynchronous dispatcher.
type HapticFunc func(HapticKind)

// Config carries the settings that influence event processing. It is
// supplied by the caller on every dispatch and never written by this package.
type Config struct {
	Sliding        SlidingMode
	HapticsEnabled bool
}
