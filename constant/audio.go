package constant

import "time"

const (
	// DefaultVolume is the linear gain used when a caller does not pick one
	DefaultVolume = 0.02

	// AudioSampleRate is the speaker rate, loaded clips are resampled to it
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// ToneDuration is the length of synthesized fallback sounds
	ToneDuration = 120 * time.Millisecond
)
