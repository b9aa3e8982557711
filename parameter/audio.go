package parameter

import "time"

// Audio hardware
const (
	AudioSampleRate = 44100

	// AudioBufferDuration sets speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinCueGap suppresses repeats of one cue within this window
	MinCueGap = 60 * time.Millisecond
)

// Cue shapes
const (
	RecycleCueDuration = 180 * time.Millisecond
	RecycleCueFreqFrom = 220.0
	RecycleCueFreqTo   = 440.0

	SpawnCueDuration = 40 * time.Millisecond
	SpawnCueFreq     = 880.0

	FlapCueDuration = 70 * time.Millisecond
	FlapCueFreq     = 520.0

	CoinCueDuration = 50 * time.Millisecond
	CoinCueFreqFrom = 1046.5 // C6
	CoinCueFreqTo   = 1568.0 // G6

	BestCueNote1Duration = 80 * time.Millisecond
	BestCueNote2Duration = 220 * time.Millisecond
	BestCueNote1Freq     = 987.77  // B5
	BestCueNote2Freq     = 1318.51 // E6

	CueAttack  = 5 * time.Millisecond
	CueRelease = 30 * time.Millisecond
	CueVolume  = 0.25
)
