package audio

import (
	"math"
	"time"

	"github.com/lixenwraith/run-or-die/parameter"
)

// Cue identifies one short sound effect
type Cue int

const (
	CueRecycle Cue = iota
	CueSpawn
	CueFlap
	CueBest
	CueCoin

	cueCount
)

var cueNames = [cueCount]string{"recycle", "spawn", "flap", "best", "coin"}

// String returns the cue name
func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveTriangle
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// durationToSamples converts d to a sample count at the output rate
func durationToSamples(d time.Duration) int {
	return int(d.Seconds() * parameter.AudioSampleRate)
}

// sweep generates a waveform gliding linearly from freqFrom to freqTo
// A constant tone is a sweep with equal ends
func sweep(waveType int, freqFrom, freqTo float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveTriangle:
			buf[i] = 1 - 4*math.Abs(phase-0.5)
		}

		freq := freqFrom
		if samples > 1 {
			freq += (freqTo - freqFrom) * float64(i) / float64(samples-1)
		}
		phase += freq / parameter.AudioSampleRate
		phase -= math.Floor(phase)
	}
	return buf
}

// applyEnvelope applies a linear attack/release envelope in place
func applyEnvelope(buf floatBuffer, attack, release time.Duration) {
	total := len(buf)
	attackSamples := durationToSamples(attack)
	releaseSamples := durationToSamples(release)

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// concatFloatBuffers appends b to a
func concatFloatBuffers(a, b floatBuffer) floatBuffer {
	result := make(floatBuffer, len(a)+len(b))
	copy(result, a)
	copy(result[len(a):], b)
	return result
}

func tone(waveType int, from, to float64, d time.Duration) floatBuffer {
	buf := sweep(waveType, from, to, durationToSamples(d))
	applyEnvelope(buf, parameter.CueAttack, parameter.CueRelease)
	return buf
}

// generateCue renders c at unity gain
func generateCue(c Cue) floatBuffer {
	switch c {
	case CueRecycle:
		return tone(waveTriangle, parameter.RecycleCueFreqFrom, parameter.RecycleCueFreqTo, parameter.RecycleCueDuration)
	case CueSpawn:
		return tone(waveSine, parameter.SpawnCueFreq, parameter.SpawnCueFreq, parameter.SpawnCueDuration)
	case CueFlap:
		return tone(waveSine, parameter.FlapCueFreq, parameter.FlapCueFreq*1.5, parameter.FlapCueDuration)
	case CueBest:
		n1 := tone(waveSquare, parameter.BestCueNote1Freq, parameter.BestCueNote1Freq, parameter.BestCueNote1Duration)
		n2 := tone(waveSquare, parameter.BestCueNote2Freq, parameter.BestCueNote2Freq, parameter.BestCueNote2Duration)
		return concatFloatBuffers(n1, n2)
	case CueCoin:
		return tone(waveSquare, parameter.CoinCueFreqFrom, parameter.CoinCueFreqTo, parameter.CoinCueDuration)
	default:
		return nil
	}
}

// renderCues generates every cue once; buffers are read-only afterwards
func renderCues() (bufs [cueCount]floatBuffer) {
	for c := Cue(0); c < cueCount; c++ {
		bufs[c] = generateCue(c)
	}
	return bufs
}

// bufferStreamer plays a floatBuffer once as stereo
type bufferStreamer struct {
	buf floatBuffer
	pos int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.buf) {
		v := s.buf[s.pos]
		samples[n][0] = v
		samples[n][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *bufferStreamer) Err() error {
	return nil
}
