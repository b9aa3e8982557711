package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/run-or-die/core"
	"github.com/lixenwraith/run-or-die/event"
	"github.com/lixenwraith/run-or-die/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Config selects whether cues play and how loud
type Config struct {
	Enabled bool
	Volume  float64 // 0..1 applied over unity-gain cues
}

// DefaultConfig returns audio enabled at the reference cue volume
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: parameter.CueVolume}
}

// EventSource registers handlers for run events
type EventSource interface {
	Handle(t event.EventType, h event.Handler)
}

// CuePlayer plays short cues through the beep speaker
// Every method is safe without an audio device; cues are then dropped
type CuePlayer struct {
	mu          sync.Mutex
	cfg         Config
	log         *slog.Logger
	buffers     [cueCount]floatBuffer
	mixer       *beep.Mixer
	initialized bool
	muted       bool

	now    func() time.Time
	last   [cueCount]time.Time
	output func(s beep.Streamer)

	played  uint64
	dropped uint64
}

// NewCuePlayer creates an uninitialized player
func NewCuePlayer(cfg Config, log *slog.Logger) *CuePlayer {
	p := &CuePlayer{
		cfg:     cfg,
		log:     core.OrDiscard(log),
		buffers: renderCues(),
		mixer:   &beep.Mixer{},
		now:     time.Now,
	}
	p.output = p.playOnSpeaker
	return p
}

// Initialize opens the speaker; a disabled config or missing device leaves the player silent
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return errors.Wrap(err, "initialize speaker")
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Info("audio initialized", "sample_rate", int(sampleRate))
	return nil
}

// Close stops every playing cue
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	p.initialized = false
}

// Active reports whether cues reach an output
func (p *CuePlayer) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// SetMuted drops every cue while muted
func (p *CuePlayer) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Muted reports whether cues are dropped
func (p *CuePlayer) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Play starts cue unless the same cue played within MinCueGap; returns whether it played
func (p *CuePlayer) Play(cue Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted || cue < 0 || cue >= cueCount {
		return false
	}
	now := p.now()
	if last := p.last[cue]; !last.IsZero() && now.Sub(last) < parameter.MinCueGap {
		p.dropped++
		return false
	}
	p.last[cue] = now
	p.played++
	p.output(p.Streamer(cue))
	return true
}

// Streamer returns a one-shot stream of cue at the configured volume
func (p *CuePlayer) Streamer(cue Cue) beep.Streamer {
	var buf floatBuffer
	if cue >= 0 && cue < cueCount {
		buf = p.buffers[cue]
	}
	return &effects.Gain{
		Streamer: &bufferStreamer{buf: buf},
		Gain:     p.cfg.Volume - 1,
	}
}

func (p *CuePlayer) playOnSpeaker(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Stats returns cues played and cues suppressed by the repeat gap
func (p *CuePlayer) Stats() (played, dropped uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played, p.dropped
}

// Attach maps run events to cues
func (p *CuePlayer) Attach(src EventSource) {
	src.Handle(event.EventSegmentRecycled, func(event.Event) { p.Play(CueRecycle) })
	src.Handle(event.EventObstacleSpawned, func(event.Event) { p.Play(CueSpawn) })
	src.Handle(event.EventFlap, func(event.Event) { p.Play(CueFlap) })
	src.Handle(event.EventNewBest, func(event.Event) { p.Play(CueBest) })
	src.Handle(event.EventCoinCollected, func(event.Event) { p.Play(CueCoin) })
}
