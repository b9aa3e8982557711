package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/run-or-die/content"
	"github.com/lixenwraith/run-or-die/event"
	"github.com/lixenwraith/run-or-die/parameter"
	"github.com/lixenwraith/run-or-die/status"
)

// addSystems registers the fixed tick order:
// player, thresholds, ring, cursor, score, pickup, event drain, metrics
func (r *Run) addSystems() {
	r.AddSystem(NewSystem("player", parameter.PriorityPlayer, r.updatePlayer))
	r.AddSystem(NewSystem("thresholds", parameter.PriorityThresholds, r.updateThresholds))
	r.AddSystem(NewSystem("ring", parameter.PriorityRing, r.updateRing))
	r.AddSystem(NewSystem("cursor", parameter.PriorityCursor, r.updateCursor))
	r.AddSystem(NewSystem("score", parameter.PriorityScore, r.updateScore))
	r.AddSystem(NewSystem("pickup", parameter.PriorityPickup, r.updatePickup))
	r.AddSystem(NewSystem("events", parameter.PriorityEvents, r.updateEvents))
	r.AddSystem(NewSystem("metrics", parameter.PriorityMetrics, r.updateMetrics))
}

func (r *Run) updatePlayer(f *Frame) {
	if r.source == nil {
		r.warnOnce("no_player")
		return
	}
	if r.source == r.mover {
		r.mover.Step(f.DT)
	}
	f.Telemetry, f.HavePlayer = r.source.Telemetry()
	if !f.HavePlayer {
		r.warnOnce("no_player")
	}
}

func (r *Run) updateThresholds(f *Frame) {
	f.Thresholds = r.viewport.Thresholds()
}

func (r *Run) updateRing(f *Frame) {
	if !f.HavePlayer {
		return
	}
	res := r.ring.Tick(f.DT, f.Telemetry, f.Thresholds)
	r.metrics.SetFloat(status.RingSpeed, res.Speed)
	if len(res.Relocated) == 0 {
		return
	}
	r.metrics.Inc(status.RingRelocations, int64(len(res.Relocated)))
	r.recordPopulate(res.Stats)
	for _, seg := range res.Relocated {
		r.push(event.EventSegmentRecycled, &event.SegmentPayload{
			ID:     seg.ID,
			Index:  seg.Index,
			Anchor: seg.Y(),
			Items:  seg.OwnedCount(),
		})
	}
}

func (r *Run) updateCursor(f *Frame) {
	n := r.cursor.Tick(f.Telemetry.Height, f.HavePlayer)
	if cause := r.cursor.IdleCause(); cause != "" {
		if cause != "no_player" {
			r.warnOnce(cause)
		}
		return
	}
	r.metrics.Inc(status.CursorSpawns, int64(n))

	stats := r.cursor.Stats()
	if culled := stats.Culled - r.lastCulled; culled > 0 {
		r.push(event.EventContentCleared, &event.ClearPayload{Count: culled})
	}
	r.lastCulled = stats.Culled
	r.metrics.Ints.Get(status.CursorFallbacks).Store(int64(stats.Fallbacks))
	r.metrics.Ints.Get(status.CursorCulled).Store(int64(stats.Culled))
}

func (r *Run) updateScore(f *Frame) {
	if !f.HavePlayer {
		return
	}
	if r.score.Update(f.Telemetry.Height) {
		r.push(event.EventNewBest, &event.ScorePayload{Best: r.score.Best()})
	}
}

// updatePickup collects segment coins within the pickup radius of the player
// The player sits at the viewport center column at its start height in band space
func (r *Run) updatePickup(f *Frame) {
	if !f.HavePlayer {
		return
	}
	at := mgl64.Vec2{r.viewport.CenterX, r.opts.Mover.StartHeight}
	for _, seg := range r.ring.Segments() {
		for _, h := range seg.Owned() {
			o, ok := r.store.Get(h)
			if !ok || !o.Known || o.Def.Class != content.ClassCoin {
				continue
			}
			if o.World.Vec2().Sub(at).Len() > r.opts.PickupRadius {
				continue
			}
			r.store.Destroy(h)
			seg.Release(h)

			value := o.Def.CoinValue()
			r.score.AddCoins(value)
			r.metrics.Inc(status.CoinsCollected, int64(value))
			r.push(event.EventCoinCollected, &event.CoinPayload{Handle: h, Value: value, Total: r.score.Coins()})
		}
	}
}

func (r *Run) updateEvents(_ *Frame) {
	r.router.Drain()
}

func (r *Run) updateMetrics(f *Frame) {
	r.metrics.Ints.Get(status.RunFrames).Store(f.Index)
	r.metrics.Ints.Get(status.RunDraws).Store(int64(r.rng.Draws()))
	r.metrics.Ints.Get(status.ContentLive).Store(int64(r.store.Len()))
	r.metrics.SetFloat(status.CursorNextHeight, r.cursor.NextHeight())
	r.metrics.SetFloat(status.PlayerHeight, f.Telemetry.Height)
	r.metrics.Floats.Get(status.ScoreBest).Max(r.score.Best())
}
