package spawn

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/run-or-die/core"
	"github.com/lixenwraith/run-or-die/vmath"
)

// Cursor defaults
const (
	DefaultStart            = 8.0
	DefaultLookahead        = 30.0
	DefaultFallbackStep     = 4.0
	DefaultMaxSpawnsPerTick = 256
	MinSpacing              = 1.0
)

// Idle causes reported by a cursor tick that could not run
const (
	IdleNoPlayer = "no_player"
	IdleNoTable  = "no_table"
	IdleNoSink   = "no_sink"
)

// CursorConfig configures the column spawn cursor
type CursorConfig struct {
	Start            float64 // first spawn height of a run
	Lookahead        float64 // distance above the player kept filled
	FallbackStep     float64 // advance when nothing is eligible
	CenterX          float64 // x for side-locked rules in the center lane
	Depth            float64 // z of spawned obstacles
	Rotation         float64 // degrees about the X axis
	Parent           core.Handle
	MaxSpawnsPerTick int     // loop bound per tick; remaining heights wait for the next tick
	CullDistance     float64 // obstacles this far below the player are destroyed, 0 keeps them
}

// CursorStats are cumulative since the last reset
type CursorStats struct {
	Spawns     int
	Fallbacks  int
	Culled     int
	SinkErrors int
}

type liveObstacle struct {
	handle core.Handle
	y      float64
}

// Cursor keeps obstacles spawned up to a lookahead above the player
// nextHeight only grows within a run
type Cursor struct {
	cfg   CursorConfig
	table *Table
	sink  core.SpawnSink
	rng   *vmath.Rand
	log   *slog.Logger

	rotation mgl64.Quat
	next     float64
	live     []liveObstacle
	stats    CursorStats
	idle     string
	warned   map[string]bool
}

// NewCursor creates a cursor; a nil table or sink leaves every tick a no-op
func NewCursor(cfg CursorConfig, table *Table, sink core.SpawnSink, rng *vmath.Rand, log *slog.Logger) *Cursor {
	if cfg.FallbackStep <= 0 {
		cfg.FallbackStep = DefaultFallbackStep
	}
	if cfg.MaxSpawnsPerTick <= 0 {
		cfg.MaxSpawnsPerTick = DefaultMaxSpawnsPerTick
	}
	return &Cursor{
		cfg:      cfg,
		table:    table,
		sink:     sink,
		rng:      rng,
		log:      core.OrDiscard(log),
		rotation: mgl64.QuatRotate(mgl64.DegToRad(cfg.Rotation), mgl64.Vec3{1, 0, 0}),
		next:     cfg.Start,
		warned:   make(map[string]bool),
	}
}

// Tick spawns obstacles until the next spawn height passes playerHeight + Lookahead
// Missing dependencies make the tick a no-op that advances nothing
func (c *Cursor) Tick(playerHeight float64, havePlayer bool) int {
	if !c.ready(havePlayer) {
		return 0
	}

	spawns := 0
	limit := playerHeight + c.cfg.Lookahead
	for steps := 0; c.next <= limit && steps < c.cfg.MaxSpawnsPerTick; steps++ {
		rule, ok := c.table.Select(c.next, c.rng)
		if !ok {
			c.next += c.cfg.FallbackStep
			c.stats.Fallbacks++
			continue
		}

		x := c.resolveX(rule)
		y := c.next
		h, err := c.sink.Spawn(rule.Content, mgl64.Vec3{x, y, c.cfg.Depth}, c.rotation, c.cfg.Parent)
		if err != nil {
			c.stats.SinkErrors++
			c.log.Warn("obstacle spawn failed", "rule", rule.Name, "height", y, "error", err)
		} else {
			c.live = append(c.live, liveObstacle{handle: h, y: y})
			c.stats.Spawns++
			spawns++
		}

		c.next += math.Max(MinSpacing, c.rng.Range(rule.SpacingMin, rule.SpacingMax))
	}

	if c.cfg.CullDistance > 0 {
		c.Cull(playerHeight - c.cfg.CullDistance)
	}
	return spawns
}

func (c *Cursor) ready(havePlayer bool) bool {
	switch {
	case !havePlayer:
		c.idle = IdleNoPlayer
	case c.table == nil:
		c.idle = IdleNoTable
	case c.sink == nil:
		c.idle = IdleNoSink
	default:
		c.idle = ""
		return true
	}
	c.warnOnce(c.idle, "spawn cursor idle", "cause", c.idle)
	return false
}

// IdleCause returns why the last tick did nothing, empty when it ran
func (c *Cursor) IdleCause() string {
	return c.idle
}

// resolveX places a rule horizontally
func (c *Cursor) resolveX(r Rule) float64 {
	if !r.LockToSide {
		return c.rng.Range(r.XRange.Min, r.XRange.Max)
	}
	switch r.Lane {
	case core.LaneLeft:
		return r.XRange.Min
	case core.LaneRight:
		return r.XRange.Max
	default:
		return c.cfg.CenterX
	}
}

// Cull destroys obstacles spawned below y, oldest first
func (c *Cursor) Cull(y float64) int {
	if c.sink == nil {
		return 0
	}
	n := 0
	kept := c.live[:0]
	for _, o := range c.live {
		if o.y < y {
			c.sink.Destroy(o.handle)
			n++
			continue
		}
		kept = append(kept, o)
	}
	c.live = kept
	c.stats.Culled += n
	return n
}

// Reset destroys live obstacles and rewinds to the start height
func (c *Cursor) Reset() {
	if c.sink != nil {
		for _, o := range c.live {
			c.sink.Destroy(o.handle)
		}
	}
	c.live = c.live[:0]
	c.next = c.cfg.Start
	c.stats = CursorStats{}
}

// NextHeight returns the height of the next spawn
func (c *Cursor) NextHeight() float64 {
	return c.next
}

// Live returns the number of obstacles the cursor still owns
func (c *Cursor) Live() int {
	return len(c.live)
}

// Stats returns cumulative counters since the last reset
func (c *Cursor) Stats() CursorStats {
	return c.stats
}

// SetTable swaps the rule table; nil idles the cursor
func (c *Cursor) SetTable(t *Table) {
	c.table = t
}

// SetSink swaps the spawn sink; nil idles the cursor
func (c *Cursor) SetSink(s core.SpawnSink) {
	c.sink = s
}

func (c *Cursor) warnOnce(key, msg string, args ...any) {
	if c.warned[key] {
		return
	}
	c.warned[key] = true
	c.log.Warn(msg, args...)
}
