package config

import (
	"log/slog"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/run-or-die/asset"
	"github.com/lixenwraith/run-or-die/camera"
	"github.com/lixenwraith/run-or-die/content"
	"github.com/lixenwraith/run-or-die/core"
	"github.com/lixenwraith/run-or-die/engine"
	"github.com/lixenwraith/run-or-die/parameter"
	"github.com/lixenwraith/run-or-die/placement"
	"github.com/lixenwraith/run-or-die/player"
	"github.com/lixenwraith/run-or-die/segment"
	"github.com/lixenwraith/run-or-die/spawn"
)

// ErrInvalid marks a configuration that cannot build a run
var ErrInvalid = errors.New("invalid configuration")

// Source names where a configuration was read from
const (
	SourceEmbedded = "embedded"
)

// Config mirrors the TOML document
type Config struct {
	Run        RunSection        `toml:"run"`
	Ring       RingSection       `toml:"ring"`
	Camera     CameraSection     `toml:"camera"`
	Thresholds ThresholdSection  `toml:"thresholds"`
	Player     PlayerSection     `toml:"player"`
	Cursor     CursorSection     `toml:"cursor"`
	Audio      AudioSection      `toml:"audio"`
	Content    []ContentSection  `toml:"content"`
	Categories []CategorySection `toml:"category"`
	Rules      []RuleSection     `toml:"rule"`

	// Source is the file the config was read from, or SourceEmbedded
	Source string `toml:"-"`
}

type RunSection struct {
	Seed uint64 `toml:"seed"`
}

type RingSection struct {
	Count       int     `toml:"count"`
	Height      float64 `toml:"height"`
	StartAnchor float64 `toml:"start_anchor"`
	SpeedScale  float64 `toml:"speed_scale"`
	DeadZone    float64 `toml:"dead_zone"`
	Wall        string  `toml:"wall"`
}

type CameraSection struct {
	CenterX float64 `toml:"center_x"`
	CenterY float64 `toml:"center_y"`
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
}

type ThresholdSection struct {
	VerticalMargin   float64  `toml:"vertical_margin"`
	HorizontalMargin float64  `toml:"horizontal_margin"`
	TopOverride      *float64 `toml:"top_override"`
	BottomOverride   *float64 `toml:"bottom_override"`
}

type PlayerSection struct {
	Gravity      float64 `toml:"gravity"`
	FlapImpulse  float64 `toml:"flap_impulse"`
	RestEpsilon  float64 `toml:"rest_epsilon"`
	MaxFallSpeed float64 `toml:"max_fall_speed"`
	StartHeight  float64 `toml:"start_height"`
	Ground       bool    `toml:"ground"`
	Floor        float64 `toml:"floor"`
	PickupRadius float64 `toml:"pickup_radius"`
}

type CursorSection struct {
	Start            float64 `toml:"start"`
	Lookahead        float64 `toml:"lookahead"`
	FallbackStep     float64 `toml:"fallback_step"`
	CenterX          float64 `toml:"center_x"`
	Depth            float64 `toml:"depth"`
	Rotation         float64 `toml:"rotation"`
	MaxSpawnsPerTick int     `toml:"max_spawns_per_tick"`
	CullDistance     float64 `toml:"cull_distance"`
}

type AudioSection struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type ContentSection struct {
	Ref    string  `toml:"ref"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Glyph  string  `toml:"glyph"`
	Class  string  `toml:"class"`
	Value  int     `toml:"value"`
}

type FootprintSection struct {
	WidthMin float64 `toml:"width_min"`
	WidthMax float64 `toml:"width_max"`
	Height   float64 `toml:"height"`
	Gap      float64 `toml:"gap"`
}

type GridSection struct {
	MinColumn  int     `toml:"min_column"`
	MaxColumn  int     `toml:"max_column"`
	MinWidth   int     `toml:"min_width"`
	MaxWidth   int     `toml:"max_width"`
	GapCells   int     `toml:"gap_cells"`
	BandHeight float64 `toml:"band_height"`
	SafeMin    float64 `toml:"safe_min"`
	SafeMax    float64 `toml:"safe_max"`
	ItemHeight float64 `toml:"item_height"`
	MinCount   int     `toml:"min_count"`
	MaxCount   int     `toml:"max_count"`
	Attempts   int     `toml:"attempts"`
}

type CategorySection struct {
	Name          string            `toml:"name"`
	Kind          string            `toml:"kind"`
	Content       string            `toml:"content"`
	Bounds        []float64         `toml:"bounds"` // min x, min y, max x, max y
	MinCount      int               `toml:"min_count"`
	MaxCount      int               `toml:"max_count"`
	MinSeparation float64           `toml:"min_separation"`
	Metric        string            `toml:"metric"`
	Attempts      int               `toml:"attempts"`
	Rotation      float64           `toml:"rotation"`
	Depth         float64           `toml:"depth"`
	DepthNudge    float64           `toml:"depth_nudge"`
	Footprint     *FootprintSection `toml:"footprint"`
	Grid          *GridSection      `toml:"grid"`
}

type RuleSection struct {
	Name       string    `toml:"name"`
	Content    string    `toml:"content"`
	Weight     *float64  `toml:"weight"`
	MinHeight  float64   `toml:"min_height"`
	MaxHeight  *float64  `toml:"max_height"`
	LockToSide bool      `toml:"lock_to_side"`
	Lane       string    `toml:"lane"`
	XRange     []float64 `toml:"x_range"`
	Spacing    []float64 `toml:"spacing"`
}

// Default returns the embedded configuration
func Default() *Config {
	cfg, err := Parse(asset.DefaultRunConfig)
	if err != nil {
		panic(errors.Wrap(err, "embedded configuration"))
	}
	cfg.Source = SourceEmbedded
	return cfg
}

// Parse decodes a TOML document over an empty config
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

// Load resolves the configuration: explicit path, then ./run-or-die.toml, then the embedded default
// A file is decoded over the embedded default, so it only needs the keys it changes;
// arrays of tables in the file replace the default lists
// Environment overrides apply last, then the result is validated
func Load(path string, log *slog.Logger) (*Config, error) {
	log = core.OrDiscard(log)
	cfg := Default()

	switch {
	case path != "":
		if err := cfg.decodeFile(path, log); err != nil {
			return nil, err
		}
	case fileExists(parameter.ConfigFileName):
		if err := cfg.decodeFile(parameter.ConfigFileName, log); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info("configuration loaded", "source", cfg.Source, "seed", cfg.Run.Seed)
	return cfg, nil
}

func (c *Config) decodeFile(path string, log *slog.Logger) error {
	// Lists are replaced rather than merged element by element
	var lists struct {
		Content    []toml.Primitive `toml:"content"`
		Categories []toml.Primitive `toml:"category"`
		Rules      []toml.Primitive `toml:"rule"`
	}
	if _, err := toml.DecodeFile(path, &lists); err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	if lists.Content != nil {
		c.Content = nil
	}
	if lists.Categories != nil {
		c.Categories = nil
	}
	if lists.Rules != nil {
		c.Rules = nil
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	for _, key := range md.Undecoded() {
		log.Warn("unknown config key", "file", path, "key", key.String())
	}
	c.Source = path
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ApplyEnv applies RUNORDIE_SEED and RUNORDIE_AUDIO; malformed values are ignored
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(parameter.EnvSeed); ok && v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Run.Seed = seed
		}
	}
	if v, ok := lookup(parameter.EnvAudio); ok && v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = enabled
		}
	}
}

// Validate rejects configurations that would fail ring construction or cannot be interpreted
// Missing content for a category or rule is not an error; the run warns and skips it
func (c *Config) Validate() error {
	if c.Ring.Count <= 0 {
		return errors.Wrapf(ErrInvalid, "ring.count %d must be positive", c.Ring.Count)
	}
	if c.Ring.Height < 0 {
		return errors.Wrapf(ErrInvalid, "ring.height %f is negative", c.Ring.Height)
	}
	if c.Ring.DeadZone < 0 {
		return errors.Wrapf(ErrInvalid, "ring.dead_zone %f is negative", c.Ring.DeadZone)
	}
	if c.Camera.Height <= 0 || c.Camera.Width <= 0 {
		return errors.Wrapf(ErrInvalid, "camera extent %fx%f must be positive", c.Camera.Width, c.Camera.Height)
	}
	if c.Player.PickupRadius < 0 {
		return errors.Wrapf(ErrInvalid, "player.pickup_radius %f is negative", c.Player.PickupRadius)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return errors.Wrapf(ErrInvalid, "audio.volume %f outside [0, 1]", c.Audio.Volume)
	}

	for i, d := range c.Content {
		if d.Ref == "" {
			return errors.Wrapf(ErrInvalid, "content[%d] has no ref", i)
		}
		if d.Glyph != "" && utf8.RuneCountInString(d.Glyph) != 1 {
			return errors.Wrapf(ErrInvalid, "content %q glyph %q is not one character", d.Ref, d.Glyph)
		}
		if d.Class != "" && !validClass(d.Class) {
			return errors.Wrapf(ErrInvalid, "content %q class %q", d.Ref, d.Class)
		}
		if d.Value < 0 {
			return errors.Wrapf(ErrInvalid, "content %q value %d is negative", d.Ref, d.Value)
		}
	}

	for i, cat := range c.Categories {
		name := cat.Name
		if name == "" {
			return errors.Wrapf(ErrInvalid, "category[%d] has no name", i)
		}
		if !oneOf(cat.Kind, "", "point", "axis", "footprint", "grid") {
			return errors.Wrapf(ErrInvalid, "category %q kind %q", name, cat.Kind)
		}
		if !oneOf(cat.Metric, "", "euclidean", "x", "axis_x", "y", "axis_y") {
			return errors.Wrapf(ErrInvalid, "category %q metric %q", name, cat.Metric)
		}
		if cat.Kind == "grid" {
			if cat.Grid == nil {
				return errors.Wrapf(ErrInvalid, "grid category %q has no grid table", name)
			}
			if cat.Grid.MaxColumn < cat.Grid.MinColumn {
				return errors.Wrapf(ErrInvalid, "category %q columns %d..%d", name, cat.Grid.MinColumn, cat.Grid.MaxColumn)
			}
			continue
		}
		if len(cat.Bounds) != 4 {
			return errors.Wrapf(ErrInvalid, "category %q bounds need 4 values, got %d", name, len(cat.Bounds))
		}
		if cat.MinSeparation < 0 {
			return errors.Wrapf(ErrInvalid, "category %q min_separation %f is negative", name, cat.MinSeparation)
		}
	}

	for i, r := range c.Rules {
		if r.Name == "" {
			return errors.Wrapf(ErrInvalid, "rule[%d] has no name", i)
		}
		if !oneOf(r.Lane, "", "left", "right", "center") {
			return errors.Wrapf(ErrInvalid, "rule %q lane %q", r.Name, r.Lane)
		}
		if r.Spacing != nil && len(r.Spacing) != 2 {
			return errors.Wrapf(ErrInvalid, "rule %q spacing needs 2 values", r.Name)
		}
		if r.XRange != nil && len(r.XRange) != 2 {
			return errors.Wrapf(ErrInvalid, "rule %q x_range needs 2 values", r.Name)
		}
	}
	return nil
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

func validClass(s string) bool {
	for _, c := range []content.Class{content.ClassObstacle, content.ClassWall, content.ClassPlatform, content.ClassHazard, content.ClassCoin} {
		if c.String() == s {
			return true
		}
	}
	return false
}

// Options converts the document into run options
func (c *Config) Options() engine.Options {
	return engine.Options{
		Seed: c.Run.Seed,
		Ring: segment.RingConfig{
			Count:       c.Ring.Count,
			Height:      c.Ring.Height,
			StartAnchor: c.Ring.StartAnchor,
			SpeedScale:  c.Ring.SpeedScale,
			DeadZone:    c.Ring.DeadZone,
			WallContent: core.ContentRef(c.Ring.Wall),
		},
		Categories: c.categories(),
		Cursor: spawn.CursorConfig{
			Start:            c.Cursor.Start,
			Lookahead:        c.Cursor.Lookahead,
			FallbackStep:     c.Cursor.FallbackStep,
			CenterX:          c.Cursor.CenterX,
			Depth:            c.Cursor.Depth,
			Rotation:         c.Cursor.Rotation,
			MaxSpawnsPerTick: c.Cursor.MaxSpawnsPerTick,
			CullDistance:     c.Cursor.CullDistance,
		},
		Rules:    c.rules(),
		Viewport: c.Viewport(),
		Mover: player.MoverConfig{
			Gravity:      c.Player.Gravity,
			FlapImpulse:  c.Player.FlapImpulse,
			RestEpsilon:  c.Player.RestEpsilon,
			MaxFallSpeed: c.Player.MaxFallSpeed,
			StartHeight:  c.Player.StartHeight,
			Ground:       c.Player.Ground,
			Floor:        c.Player.Floor,
		},
		PickupRadius: c.Player.PickupRadius,
		Defs:         c.defs(),
	}
}

// Viewport builds the camera viewport with threshold margins and overrides
func (c *Config) Viewport() camera.Viewport {
	return camera.Viewport{
		CenterX:          c.Camera.CenterX,
		CenterY:          c.Camera.CenterY,
		Width:            c.Camera.Width,
		Height:           c.Camera.Height,
		VerticalMargin:   c.Thresholds.VerticalMargin,
		HorizontalMargin: c.Thresholds.HorizontalMargin,
		TopOverride:      c.Thresholds.TopOverride,
		BottomOverride:   c.Thresholds.BottomOverride,
	}
}

func (c *Config) defs() []content.Def {
	defs := make([]content.Def, 0, len(c.Content))
	for _, d := range c.Content {
		glyph := parameter.GlyphUnknown
		if r, _ := utf8.DecodeRuneInString(d.Glyph); r != utf8.RuneError {
			glyph = r
		}
		defs = append(defs, content.Def{
			Ref:   core.ContentRef(d.Ref),
			Size:  mgl64.Vec2{d.Width, d.Height},
			Glyph: glyph,
			Class: content.ParseClass(d.Class),
			Value: d.Value,
		})
	}
	return defs
}

func (c *Config) categories() []segment.Category {
	cats := make([]segment.Category, 0, len(c.Categories))
	for _, s := range c.Categories {
		cat := segment.Category{
			Name:       s.Name,
			Kind:       segment.ParseKind(s.Kind),
			Content:    core.ContentRef(s.Content),
			Rotation:   s.Rotation,
			Depth:      s.Depth,
			DepthNudge: s.DepthNudge,
		}
		if len(s.Bounds) == 4 {
			cat.Constraint = placement.Constraint{
				Bounds:        core.NewBounds(s.Bounds[0], s.Bounds[1], s.Bounds[2], s.Bounds[3]),
				MinCount:      s.MinCount,
				MaxCount:      s.MaxCount,
				MinSeparation: s.MinSeparation,
				Metric:        placement.ParseMetric(s.Metric),
				Attempts:      s.Attempts,
			}
		}
		if s.Footprint != nil {
			cat.Constraint.Footprint = &placement.Footprint{
				WidthMin: s.Footprint.WidthMin,
				WidthMax: s.Footprint.WidthMax,
				Height:   s.Footprint.Height,
				Gap:      s.Footprint.Gap,
			}
		}
		if g := s.Grid; g != nil {
			cat.Grid = placement.GridConstraint{
				MinColumn:  g.MinColumn,
				MaxColumn:  g.MaxColumn,
				MinWidth:   g.MinWidth,
				MaxWidth:   g.MaxWidth,
				GapCells:   g.GapCells,
				BandHeight: g.BandHeight,
				SafeMin:    g.SafeMin,
				SafeMax:    g.SafeMax,
				ItemHeight: g.ItemHeight,
				MinCount:   g.MinCount,
				MaxCount:   g.MaxCount,
				Attempts:   g.Attempts,
			}
		}
		cats = append(cats, cat)
	}
	return cats
}

func (c *Config) rules() []spawn.Rule {
	rules := make([]spawn.Rule, 0, len(c.Rules))
	for _, s := range c.Rules {
		r := spawn.NewRule(s.Name, core.ContentRef(s.Content))
		if s.Weight != nil {
			r.Weight = *s.Weight
		}
		r.MinHeight = s.MinHeight
		if s.MaxHeight != nil {
			r.MaxHeight = *s.MaxHeight
		}
		r.LockToSide = s.LockToSide
		r.Lane = core.ParseLane(s.Lane)
		if len(s.XRange) == 2 {
			r.XRange = spawn.Span{Min: s.XRange[0], Max: s.XRange[1]}
		}
		if len(s.Spacing) == 2 {
			r.SpacingMin, r.SpacingMax = s.Spacing[0], s.Spacing[1]
		}
		rules = append(rules, r)
	}
	return rules
}
