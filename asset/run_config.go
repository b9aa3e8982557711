package asset

// DefaultRunConfig is the built-in run configuration used when no file is found
const DefaultRunConfig = `
# === Run ===
[run]
seed = 1

# === Segment ring ===
# height = 0 measures the wall content
[ring]
count = 4
height = 10.0
start_anchor = 0.0
speed_scale = 1.0
dead_zone = 0.05
wall = "wall"

# === Camera and recycle thresholds ===
# Thresholds are the viewport edges pushed out by the margins
# top_override / bottom_override replace the derived value literally
[camera]
center_x = 0.0
center_y = 9.0
width = 3.6
height = 20.0

[thresholds]
vertical_margin = 11.0
horizontal_margin = 0.0

# === Reference player ===
[player]
gravity = -20.0
flap_impulse = 8.0
rest_epsilon = 0.01
max_fall_speed = 30.0
start_height = 0.0
ground = true
floor = 0.0
pickup_radius = 0.6

# === Column spawn cursor ===
[cursor]
start = 8.0
lookahead = 30.0
fallback_step = 4.0
center_x = 0.0
depth = 0.0
rotation = 0.0
max_spawns_per_tick = 256
cull_distance = 20.0

# === Audio cues ===
[audio]
enabled = true
volume = 0.25

# === Content definitions ===
[[content]]
ref = "wall"
width = 3.6
height = 10.0
glyph = "│"
class = "wall"

[[content]]
ref = "blade"
width = 0.5
height = 0.5
glyph = "x"
class = "hazard"

[[content]]
ref = "ledge"
width = 1.0
height = 0.3
glyph = "="
class = "platform"

[[content]]
ref = "crate"
width = 1.0
height = 0.5
glyph = "#"
class = "platform"

[[content]]
ref = "coin"
width = 0.5
height = 0.5
glyph = "o"
class = "coin"
value = 1

[[content]]
ref = "spike"
width = 0.5
height = 0.5
glyph = "^"
class = "obstacle"

[[content]]
ref = "saw"
width = 1.0
height = 1.0
glyph = "*"
class = "obstacle"

[[content]]
ref = "laser"
width = 3.0
height = 0.2
glyph = "~"
class = "obstacle"

# === Segment categories ===
[[category]]
name = "blades"
kind = "point"
content = "blade"
bounds = [-1.5, 1.0, 1.5, 9.0]
min_count = 1
max_count = 3
min_separation = 1.5
metric = "euclidean"
rotation = 90.0

[[category]]
name = "ledges"
kind = "axis"
content = "ledge"
bounds = [-1.2, 0.5, 1.2, 9.5]
min_count = 1
max_count = 2
min_separation = 3.0
metric = "y"

[[category]]
name = "crates"
kind = "footprint"
content = "crate"
bounds = [-1.8, 0.0, 1.8, 10.0]
min_count = 0
max_count = 2
footprint = { width_min = 0.0, width_max = 0.0, height = 0.0, gap = 0.5 }

[[category]]
name = "coins"
kind = "grid"
content = "coin"
depth = 2.0
depth_nudge = 0.02
grid = { min_column = -1, max_column = 1, min_width = 1, max_width = 1, gap_cells = 1, band_height = 10.0, safe_min = 0.1, safe_max = 0.9, item_height = 0.5, min_count = 0, max_count = 2 }

# === Spawn table ===
[[rule]]
name = "spike"
content = "spike"
weight = 2.0
min_height = 0.0
spacing = [6.0, 10.0]

[[rule]]
name = "saw"
content = "saw"
weight = 1.0
min_height = 40.0
lock_to_side = true
lane = "left"
spacing = [6.0, 10.0]

[[rule]]
name = "laser"
content = "laser"
weight = 1.0
min_height = 80.0
lock_to_side = true
lane = "center"
spacing = [8.0, 12.0]
`
