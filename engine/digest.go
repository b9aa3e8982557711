package engine

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Digest fingerprints the observable run state: anchors, cursor height, live content and draw count
// Two runs with the same seed, config and inputs produce the same digest
func (r *Run) Digest() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	putUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	for _, a := range r.ring.Anchors() {
		putFloat(a)
	}
	putFloat(r.cursor.NextHeight())
	for _, o := range r.store.Objects() {
		h.Write([]byte(o.Ref))
		putFloat(o.World.X())
		putFloat(o.World.Y())
		putFloat(o.World.Z())
	}
	putUint(r.rng.Draws())
	return h.Sum64()
}
