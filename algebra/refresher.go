package algebra

import (
	"github.com/remytuyeras/aces/channel"
	"github.com/remytuyeras/aces/rlwe"
)

// Refresher converts the secret, per-ciphertext Level vectors tracked
// by the level sub-algebra into the scalar target_level inputs
// Algebra.Refresh consumes. Constructed from a channel (per spec.md
// §6's make_refresher(channel)) rather than a bare PublicView, even
// though its computation only touches the channel's public lvlE
// vector: the level bookkeeping it processes is meaningful only to a
// party that also holds the channel, mirroring the teacher's
// rlwe.Evaluator, which is likewise handed more context than any
// single call strictly requires.
type Refresher struct {
	view channel.PublicView
}

// NewRefresher builds a Refresher bound to the given channel.
func NewRefresher(ch *channel.Channel) *Refresher {
	return &Refresher{view: ch.Publish()}
}

// ScalarLevel computes ℓ(k) = k·lvlE for a single level vector.
func (rf *Refresher) ScalarLevel(k rlwe.Level) uint64 {
	return k.Dot(rf.view.LvlE)
}

// Process converts a list of level vectors, one per ciphertext
// consumed along an evaluation path, into their scalar levels. The
// caller typically folds these through AddLevel/MultLevel as the
// ciphertext-domain evaluation proceeds, then passes the final scalar
// to Algebra.Refresh as target_level.
func (rf *Refresher) Process(levels []rlwe.Level) []uint64 {
	out := make([]uint64, len(levels))
	for i, k := range levels {
		out[i] = rf.ScalarLevel(k)
	}
	return out
}
