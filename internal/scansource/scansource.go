// Package scansource defines the block-source driver contract the core
// pipeline consumes and ships one concrete, exercised implementation (a
// JSON fixture loader) plus labeled stub constructors for the drivers that
// are genuinely out of scope: the live network indexer, the local archive
// reader, and the S3 archive feed.
package scansource

import (
	"context"
	"errors"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

// ErrExhausted is returned by Next once a source has no more blocks.
var ErrExhausted = errors.New("scansource: exhausted")

// BlockEvent is one decoded block handed to the core pipeline, paired with
// whatever shard-state snapshot the driver had available (nil if none —
// e.g. archive replay without live state, per spec's state-dependent
// predicate note).
type BlockEvent struct {
	BlockID    types.BlockId
	Block      types.Block
	ShardState *types.ShardState
}

// BlockSource is the external block-source driver contract: a stream of
// already-decoded blocks. The wire-level protocol and cell codec are
// assumed to have already run by the time a BlockEvent reaches the core.
//
// A driver's treatment of per-block decode failure is driver-specific
// (§7): the S3 driver exposes a RetryOnError toggle; the network driver
// treats any such failure as fatal for that block. BlockSource itself only
// distinguishes "got an event" from "stream is exhausted or broken".
type BlockSource interface {
	Next(ctx context.Context) (BlockEvent, error)
	Close() error
}
