// Package blockhandler orchestrates the per-block pipeline: scanning
// account blocks for changed/deleted accounts, running the Filter Engine
// over every transaction, enriching and serializing the matches, and
// dispatching them to the Egress Producer without blocking block ingest.
package blockhandler

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/venom-blockchain/fusion-producer/internal/enricher"
	"github.com/venom-blockchain/fusion-producer/internal/filter"
	"github.com/venom-blockchain/fusion-producer/internal/metrics"
	"github.com/venom-blockchain/fusion-producer/internal/producer"
	"github.com/venom-blockchain/fusion-producer/internal/serializer"
	"github.com/venom-blockchain/fusion-producer/internal/types"
)

// AccountSetObserver receives the changed/deleted account id sets the
// Block Handler computes for every block. The source discards these sets
// after computing them; this interface makes the sink configurable
// instead (resolves Open Question 1).
type AccountSetObserver interface {
	OnAccountsTouched(blockID types.Hash256, changed, deleted []types.AccountID)
}

var (
	emptyAccountHashOnce sync.Once
	emptyAccountHash     types.Hash256
)

// defaultAccountHash is the hash of an empty account, computed once and
// memoized for process lifetime, used to recognize account deletion.
func defaultAccountHash() types.Hash256 {
	emptyAccountHashOnce.Do(func() {
		emptyAccountHash = types.Hash256(sha256.Sum256(nil))
	})
	return emptyAccountHash
}

// BlockHandler orchestrates the pipeline for one block.
type BlockHandler struct {
	Registry         *filter.Registry
	Serializer       serializer.Serializer
	SerializerConfig serializer.Config
	Producer         producer.Producer
	// Observer is optional; nil means the changed/deleted sets are
	// computed and discarded.
	Observer AccountSetObserver
	// StartDate floors transactions by tx.Now; default (zero value) is
	// epoch-0, i.e. the date gate is effectively disabled (resolves Open
	// Question 2 by making the floor configurable rather than hardcoded).
	StartDate uint32
}

// New constructs a BlockHandler with no observer and the default
// (epoch-0) start date; callers set those fields directly when needed.
func New(registry *filter.Registry, ser serializer.Serializer, serCfg serializer.Config, prod producer.Producer) *BlockHandler {
	return &BlockHandler{
		Registry:         registry,
		Serializer:       ser,
		SerializerConfig: serCfg,
		Producer:         prod,
	}
}

// HandleBlock iterates block's account blocks, tracks changed/deleted
// account sets, and runs transactionPath over every transaction. Per-
// transaction errors are logged and do not fail the block.
func (h *BlockHandler) HandleBlock(blockID types.BlockId, block types.Block, shardState *types.ShardState) error {
	var changed, deleted []types.AccountID
	for _, ab := range block.AccountBlocks {
		switch {
		case ab.OldHash == ab.NewHash:
			// neither changed nor deleted
		case ab.NewHash == defaultAccountHash():
			deleted = append(deleted, ab.AccountID)
		default:
			changed = append(changed, ab.AccountID)
		}
	}
	if h.Observer != nil {
		h.Observer.OnAccountsTouched(blockID.RootHash, changed, deleted)
	}

	for _, ab := range block.AccountBlocks {
		for i, tx := range ab.Transaction {
			if err := h.transactionPath(tx, blockID, shardState); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"account_id": ab.AccountID.Hex(),
					"tx_index":   i,
				}).Errorf("block handler: transaction path failed")
				continue
			}
		}
	}

	metrics.BlocksProcessed.Inc()
	logrus.WithField("block_id", blockID.String()).
		Infof("block handler: processed block (%d account blocks, %d changed, %d deleted)",
			len(block.AccountBlocks), len(changed), len(deleted))
	return nil
}

// transactionPath runs the Filter Engine over tx, enriches and serializes
// every match, and spawns a detached task to dispatch the resulting
// buffers to the Egress Producer. It never blocks on egress backpressure.
func (h *BlockHandler) transactionPath(tx *types.Transaction, blockID types.BlockId, shardState *types.ShardState) error {
	if tx == nil {
		return fmt.Errorf("transaction path: nil transaction")
	}
	logrus.WithField("tx_hash", tx.Hash().Hex()).Debugf("block handler: transaction path")

	candidates := filter.FilterTransaction(h.Registry, tx, shardState, h.StartDate)
	if len(candidates) == 0 {
		return nil
	}
	metrics.TransactionsFiltered.Inc()

	buffers := make([][]byte, 0, len(candidates))
	for _, cand := range candidates {
		serMsg := enricher.Enrich(cand, blockID.RootHash)
		buf, ok := serializer.Apply(h.Serializer, h.SerializerConfig, serMsg)
		if !ok {
			continue
		}
		metrics.MessagesSerialized.Inc()
		buffers = append(buffers, buf)
	}
	if len(buffers) == 0 {
		return nil
	}

	go h.dispatch(buffers)
	return nil
}

// dispatch drives the per-message sends concurrently via an unordered
// join: every send runs to completion regardless of the others' outcome,
// and send errors are logged, never propagated.
func (h *BlockHandler) dispatch(buffers [][]byte) {
	var g errgroup.Group
	for _, buf := range buffers {
		buf := buf
		g.Go(func() error {
			if err := h.Producer.Send(context.Background(), buf); err != nil {
				metrics.MessagesSendErrors.Inc()
				logrus.WithError(err).Errorf("block handler: egress send failed")
			}
			return nil
		})
	}
	_ = g.Wait()
}
