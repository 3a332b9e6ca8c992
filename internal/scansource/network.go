package scansource

import (
	"context"
	"fmt"
)

// NetworkSource would stream blocks from a live node connection. The wire
// protocol it speaks is out of scope here (§1): this type only documents
// the contract shape and the driver's error-handling posture so the core
// pipeline's BlockSource dependency has a concrete, labeled placeholder
// rather than a silent gap.
//
// Per §7, a network driver treats a block-decode failure as fatal for
// that block: it does not retry, unlike the S3 driver's RetryOnError
// toggle.
type NetworkSource struct {
	nodeAddress string
}

// NewNetworkSource records the node address a real driver would dial.
func NewNetworkSource(nodeAddress string) *NetworkSource {
	return &NetworkSource{nodeAddress: nodeAddress}
}

func (s *NetworkSource) Next(ctx context.Context) (BlockEvent, error) {
	return BlockEvent{}, fmt.Errorf("scansource: network driver not implemented (node=%s); out of scope", s.nodeAddress)
}

func (s *NetworkSource) Close() error { return nil }
