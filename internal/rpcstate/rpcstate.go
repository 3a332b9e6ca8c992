// Package rpcstate models the optional RPC-state handle the core receives
// two pass-through hooks from (§1: persistent RPC state and its HTTP
// serving are out of scope; only the contract the core calls into is
// defined here), plus a small status/metrics HTTP server, started only when
// the configuration sets rpc.listen_address, without building real
// persistent RPC state.
package rpcstate

import "github.com/venom-blockchain/fusion-producer/internal/types"

// Handle is the optional pass-through RPC-state dependency: two
// notification hooks per block. The ingest loop calls NotifyBlock before
// the block is handled; NotifyAccounts receives the block's changed/deleted
// account sets. A nil Handle means no RPC state is configured.
type Handle interface {
	NotifyBlock(blockID types.BlockId)
	NotifyAccounts(blockID types.Hash256, changed, deleted []types.AccountID)
}
