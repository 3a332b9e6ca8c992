// Package enricher turns a FilteredMessage into a SerializeMessage by
// attaching the identifiers a standalone message record needs once it has
// left its owning transaction: the owning block's id and the transaction's
// hash/timestamp.
package enricher

import "github.com/venom-blockchain/fusion-producer/internal/types"

// Enrich maps a FilteredMessage into a SerializeMessage, stamping blockID
// (supplied by the caller, since a FilteredMessage carries no block
// reference) alongside the transaction identifiers already reachable
// through cand.Tx.
func Enrich(cand types.FilteredMessage, blockID types.Hash256) types.SerializeMessage {
	return types.SerializeMessage{
		Message:              cand.Message,
		MessageHash:          cand.MessageHash,
		MessageType:          cand.MessageType,
		BlockID:              blockID,
		TransactionID:        cand.Tx.Hash(),
		TransactionTimestamp: cand.Tx.Now,
		IndexInTransaction:   cand.IndexInTransaction,
		ContractName:         cand.ContractName,
		FilterName:           cand.FilterName,
	}
}
