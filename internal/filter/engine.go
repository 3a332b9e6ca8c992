package filter

import "github.com/venom-blockchain/fusion-producer/internal/types"

// FilterTransaction runs every compiled parser against tx and attributes
// each recognized candidate message to the first FilterEntry (within that
// parser, in declaration order) whose constraints all match. A candidate
// that matches no entry is dropped. Transactions older than startDate are
// skipped entirely.
func FilterTransaction(registry *Registry, tx *types.Transaction, shardState *types.ShardState, startDate uint32) []types.FilteredMessage {
	if tx.Now < startDate {
		return nil
	}

	var out []types.FilteredMessage
	for _, parser := range registry.Parsers() {
		for _, cand := range parser.Parse(tx) {
			for _, entry := range parser.Entries {
				if !matchEntry(entry, cand, shardState) {
					continue
				}
				cand.ContractName = parser.Name
				cand.FilterName = entry.Name
				out = append(out, cand)
				break
			}
		}
	}
	return out
}

// matchEntry reports whether every constraint present on entry matches
// cand. Absent constraints are vacuously satisfied.
func matchEntry(entry FilterEntry, cand types.FilteredMessage, shardState *types.ShardState) bool {
	if entry.Sender != nil {
		src := cand.Message.Src()
		if src == nil || !matchAccount(*entry.Sender, *src, shardState) {
			return false
		}
	}
	if entry.Receiver != nil {
		dst := cand.Message.Dst()
		if dst == nil || !matchAccount(*entry.Receiver, *dst, shardState) {
			return false
		}
	}
	if entry.Message != nil {
		if cand.Name != entry.Message.MessageName || cand.MessageType != entry.Message.MessageType {
			return false
		}
	}
	return true
}

// matchAccount resolves an AddressOrCodeHash constraint against addr. A
// literal address constraint compares directly; a code-hash constraint
// requires shardState to resolve addr's current code hash.
func matchAccount(constraint AddressOrCodeHash, addr types.Address, shardState *types.ShardState) bool {
	if !constraint.IsCodeHash {
		return constraint.MatchAddress(addr)
	}
	if shardState == nil {
		return false
	}
	hash, ok := shardState.CodeHashOf(addr)
	if !ok {
		return false
	}
	return hash == constraint.CodeHash
}
