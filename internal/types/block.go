package types

// BlockId identifies a block: the workchain it belongs to, its shard
// prefix, sequence number, and the root/file hashes of its serialized
// form. Immutable once constructed.
type BlockId struct {
	Workchain   int32
	ShardPrefix uint64
	SeqNo       uint32
	RootHash    Hash256
	FileHash    Hash256
}

func (id BlockId) String() string {
	return id.RootHash.Hex()
}

// AccountID is the 256-bit in-workchain account identifier used by
// account-block bookkeeping (distinct from Address, which also carries the
// workchain).
type AccountID = Hash256

// Account is a single entry in a shard state's account dictionary.
type Account struct {
	CodeHash Hash256
}

// ShardState is a snapshot of account state keyed by address, as handed to
// the filter engine for code-hash predicate resolution. A nil *ShardState
// means no snapshot is available (e.g. archive replay without live state).
type ShardState struct {
	Accounts map[Address]Account
}

// CodeHashOf resolves the code hash of the account at addr, if present in
// this snapshot.
func (s *ShardState) CodeHashOf(addr Address) (Hash256, bool) {
	if s == nil {
		return Hash256{}, false
	}
	acc, ok := s.Accounts[addr]
	if !ok {
		return Hash256{}, false
	}
	return acc.CodeHash, true
}

// AccountBlock bundles the transactions belonging to one account within a
// block, along with the state-update hashes used to detect account
// creation/mutation/deletion. Transactions arrive already decoded: the
// wire-level cell codec is assumed to have run upstream of the Block
// Handler.
type AccountBlock struct {
	AccountID   AccountID
	OldHash     Hash256
	NewHash     Hash256
	Transaction []*Transaction
}

// Block is the decoded block object the handler consumes: its account
// blocks, each carrying their transactions.
type Block struct {
	AccountBlocks []AccountBlock
}
