package types

import "testing"

func TestShardState_CodeHashOf(t *testing.T) {
	addr := Address{Workchain: 0, Account: Hash256{1}}
	codeHash := Hash256{0xaa}
	state := &ShardState{Accounts: map[Address]Account{addr: {CodeHash: codeHash}}}

	got, ok := state.CodeHashOf(addr)
	if !ok {
		t.Fatalf("expected account to be found")
	}
	if got != codeHash {
		t.Fatalf("CodeHashOf = %v, want %v", got, codeHash)
	}

	other := Address{Workchain: 0, Account: Hash256{2}}
	if _, ok := state.CodeHashOf(other); ok {
		t.Fatalf("expected unknown account to report not found")
	}
}

func TestShardState_NilReceiverIsSafe(t *testing.T) {
	var state *ShardState
	if _, ok := state.CodeHashOf(Address{}); ok {
		t.Fatalf("expected nil ShardState to report not found")
	}
}

func TestBlockId_String(t *testing.T) {
	root := Hash256{1}
	id := BlockId{RootHash: root}
	if id.String() != root.Hex() {
		t.Fatalf("BlockId.String() = %q, want %q", id.String(), root.Hex())
	}
}
