package abi

import (
	"testing"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

func bodyFor(name string) *types.Cell {
	sel := selector(name)
	return &types.Cell{Data: sel[:]}
}

func TestTransactionParser_MatchesFunctionOnInbound(t *testing.T) {
	schema := &Schema{
		Functions: []FunctionDef{{Name: "transfer", Inputs: []Param{{Name: "amount", Type: "uint128"}}}},
	}
	parser := NewTransactionParser(schema)

	inMsg := types.NewMessage(types.MsgHeader{Kind: types.HeaderExternalInbound, ExtIn: &types.ExtInMsgInfo{}}, bodyFor("transfer"))
	tx := &types.Transaction{InMsg: inMsg}

	got := parser.Parse(tx)
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d candidates, want 1", len(got))
	}
	if got[0].Name != "transfer" {
		t.Fatalf("Name = %q, want transfer", got[0].Name)
	}
	if got[0].MessageType != types.ExternalInbound {
		t.Fatalf("MessageType = %v, want ExternalInbound", got[0].MessageType)
	}
}

func TestTransactionParser_MatchesEventOnOutbound(t *testing.T) {
	schema := &Schema{
		Events: []EventDef{{Name: "Transferred"}},
	}
	parser := NewTransactionParser(schema)

	out0 := types.NewMessage(types.MsgHeader{Kind: types.HeaderInternal, Int: &types.IntMsgInfo{}}, bodyFor("unrelated"))
	out1 := types.NewMessage(types.MsgHeader{Kind: types.HeaderInternal, Int: &types.IntMsgInfo{}}, bodyFor("Transferred"))
	tx := &types.Transaction{OutMsgs: []*types.Message{out0, out1}}

	got := parser.Parse(tx)
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d candidates, want 1", len(got))
	}
	if got[0].Name != "Transferred" {
		t.Fatalf("Name = %q, want Transferred", got[0].Name)
	}
	if got[0].IndexInTransaction != 1 {
		t.Fatalf("IndexInTransaction = %d, want 1", got[0].IndexInTransaction)
	}
}

func TestTransactionParser_NoMatch(t *testing.T) {
	schema := &Schema{Functions: []FunctionDef{{Name: "transfer"}}}
	parser := NewTransactionParser(schema)

	inMsg := types.NewMessage(types.MsgHeader{Kind: types.HeaderExternalInbound, ExtIn: &types.ExtInMsgInfo{}}, bodyFor("somethingElse"))
	tx := &types.Transaction{InMsg: inMsg}

	got := parser.Parse(tx)
	if len(got) != 0 {
		t.Fatalf("Parse() returned %d candidates, want 0", len(got))
	}
}

func TestTransactionParser_EmptyBodyNeverMatches(t *testing.T) {
	schema := &Schema{Functions: []FunctionDef{{Name: "transfer"}}}
	parser := NewTransactionParser(schema)

	inMsg := types.NewMessage(types.MsgHeader{Kind: types.HeaderExternalInbound, ExtIn: &types.ExtInMsgInfo{}}, nil)
	tx := &types.Transaction{InMsg: inMsg}

	if got := parser.Parse(tx); len(got) != 0 {
		t.Fatalf("Parse() with empty body returned %d candidates, want 0", len(got))
	}
}
