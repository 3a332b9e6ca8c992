package enricher

import (
	"testing"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

func TestEnrich(t *testing.T) {
	dst, err := types.ParseAddress("0:000000000000000000000000000000000000000000000000000000000000ffab")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	msg := types.NewMessage(types.MsgHeader{Kind: types.HeaderExternalInbound, ExtIn: &types.ExtInMsgInfo{Dst: dst}}, &types.Cell{Data: []byte("body")})
	tx := types.NewTransaction(&types.Cell{Data: []byte("tx")}, 12345, msg, nil, types.AccountID{}, types.Hash256{}, types.Hash256{})

	cand := types.FilteredMessage{
		Name:               "Transfer",
		MessageHash:        msg.Hash(),
		Message:            msg,
		MessageType:        types.ExternalInbound,
		Tx:                 tx,
		IndexInTransaction: 3,
		ContractName:       "Wallet",
		FilterName:         "incoming",
	}

	blockID, err := types.ParseHash256("3b1c0c89be14e92f4d9465911b2ac28ce5588f1616994b7a2e94da50d6e22fa4")
	if err != nil {
		t.Fatalf("ParseHash256: %v", err)
	}

	got := Enrich(cand, blockID)

	if got.BlockID != blockID {
		t.Fatalf("BlockID = %v, want %v", got.BlockID, blockID)
	}
	if got.TransactionID != tx.Hash() {
		t.Fatalf("TransactionID = %v, want %v", got.TransactionID, tx.Hash())
	}
	if got.TransactionTimestamp != 12345 {
		t.Fatalf("TransactionTimestamp = %d, want 12345", got.TransactionTimestamp)
	}
	if got.IndexInTransaction != 3 {
		t.Fatalf("IndexInTransaction = %d, want 3", got.IndexInTransaction)
	}
	if got.ContractName != "Wallet" || got.FilterName != "incoming" {
		t.Fatalf("ContractName/FilterName = %q/%q, want Wallet/incoming", got.ContractName, got.FilterName)
	}
	if got.MessageHash != msg.Hash() {
		t.Fatalf("MessageHash mismatch")
	}
}
