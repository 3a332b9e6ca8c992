package serializer

import (
	"math/big"
	"testing"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

func TestProtobufSerializer_RoundTrip_ExternalInbound(t *testing.T) {
	ser := ProtobufSerializer{}
	msg := sampleMessage(t)

	framed, err := ser.Serialize(msg)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	decoded, consumed, err := DecodeProtobufFrame(framed)
	if err != nil {
		t.Fatalf("DecodeProtobufFrame: %v", err)
	}
	if consumed != len(framed) {
		t.Fatalf("consumed = %d, want %d", consumed, len(framed))
	}
	if decoded.BlockID != msg.BlockID {
		t.Fatalf("BlockID = %v, want %v", decoded.BlockID, msg.BlockID)
	}
	if decoded.TransactionID != msg.TransactionID {
		t.Fatalf("TransactionID = %v, want %v", decoded.TransactionID, msg.TransactionID)
	}
	if decoded.MessageType != types.ExternalInbound {
		t.Fatalf("MessageType = %v, want ExternalInbound", decoded.MessageType)
	}
	if decoded.ContractName != "Wallet" || decoded.FilterName != "incoming" {
		t.Fatalf("ContractName/FilterName = %q/%q", decoded.ContractName, decoded.FilterName)
	}
	if decoded.Header.Kind != types.HeaderExternalInbound {
		t.Fatalf("Header.Kind = %v, want HeaderExternalInbound", decoded.Header.Kind)
	}
	if decoded.Header.ExtIn.Dst.String() != msg.Message.Header.ExtIn.Dst.String() {
		t.Fatalf("ExtIn.Dst = %v, want %v", decoded.Header.ExtIn.Dst, msg.Message.Header.ExtIn.Dst)
	}
}

func TestProtobufSerializer_RoundTrip_Internal(t *testing.T) {
	src, err := types.ParseAddress("0:1ef4000000000000000000000000000000000000000000000000000000008d0d")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	dst, err := types.ParseAddress("-1:000000000000000000000000000000000000000000000000000000000000ffab")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	header := types.MsgHeader{Kind: types.HeaderInternal, Int: &types.IntMsgInfo{
		Bounce:    true,
		Src:       &src,
		Dst:       dst,
		Grams:     big.NewInt(1_000_000_000),
		IHRFee:    big.NewInt(0),
		FwdFee:    big.NewInt(10_000),
		CreatedAt: 999,
		CreatedLT: 123456789,
	}}
	msg := types.NewMessage(header, &types.Cell{Data: []byte("internal")})

	sm := types.SerializeMessage{
		Message:     msg,
		MessageHash: msg.Hash(),
		MessageType: types.InternalInbound,
	}

	framed, err := ProtobufSerializer{}.Serialize(sm)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	decoded, _, err := DecodeProtobufFrame(framed)
	if err != nil {
		t.Fatalf("DecodeProtobufFrame: %v", err)
	}
	if decoded.Header.Kind != types.HeaderInternal {
		t.Fatalf("Header.Kind = %v, want HeaderInternal", decoded.Header.Kind)
	}
	info := decoded.Header.Int
	if !info.Bounce {
		t.Fatalf("Bounce = false, want true")
	}
	if info.Grams.Cmp(big.NewInt(1_000_000_000)) != 0 {
		t.Fatalf("Grams = %v, want 1000000000", info.Grams)
	}
	if info.FwdFee.Cmp(big.NewInt(10_000)) != 0 {
		t.Fatalf("FwdFee = %v, want 10000", info.FwdFee)
	}
	if info.Src == nil || info.Src.String() != src.String() {
		t.Fatalf("Src = %v, want %v", info.Src, src)
	}
	if info.Dst.String() != dst.String() {
		t.Fatalf("Dst = %v, want %v", info.Dst, dst)
	}
	if info.CreatedAt != 999 || info.CreatedLT != 123456789 {
		t.Fatalf("CreatedAt/CreatedLT = %d/%d, want 999/123456789", info.CreatedAt, info.CreatedLT)
	}
}

func TestBigIntLEBytes_RoundTrip(t *testing.T) {
	cases := []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(256), big.NewInt(1_000_000_007)}
	for _, v := range cases {
		le := bigIntLEBytes(v)
		got := bigIntFromLEBytes(le)
		if got.Cmp(v) != 0 {
			t.Fatalf("bigIntFromLEBytes(bigIntLEBytes(%v)) = %v", v, got)
		}
	}
}
