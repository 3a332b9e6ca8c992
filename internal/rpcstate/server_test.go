package rpcstate

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

func TestServer_NotifyBlockAndAccountsUpdateStatus(t *testing.T) {
	s := NewServer("127.0.0.1:0")

	s.NotifyBlock(types.BlockId{SeqNo: 1})
	s.NotifyBlock(types.BlockId{SeqNo: 2})
	s.NotifyAccounts(types.Hash256{}, []types.AccountID{{1}, {2}}, []types.AccountID{{3}})

	req := httptest.NewRequest("GET", "/status", nil)
	rec := httptest.NewRecorder()
	s.handleStatus(rec, req)

	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if resp.BlocksSeen != 2 {
		t.Fatalf("BlocksSeen = %d, want 2", resp.BlocksSeen)
	}
	if resp.AccountsSeen != 3 {
		t.Fatalf("AccountsSeen = %d, want 3", resp.AccountsSeen)
	}
	if resp.SessionToken == "" {
		t.Fatalf("expected a non-empty session token")
	}
}

func TestServer_OnAccountsTouchedDelegatesToNotifyAccounts(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	s.OnAccountsTouched(types.Hash256{}, []types.AccountID{{1}}, nil)

	req := httptest.NewRequest("GET", "/status", nil)
	rec := httptest.NewRecorder()
	s.handleStatus(rec, req)

	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if resp.AccountsSeen != 1 {
		t.Fatalf("AccountsSeen = %d, want 1", resp.AccountsSeen)
	}
}
